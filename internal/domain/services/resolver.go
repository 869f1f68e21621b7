package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

var (
	// ErrEmptyQuery is returned when the input has no usable tokens.
	ErrEmptyQuery = errors.New("search string is empty")
	// ErrNoExactMatch is returned when an exact-name lookup finds nothing.
	ErrNoExactMatch = errors.New("no card with that exact name")
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ResolverService turns user input into a MatchResult.
type ResolverService struct {
	store  ports.CatalogStore
	ranker *RankerService
	logger *slog.Logger
}

// NewResolverService creates a new resolver over store.
func NewResolverService(store ports.CatalogStore, ranker *RankerService, logger *slog.Logger) *ResolverService {
	if ranker == nil {
		ranker = NewRankerService(DefaultSuggestionCacheSize)
	}
	return &ResolverService{
		store:  store,
		ranker: ranker,
		logger: orDiscard(logger),
	}
}

// Resolve matches the input tokens against the catalog. Tokens may contain
// spaces; the input is re-split on whitespace.
func (s *ResolverService) Resolve(ctx context.Context, tokens []string) (entities.MatchResult, error) {
	fields := strings.Fields(strings.Join(tokens, " "))
	if len(fields) == 0 {
		return nil, ErrEmptyQuery
	}

	if card, err := s.resolveNickname(ctx, fields); err != nil {
		return nil, err
	} else if card != nil {
		return entities.ExactMatch{Card: *card}, nil
	}

	normalized := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := entities.NormalizeWord(f); w != "" {
			normalized = append(normalized, w)
		}
	}
	if len(normalized) == 0 {
		return nil, ErrEmptyQuery
	}

	patterns := make([]string, len(normalized))
	for i, w := range normalized {
		patterns[i] = "%" + likeEscaper.Replace(w) + "%"
	}

	cards, err := s.store.FindByAllTokensSubstring(ctx, patterns)
	if err != nil {
		return nil, fmt.Errorf("searching cards: %w", err)
	}

	switch {
	case len(cards) == 1:
		card, err := s.store.GetByExactName(ctx, cards[0].Name)
		if err != nil {
			return nil, fmt.Errorf("fetching card: %w", err)
		}
		if card == nil {
			card = &cards[0]
		}
		return entities.ExactMatch{Card: *card}, nil

	case len(cards) > 1:
		sort.SliceStable(cards, func(i, j int) bool {
			return cards[i].Name < cards[j].Name
		})
		return entities.Ambiguous{Cards: cards}, nil
	}

	words, err := s.store.AllWords(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading words: %w", err)
	}
	ranking := s.ranker.Rank(normalized, words)
	s.logger.Debug("no card matched, ranking suggestions",
		"tokens", normalized, "suggestions", len(ranking.Words), "passthrough", ranking.Passthrough)

	return entities.Suggestions{Words: ranking.Words, Passthrough: ranking.Passthrough}, nil
}

func (s *ResolverService) resolveNickname(ctx context.Context, fields []string) (*entities.Card, error) {
	name, ok := LookupNickname(strings.Join(fields, " "))
	if !ok {
		return nil, nil
	}
	card, err := s.store.GetByExactName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching nickname target: %w", err)
	}
	if card == nil {
		s.logger.Debug("nickname target not in catalog", "name", name)
	}
	return card, nil
}

// ResolveExact looks up the input joined by single spaces as an exact,
// case-sensitive display name.
func (s *ResolverService) ResolveExact(ctx context.Context, tokens []string) (*entities.Card, error) {
	name := strings.Join(tokens, " ")
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyQuery
	}
	card, err := s.store.GetByExactName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoExactMatch, name)
	}
	return card, nil
}

// ResolveSelection re-resolves a string picked from a rendered list.
// A trailing " // partner" is ignored; the normalized name is tried when
// the display name does not match.
func (s *ResolverService) ResolveSelection(ctx context.Context, selection string) (*entities.Card, error) {
	name := entities.StripPartner(selection)
	if name == "" {
		return nil, ErrEmptyQuery
	}

	card, err := s.store.GetByExactName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("fetching card: %w", err)
	}
	if card != nil {
		return card, nil
	}

	card, err = s.store.GetByExactLowercaseName(ctx, entities.NormalizeName(name))
	if err != nil {
		return nil, fmt.Errorf("fetching card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: %q", ErrNoExactMatch, name)
	}
	return card, nil
}

// ResetCache discards memoized suggestions. Call after a rebuild.
func (s *ResolverService) ResetCache() {
	s.ranker.Reset()
}

// Requery builds the tokens for a did-you-mean follow-up: the chosen word,
// then the words the user already had right.
func Requery(selected string, passthrough []string) []string {
	tokens := make([]string, 0, len(passthrough)+1)
	tokens = append(tokens, selected)
	return append(tokens, passthrough...)
}
