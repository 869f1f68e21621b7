package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/mocks"
)

func card(name string) entities.Card {
	return entities.Card{
		ID:            name,
		Name:          name,
		LowercaseName: entities.NormalizeName(name),
		TypeLine:      "Instant",
		OracleText:    entities.NoOracleText,
	}
}

func testCorpus() *entities.Corpus {
	cards := []entities.Card{
		card("Lightning Bolt"),
		card("Lightning Helix"),
		card("Chain Lightning"),
		card("Shock"),
		card("Dragon's Rage Channeler"),
		card("Shivan Dragon"),
		card("Jace, the Mind Sculptor"),
		card("Lim-Dûl's Vault"),
		card("100% Pure"),
	}
	delver := card("Delver of Secrets")
	delver.OtherCardName = "Insectile Aberration"
	aberration := card("Insectile Aberration")
	aberration.OtherCardName = "Delver of Secrets"
	cards = append(cards, delver, aberration)

	var words []string
	seen := map[string]bool{}
	for _, c := range cards {
		for _, w := range entities.NameWords(c.Name) {
			if !seen[w] {
				seen[w] = true
				words = append(words, w)
			}
		}
	}
	return &entities.Corpus{Cards: cards, Words: words}
}

func newTestResolver(t *testing.T) (*ResolverService, *mocks.CatalogStore) {
	t.Helper()
	store := mocks.NewCatalogStore(testCorpus())
	return NewResolverService(store, NewRankerService(0), nil), store
}

func TestResolverService_Resolve_ExactMatch(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		tokens   []string
		expected string
	}{
		{name: "partial name", tokens: []string{"shiv"}, expected: "Shivan Dragon"},
		{name: "tokens in any order", tokens: []string{"helix", "light"}, expected: "Lightning Helix"},
		{name: "case and accents ignored", tokens: []string{"LIM-DUL"}, expected: "Lim-Dûl's Vault"},
		{name: "commas ignored", tokens: []string{"jace,", "mind"}, expected: "Jace, the Mind Sculptor"},
		{name: "single argument with spaces", tokens: []string{"chain lightning"}, expected: "Chain Lightning"},
		{name: "back face by name", tokens: []string{"insectile"}, expected: "Insectile Aberration"},
		{name: "like wildcard treated literally", tokens: []string{"100%"}, expected: "100% Pure"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := resolver.Resolve(ctx, tt.tokens)
			require.NoError(t, err)
			exact, ok := result.(entities.ExactMatch)
			require.True(t, ok, "expected ExactMatch, got %T", result)
			assert.Equal(t, tt.expected, exact.Card.Name)
		})
	}
}

func TestResolverService_Resolve_ExactMatchIsLookupIdempotent(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	first, err := resolver.Resolve(ctx, []string{"shock"})
	require.NoError(t, err)
	second, err := resolver.Resolve(ctx, []string{"shock"})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolverService_Resolve_Ambiguous(t *testing.T) {
	resolver, _ := newTestResolver(t)

	result, err := resolver.Resolve(context.Background(), []string{"lightning"})
	require.NoError(t, err)

	ambiguous, ok := result.(entities.Ambiguous)
	require.True(t, ok, "expected Ambiguous, got %T", result)

	names := make([]string, len(ambiguous.Cards))
	for i, c := range ambiguous.Cards {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"Chain Lightning", "Lightning Bolt", "Lightning Helix"}, names)
}

func TestResolverService_Resolve_AmbiguousSortIsCaseSensitive(t *testing.T) {
	store := mocks.NewCatalogStore(&entities.Corpus{
		Cards: []entities.Card{card("bolt spell"), card("Zap Bolt"), card("Bolt Bolt")},
		Words: []string{"bolt", "spell", "zap"},
	})
	resolver := NewResolverService(store, nil, nil)

	result, err := resolver.Resolve(context.Background(), []string{"bolt"})
	require.NoError(t, err)
	ambiguous := result.(entities.Ambiguous)
	assert.Equal(t, "Bolt Bolt", ambiguous.Cards[0].Name)
	assert.Equal(t, "Zap Bolt", ambiguous.Cards[1].Name)
	assert.Equal(t, "bolt spell", ambiguous.Cards[2].Name)
}

func TestResolverService_Resolve_Suggestions(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	t.Run("misspelled word", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, []string{"shok"})
		require.NoError(t, err)
		suggestions, ok := result.(entities.Suggestions)
		require.True(t, ok, "expected Suggestions, got %T", result)
		assert.Equal(t, []string{"shock"}, suggestions.Words)
		assert.Empty(t, suggestions.Passthrough)
	})

	t.Run("correct word passes through", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, []string{"delvr", "secrets"})
		require.NoError(t, err)
		suggestions := result.(entities.Suggestions)
		assert.Equal(t, []string{"delver"}, suggestions.Words)
		assert.Equal(t, []string{"secrets"}, suggestions.Passthrough)
	})

	t.Run("nothing close", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, []string{"zzzznotaword"})
		require.NoError(t, err)
		suggestions := result.(entities.Suggestions)
		assert.Empty(t, suggestions.Words)
	})
}

func TestResolverService_Resolve_RequeryFindsCard(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	result, err := resolver.Resolve(ctx, []string{"delvr", "secrets"})
	require.NoError(t, err)
	suggestions := result.(entities.Suggestions)
	require.NotEmpty(t, suggestions.Words)

	result, err = resolver.Resolve(ctx, Requery(suggestions.Words[0], suggestions.Passthrough))
	require.NoError(t, err)
	exact, ok := result.(entities.ExactMatch)
	require.True(t, ok)
	assert.Equal(t, "Delver of Secrets", exact.Card.Name)
}

func TestResolverService_Resolve_Nickname(t *testing.T) {
	store := mocks.NewCatalogStore(testCorpus())
	store.Cards = append(store.Cards, card("Dark Confidant"))
	resolver := NewResolverService(store, nil, nil)
	ctx := context.Background()

	t.Run("nickname hit", func(t *testing.T) {
		result, err := resolver.Resolve(ctx, []string{"  BOB "})
		require.NoError(t, err)
		exact := result.(entities.ExactMatch)
		assert.Equal(t, "Dark Confidant", exact.Card.Name)
		assert.Equal(t, 0, store.SearchCallCount)
	})

	t.Run("multi-word nickname", func(t *testing.T) {
		store.Cards = append(store.Cards, card("Solemn Simulacrum"))
		result, err := resolver.Resolve(ctx, []string{"sad", "robot"})
		require.NoError(t, err)
		assert.Equal(t, "Solemn Simulacrum", result.(entities.ExactMatch).Card.Name)
	})

	t.Run("missing target falls through", func(t *testing.T) {
		// "bolt" points at Lightning Bolt, which is present; "goyf" is not.
		result, err := resolver.Resolve(ctx, []string{"goyf"})
		require.NoError(t, err)
		_, ok := result.(entities.Suggestions)
		assert.True(t, ok)
	})
}

func TestResolverService_Resolve_EmptyInput(t *testing.T) {
	resolver, _ := newTestResolver(t)

	for _, tokens := range [][]string{nil, {}, {"", "  "}, {","}} {
		_, err := resolver.Resolve(context.Background(), tokens)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestResolverService_Resolve_StoreError(t *testing.T) {
	store := mocks.NewCatalogStore(testCorpus())
	store.Err = errors.New("disk gone")
	resolver := NewResolverService(store, nil, nil)

	_, err := resolver.Resolve(context.Background(), []string{"shock"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk gone")
}

func TestResolverService_ResolveExact(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	found, err := resolver.ResolveExact(ctx, []string{"Lightning", "Bolt"})
	require.NoError(t, err)
	assert.Equal(t, "Lightning Bolt", found.Name)

	_, err = resolver.ResolveExact(ctx, []string{"lightning", "bolt"})
	assert.ErrorIs(t, err, ErrNoExactMatch)

	_, err = resolver.ResolveExact(ctx, nil)
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestResolverService_ResolveSelection(t *testing.T) {
	resolver, _ := newTestResolver(t)
	ctx := context.Background()

	tests := []struct {
		name      string
		selection string
		expected  string
	}{
		{name: "plain name", selection: "Shock", expected: "Shock"},
		{name: "trailing newline", selection: "Shock\n", expected: "Shock"},
		{name: "partner suffix stripped", selection: "Delver of Secrets // Insectile Aberration", expected: "Delver of Secrets"},
		{name: "lowercase fallback", selection: "lim-dul's vault", expected: "Lim-Dûl's Vault"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := resolver.ResolveSelection(ctx, tt.selection)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, found.Name)
		})
	}

	_, err := resolver.ResolveSelection(ctx, "Nonexistent Card")
	assert.ErrorIs(t, err, ErrNoExactMatch)

	_, err = resolver.ResolveSelection(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
}

func TestRequery(t *testing.T) {
	assert.Equal(t, []string{"delver", "secrets", "of"}, Requery("delver", []string{"secrets", "of"}))
	assert.Equal(t, []string{"shock"}, Requery("shock", nil))
}
