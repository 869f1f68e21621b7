package services

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/infrastructure/parsers"
)

// Set types that never hold playable cards.
var excludedSetTypes = map[string]bool{
	"memorabilia": true,
	"minigame":    true,
	"token":       true,
}

// MalformedRecordError reports a feed record that breaks a required invariant.
// Any such record aborts the whole rebuild.
type MalformedRecordError struct {
	Index   int    // Record position in the feed (1-indexed, 0 if unknown)
	CardID  string // Identifier of the offending record
	Field   string // Which field has the error
	Value   string // The invalid value
	Message string // Human-readable error message
}

func (e MalformedRecordError) Error() string {
	if e.Index > 0 {
		return fmt.Sprintf("record %d (%s): %s", e.Index, e.CardID, e.Message)
	}
	return e.Message
}

// NormalizeResult summarizes a normalization run.
type NormalizeResult struct {
	Corpus     *entities.Corpus
	Records    int // Records read from the feed
	Filtered   int // Records dropped by the filtering policy
	Duplicates int // Entities skipped because their name was already taken
}

// NormalizerService turns raw feed records into a corpus.
type NormalizerService struct {
	logger *slog.Logger
}

// NewNormalizerService creates a new normalizer. A nil logger discards output.
func NewNormalizerService(logger *slog.Logger) *NormalizerService {
	return &NormalizerService{logger: orDiscard(logger)}
}

// CorpusBuilder accumulates entities and words one record at a time, so
// large feeds can be streamed through it.
type CorpusBuilder struct {
	logger     *slog.Logger
	cards      []entities.Card
	names      map[string]bool
	lowercase  map[string]bool
	words      []string
	seenWords  map[string]bool
	records    int
	filtered   int
	duplicates int
}

// NewBuilder starts an empty corpus.
func (s *NormalizerService) NewBuilder() *CorpusBuilder {
	return &CorpusBuilder{
		logger:    s.logger,
		names:     make(map[string]bool),
		lowercase: make(map[string]bool),
		seenWords: make(map[string]bool),
	}
}

// Normalize builds a corpus from records held in memory.
func (s *NormalizerService) Normalize(records []parsers.RawCard) (*NormalizeResult, error) {
	b := s.NewBuilder()
	for i := range records {
		if err := b.Add(records[i]); err != nil {
			return nil, err
		}
	}
	return b.Result(), nil
}

// Add applies the filtering policy to one record and, if kept, adds its
// entities and words.
func (b *CorpusBuilder) Add(rec parsers.RawCard) error {
	b.records++

	if isFilteredRecord(rec) {
		b.filtered++
		return nil
	}

	if err := validateRecord(rec); err != nil {
		return err
	}

	var cards []entities.Card
	var err error
	if len(rec.CardFaces) >= 2 {
		cards, err = b.splitFaces(rec)
	} else {
		cards, err = singleFace(rec)
	}
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		b.filtered++
		return nil
	}

	for i := range cards {
		b.addCard(cards[i])
	}
	return nil
}

// Result returns the corpus built so far.
func (b *CorpusBuilder) Result() *NormalizeResult {
	cards := b.cards
	if cards == nil {
		cards = []entities.Card{}
	}
	words := b.words
	if words == nil {
		words = []string{}
	}
	return &NormalizeResult{
		Corpus:     &entities.Corpus{Cards: cards, Words: words},
		Records:    b.records,
		Filtered:   b.filtered,
		Duplicates: b.duplicates,
	}
}

func (b *CorpusBuilder) addCard(card entities.Card) {
	if b.names[card.Name] || b.lowercase[card.LowercaseName] {
		b.duplicates++
		b.logger.Debug("skipping duplicate printing", "name", card.Name, "id", card.ID)
		return
	}
	b.names[card.Name] = true
	b.lowercase[card.LowercaseName] = true
	b.cards = append(b.cards, card)

	for _, w := range entities.NameWords(card.Name) {
		if b.seenWords[w] {
			continue
		}
		b.seenWords[w] = true
		b.words = append(b.words, w)
	}
}

// splitFaces turns the first two faces of a record into linked entities.
func (b *CorpusBuilder) splitFaces(rec parsers.RawCard) ([]entities.Card, error) {
	if len(rec.CardFaces) > 2 {
		dropped := make([]string, 0, len(rec.CardFaces)-2)
		for _, f := range rec.CardFaces[2:] {
			dropped = append(dropped, f.Name)
		}
		b.logger.Warn("ignoring faces beyond the second", "name", rec.Name, "dropped", dropped)
	}

	front, back := rec.CardFaces[0], rec.CardFaces[1]
	for _, f := range []parsers.RawFace{front, back} {
		if strings.TrimSpace(f.Name) == "" {
			return nil, malformed(rec, "card_faces.name", "", "face name is empty")
		}
		if err := validatePowerToughness(rec, f.Power, f.Toughness); err != nil {
			return nil, err
		}
	}

	if !isPlayableFace(front) && !isPlayableFace(back) {
		return nil, nil
	}

	first := faceCard(rec.ID, front, back.Name)
	first.ScryfallURI = rec.ScryfallURI
	second := faceCard(rec.ID, back, front.Name)
	return []entities.Card{first, second}, nil
}

func faceCard(id string, face parsers.RawFace, partner string) entities.Card {
	return entities.Card{
		ID:             id,
		Name:           face.Name,
		LowercaseName:  entities.NormalizeName(face.Name),
		TypeLine:       face.TypeLine,
		OracleText:     oracleText(face.OracleText),
		PowerToughness: entities.PowerToughness(deref(face.Power), deref(face.Toughness)),
		Loyalty:        deref(face.Loyalty),
		ManaCost:       deref(face.ManaCost),
		OtherCardName:  partner,
	}
}

func singleFace(rec parsers.RawCard) ([]entities.Card, error) {
	typeLine := rec.TypeLine
	oracle := rec.OracleText
	power, toughness := rec.Power, rec.Toughness
	loyalty, manaCost := rec.Loyalty, rec.ManaCost

	// A lone face entry carries the fields the top level left out.
	if len(rec.CardFaces) == 1 {
		f := rec.CardFaces[0]
		if typeLine == "" {
			typeLine = f.TypeLine
		}
		if oracle == nil {
			oracle = f.OracleText
		}
		if power == nil && toughness == nil {
			power, toughness = f.Power, f.Toughness
		}
		if loyalty == nil {
			loyalty = f.Loyalty
		}
		if manaCost == nil {
			manaCost = f.ManaCost
		}
	}

	if strings.TrimSpace(typeLine) == "" {
		return nil, malformed(rec, "type_line", "", "type line is missing")
	}
	if err := validatePowerToughness(rec, power, toughness); err != nil {
		return nil, err
	}

	return []entities.Card{{
		ID:             rec.ID,
		Name:           rec.Name,
		LowercaseName:  entities.NormalizeName(rec.Name),
		TypeLine:       typeLine,
		OracleText:     oracleText(oracle),
		PowerToughness: entities.PowerToughness(deref(power), deref(toughness)),
		Loyalty:        deref(loyalty),
		ManaCost:       deref(manaCost),
		ScryfallURI:    rec.ScryfallURI,
	}}, nil
}

func validateRecord(rec parsers.RawCard) error {
	if _, err := uuid.Parse(rec.ID); err != nil {
		return malformed(rec, "id", rec.ID, fmt.Sprintf("invalid id %q", rec.ID))
	}
	if strings.TrimSpace(rec.Name) == "" {
		return malformed(rec, "name", "", "name is empty")
	}
	return nil
}

func validatePowerToughness(rec parsers.RawCard, power, toughness *string) error {
	if (power == nil) != (toughness == nil) {
		return malformed(rec, "power/toughness", deref(power)+"/"+deref(toughness),
			"power and toughness must both be present or both absent")
	}
	return nil
}

// isFilteredRecord applies the record-level filters, in order.
func isFilteredRecord(rec parsers.RawCard) bool {
	if hasTypeWord(rec.TypeLine, "Plane") {
		return true
	}
	if excludedSetTypes[strings.ToLower(rec.SetType)] {
		return true
	}
	return hasTypeWord(rec.TypeLine, "Token")
}

func isPlayableFace(f parsers.RawFace) bool {
	if strings.TrimSpace(f.Name) == "" {
		return false
	}
	return !hasTypeWord(f.TypeLine, "Plane") && !hasTypeWord(f.TypeLine, "Token")
}

// hasTypeWord matches whole words, so "Plane" does not match "Planeswalker".
func hasTypeWord(typeLine, word string) bool {
	for _, f := range strings.Fields(typeLine) {
		if f == word {
			return true
		}
	}
	return false
}

func oracleText(s *string) string {
	if s == nil {
		return entities.NoOracleText
	}
	return *s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func malformed(rec parsers.RawCard, field, value, message string) MalformedRecordError {
	return MalformedRecordError{
		Index:   rec.Index,
		CardID:  rec.ID,
		Field:   field,
		Value:   value,
		Message: message,
	}
}
