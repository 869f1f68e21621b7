package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/ports"
)

// DisplayService composes the text shown for a resolved card.
type DisplayService struct {
	store ports.CatalogStore
}

// NewDisplayService creates a new display service.
func NewDisplayService(store ports.CatalogStore) *DisplayService {
	return &DisplayService{store: store}
}

// Compose renders card, looking up its partner face to name the catalog
// item correctly.
func (s *DisplayService) Compose(ctx context.Context, card *entities.Card) (string, error) {
	if !card.HasPartner() {
		return DisplayString(card, nil), nil
	}
	partner, err := s.store.GetByExactName(ctx, card.OtherCardName)
	if err != nil {
		return "", fmt.Errorf("fetching partner face: %w", err)
	}
	return DisplayString(card, Aliases(card, partner)), nil
}

// Aliases lists the other names a two-faced item is known by: the partner
// face and the combined "Front // Back" name. The front face is the one
// carrying the catalog URI. Aliases contained in the card's own name are
// skipped.
func Aliases(card, partner *entities.Card) []string {
	if !card.HasPartner() {
		return nil
	}

	front, back := card.Name, card.OtherCardName
	if card.ScryfallURI == "" && partner != nil && partner.ScryfallURI != "" {
		front, back = back, front
	}

	var aliases []string
	for _, alias := range []string{card.OtherCardName, front + entities.PartnerSeparator + back} {
		if strings.Contains(card.Name, alias) {
			continue
		}
		aliases = append(aliases, alias)
	}
	return aliases
}

// DisplayString renders a card as lines of text. Absent attributes are
// omitted.
func DisplayString(card *entities.Card, aliases []string) string {
	var b strings.Builder

	b.WriteString(card.Name)
	if card.ManaCost != "" {
		b.WriteString("\t")
		b.WriteString(card.ManaCost)
	}
	b.WriteString("\n")
	b.WriteString(card.TypeLine)
	b.WriteString("\n")

	if card.OracleText != "" {
		b.WriteString(card.OracleText)
		b.WriteString("\n")
	}
	if card.PowerToughness != "" {
		b.WriteString(card.PowerToughness)
		b.WriteString("\n")
	}
	if card.Loyalty != "" {
		fmt.Fprintf(&b, "Starting Loyalty: %s\n", card.Loyalty)
	}
	if len(aliases) > 0 {
		fmt.Fprintf(&b, "Also known as: %s\n", strings.Join(aliases, ", "))
	}

	return strings.TrimSuffix(b.String(), "\n")
}
