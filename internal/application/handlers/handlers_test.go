package handlers

import (
	"testing"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
	"github.com/magic-finder/magic-finder/internal/domain/mocks"
	"github.com/magic-finder/magic-finder/internal/domain/services"
)

func card(name string) entities.Card {
	return entities.Card{
		ID:            name,
		Name:          name,
		LowercaseName: entities.NormalizeName(name),
		TypeLine:      "Instant",
		OracleText:    entities.NoOracleText,
		ScryfallURI:   "https://scryfall.com/card/" + entities.NormalizeName(name),
	}
}

func testCorpus() *entities.Corpus {
	cards := []entities.Card{
		card("Lightning Bolt"),
		card("Lightning Helix"),
		card("Chain Lightning"),
		card("Shock"),
	}
	delver := card("Delver of Secrets")
	delver.OtherCardName = "Insectile Aberration"
	aberration := card("Insectile Aberration")
	aberration.OtherCardName = "Delver of Secrets"
	aberration.ScryfallURI = ""
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

type testDeps struct {
	store    *mocks.CatalogStore
	resolver *services.ResolverService
	display  *services.DisplayService
}

func newTestDeps(t *testing.T) testDeps {
	t.Helper()
	store := mocks.NewCatalogStore(testCorpus())
	return testDeps{
		store:    store,
		resolver: services.NewResolverService(store, services.NewRankerService(0), nil),
		display:  services.NewDisplayService(store),
	}
}
