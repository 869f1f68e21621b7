// Package entities contains the card catalog domain model.
package entities

import "strings"

// NoOracleText is stored in place of rules text for faces that have none.
const NoOracleText = "<No Oracle Text>"

// PartnerSeparator joins the two face names of a double-faced card.
const PartnerSeparator = " // "

// Card represents one playable face of a catalog item.
// Optional attributes are empty strings when absent.
type Card struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	LowercaseName  string `json:"lowercase_name"`
	TypeLine       string `json:"type_line"`
	OracleText     string `json:"oracle_text,omitempty"`
	PowerToughness string `json:"power_toughness,omitempty"`
	Loyalty        string `json:"loyalty,omitempty"`
	ManaCost       string `json:"mana_cost,omitempty"`
	ScryfallURI    string `json:"scryfall_uri,omitempty"`
	OtherCardName  string `json:"other_card_name,omitempty"` // Partner face, if any
}

// HasPartner reports whether the card is one face of a two-faced item.
func (c *Card) HasPartner() bool {
	return c.OtherCardName != ""
}

// CombinedName returns "Front // Back" for two-faced items, or the plain name.
func (c *Card) CombinedName() string {
	if !c.HasPartner() {
		return c.Name
	}
	return c.Name + PartnerSeparator + c.OtherCardName
}

// Label is the text a list front-end shows for this card.
func (c *Card) Label() string {
	return c.CombinedName()
}

// StripPartner removes a trailing " // partner" suffix added by Label.
func StripPartner(label string) string {
	label = strings.TrimSpace(label)
	if i := strings.Index(label, PartnerSeparator); i >= 0 {
		return strings.TrimSpace(label[:i])
	}
	return label
}

// PowerToughness builds the "P/T" composite. Both halves must be present.
func PowerToughness(power, toughness string) string {
	if power == "" || toughness == "" {
		return ""
	}
	return power + "/" + toughness
}

// Corpus is a complete, validated catalog ready to be stored.
type Corpus struct {
	Cards []Card
	Words []string // Deduplicated, in first-seen order
}
