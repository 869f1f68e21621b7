package entities

// MatchKind names a MatchResult variant.
type MatchKind string

const (
	MatchExact       MatchKind = "exact"
	MatchAmbiguous   MatchKind = "ambiguous"
	MatchSuggestions MatchKind = "suggestions"
)

// MatchResult is the outcome of resolving a query. It is one of
// ExactMatch, Ambiguous or Suggestions; callers type-switch on it.
type MatchResult interface {
	Kind() MatchKind
	isMatchResult()
}

// ExactMatch means exactly one card satisfied the query.
type ExactMatch struct {
	Card Card
}

// Ambiguous holds every card that satisfied the query, sorted by name.
type Ambiguous struct {
	Cards []Card
}

// Suggestions is returned when no card matched. Words are index words
// close to the input; Passthrough are input tokens already in the index.
type Suggestions struct {
	Words       []string
	Passthrough []string
}

func (ExactMatch) Kind() MatchKind { return MatchExact }
func (Ambiguous) Kind() MatchKind { return MatchAmbiguous }
func (Suggestions) Kind() MatchKind { return MatchSuggestions }

func (ExactMatch) isMatchResult() {}
func (Ambiguous) isMatchResult() {}
func (Suggestions) isMatchResult() {}
