package services

import (
	"sort"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hbollon/go-edlib"
)

// SuggestionThreshold is the largest edit distance offered as a suggestion.
const SuggestionThreshold = 2

// DefaultSuggestionCacheSize bounds the per-token memo.
const DefaultSuggestionCacheSize = 512

// Distance is the Damerau-Levenshtein distance between a and b: insertions,
// deletions, substitutions and adjacent transpositions each cost 1.
// No case folding happens here.
func Distance(a, b string) int {
	return edlib.DamerauLevenshteinDistance(a, b)
}

// Ranking is the fuzzy-match outcome for a set of tokens.
type Ranking struct {
	Words       []string // Close words, nearest first
	Passthrough []string // Tokens already present in the word index
}

type candidate struct {
	word     string
	distance int
}

// tokenScan is the memoized result for one token.
type tokenScan struct {
	exact      bool
	candidates []candidate // In word-index order, 0 < distance <= threshold
}

// RankerService scores tokens against the word index. Its cache is keyed by
// token only, so it must be Reset whenever the corpus changes.
type RankerService struct {
	cache *lru.Cache[string, tokenScan]
}

// NewRankerService creates a ranker with a bounded memo of cacheSize tokens.
// A non-positive size uses DefaultSuggestionCacheSize.
func NewRankerService(cacheSize int) *RankerService {
	if cacheSize <= 0 {
		cacheSize = DefaultSuggestionCacheSize
	}
	cache, err := lru.New[string, tokenScan](cacheSize)
	if err != nil {
		// Only returned for non-positive sizes, handled above.
		panic(err)
	}
	return &RankerService{cache: cache}
}

// Reset drops every memoized scan.
func (s *RankerService) Reset() {
	s.cache.Purge()
}

// Rank returns the index words within SuggestionThreshold of any token,
// sorted by ascending distance. Ties keep discovery order: token order
// first, then word-index order. A word close to several tokens is listed
// once. Tokens that are themselves index words go to Passthrough.
func (s *RankerService) Rank(tokens, words []string) Ranking {
	var found []candidate
	passthrough := []string{}

	for _, token := range tokens {
		scan := s.scan(token, words)
		if scan.exact {
			passthrough = append(passthrough, token)
			continue
		}
		found = append(found, scan.candidates...)
	}

	sort.SliceStable(found, func(i, j int) bool {
		return found[i].distance < found[j].distance
	})

	seen := make(map[string]bool, len(found))
	suggestions := make([]string, 0, len(found))
	for _, c := range found {
		if seen[c.word] {
			continue
		}
		seen[c.word] = true
		suggestions = append(suggestions, c.word)
	}

	return Ranking{Words: suggestions, Passthrough: passthrough}
}

func (s *RankerService) scan(token string, words []string) tokenScan {
	if cached, ok := s.cache.Get(token); ok {
		return cached
	}

	var result tokenScan
	for _, w := range words {
		d := Distance(token, w)
		if d == 0 {
			result = tokenScan{exact: true}
			break
		}
		if d <= SuggestionThreshold {
			result.candidates = append(result.candidates, candidate{word: w, distance: d})
		}
	}

	s.cache.Add(token, result)
	return result
}
