package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b     string
		expected int
	}{
		{a: "Brainstrom", b: "Brainstorm", expected: 1},
		{a: "Lightnig Bolt", b: "Lightning Bolt", expected: 1},
		{a: "Lighming Bolt", b: "Lightning Bolt", expected: 2},
		{a: "shok", b: "shock", expected: 1},
		{a: "shok", b: "sh", expected: 2},
		{a: "dragn", b: "dragon", expected: 1},
		{a: "bolt", b: "bolt", expected: 0},
		{a: "Bolt", b: "bolt", expected: 1},
		{a: "", b: "abc", expected: 3},
	}

	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.expected, Distance(tt.a, tt.b))
			assert.Equal(t, tt.expected, Distance(tt.b, tt.a))
		})
	}
}

func TestRankerService_Rank(t *testing.T) {
	words := []string{"shock", "sh", "shark", "bolt", "lightning", "dragon", "drag"}

	tests := []struct {
		name        string
		tokens      []string
		words       []string
		passthrough []string
	}{
		{
			name:        "sorted by distance, ties in index order",
			tokens:      []string{"shok"},
			words:       []string{"shock", "sh", "shark"},
			passthrough: []string{},
		},
		{
			name:        "exact token passes through",
			tokens:      []string{"bolt"},
			words:       []string{},
			passthrough: []string{"bolt"},
		},
		{
			name:        "mixed exact and misspelled",
			tokens:      []string{"lightnin", "bolt"},
			words:       []string{"lightning"},
			passthrough: []string{"bolt"},
		},
		{
			name:        "ties across tokens keep token order",
			tokens:      []string{"dragn", "shok"},
			words:       []string{"dragon", "drag", "shock", "sh", "shark"},
			passthrough: []string{},
		},
		{
			name:        "nothing close",
			tokens:      []string{"zzzznotaword"},
			words:       []string{},
			passthrough: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranker := NewRankerService(0)
			ranking := ranker.Rank(tt.tokens, words)
			assert.Equal(t, tt.words, ranking.Words)
			assert.Equal(t, tt.passthrough, ranking.Passthrough)
		})
	}
}

func TestRankerService_Rank_Deduplicates(t *testing.T) {
	ranker := NewRankerService(0)
	ranking := ranker.Rank([]string{"shok", "shck"}, []string{"shock"})
	assert.Equal(t, []string{"shock"}, ranking.Words)
}

func TestRankerService_Rank_ThresholdBound(t *testing.T) {
	words := []string{"counterspell", "brainstorm", "ponder", "preordain"}
	ranker := NewRankerService(0)

	for _, token := range []string{"brainstrom", "pondr", "preorden", "xyz"} {
		for _, w := range ranker.Rank([]string{token}, words).Words {
			d := Distance(token, w)
			assert.True(t, d >= 1 && d <= SuggestionThreshold, "%s -> %s distance %d", token, w, d)
		}
	}
}

func TestRankerService_CacheReset(t *testing.T) {
	ranker := NewRankerService(4)

	first := ranker.Rank([]string{"shok"}, []string{"shock"})
	assert.Equal(t, []string{"shock"}, first.Words)

	// Cached per token, so a changed corpus is not seen until Reset.
	stale := ranker.Rank([]string{"shok"}, []string{"shoe"})
	assert.Equal(t, []string{"shock"}, stale.Words)

	ranker.Reset()
	fresh := ranker.Rank([]string{"shok"}, []string{"shoe"})
	assert.Equal(t, []string{"shoe"}, fresh.Words)
}
