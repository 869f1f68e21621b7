// Package completion suggests card names for a partially typed query.
package completion

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/magic-finder/magic-finder/internal/domain/entities"
)

// DefaultLimit caps the number of completions returned.
const DefaultLimit = 20

// Index answers name completions. Every word-suffix of a normalized name is
// a trie key, so "bolt" completes "Lightning Bolt" as well as "Boltwing".
type Index struct {
	trie  *patricia.Trie
	names []string
	lower []string
}

// NewIndex builds an Index over display names.
func NewIndex(names []string) *Index {
	idx := &Index{
		trie:  patricia.NewTrie(),
		names: names,
		lower: make([]string, len(names)),
	}
	for i, name := range names {
		idx.lower[i] = entities.NormalizeName(name)
		fields := strings.Fields(idx.lower[i])
		for j := range fields {
			key := patricia.Prefix(strings.Join(fields[j:], " "))
			if item := idx.trie.Get(key); item != nil {
				idx.trie.Set(key, append(item.([]int), i))
				continue
			}
			idx.trie.Insert(key, []int{i})
		}
	}
	return idx
}

// Len returns the number of indexed names.
func (idx *Index) Len() int {
	return len(idx.names)
}

// Complete returns up to limit names matching prefix. Names that start with
// the prefix come first, then names with a later word starting with it, each
// group in byte order. When nothing matches, names are ranked by fuzzy
// subsequence match instead.
func (idx *Index) Complete(prefix string, limit int) []string {
	query := entities.NormalizeName(prefix)
	if query == "" {
		return nil
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	seen := make(map[int]struct{})
	var hits []int
	_ = idx.trie.VisitSubtree(patricia.Prefix(query), func(_ patricia.Prefix, item patricia.Item) error {
		for _, i := range item.([]int) {
			if _, ok := seen[i]; ok {
				continue
			}
			seen[i] = struct{}{}
			hits = append(hits, i)
		}
		return nil
	})

	if len(hits) == 0 {
		return idx.fuzzy(query, limit)
	}

	sort.Slice(hits, func(a, b int) bool {
		pa := strings.HasPrefix(idx.lower[hits[a]], query)
		pb := strings.HasPrefix(idx.lower[hits[b]], query)
		if pa != pb {
			return pa
		}
		return idx.names[hits[a]] < idx.names[hits[b]]
	})

	if len(hits) > limit {
		hits = hits[:limit]
	}
	result := make([]string, len(hits))
	for i, h := range hits {
		result[i] = idx.names[h]
	}
	return result
}

func (idx *Index) fuzzy(query string, limit int) []string {
	matches := fuzzy.Find(query, idx.lower)
	if len(matches) > limit {
		matches = matches[:limit]
	}
	result := make([]string, len(matches))
	for i, m := range matches {
		result[i] = idx.names[m.Index]
	}
	return result
}
