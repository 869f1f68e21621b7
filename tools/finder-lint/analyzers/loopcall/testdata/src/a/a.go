package a

import "context"

type Card struct{ Name string }

type CatalogStore interface {
	GetByExactName(ctx context.Context, name string) (*Card, error)
	AllWords(ctx context.Context) ([]string, error)
}

func bad(ctx context.Context, names []string, store CatalogStore) {
	for _, name := range names {
		store.GetByExactName(ctx, name) // want "GetByExactName called inside loop - consider FindByAllTokensSubstring or AllNames"
	}
	for i := 0; i < 3; i++ {
		store.AllWords(ctx) // want "AllWords called inside loop"
	}
}

func good(ctx context.Context, names []string, store CatalogStore) {
	words, _ := store.AllWords(ctx)
	for _, name := range names {
		_ = len(name) + len(words)
	}
}

func deferred(ctx context.Context, names []string, store CatalogStore) []func() {
	var fns []func()
	for _, name := range names {
		fns = append(fns, func() { store.GetByExactName(ctx, name) })
	}
	return fns
}
