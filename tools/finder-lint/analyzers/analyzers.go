// Package analyzers provides the custom static analyzers for magic-finder.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/magic-finder/magic-finder/tools/finder-lint/analyzers/ctxquery"
	"github.com/magic-finder/magic-finder/tools/finder-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		loopcall.Analyzer,
		ctxquery.Analyzer,
	}
}
