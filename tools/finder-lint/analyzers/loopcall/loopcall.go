// Package loopcall detects per-item catalog lookups inside loops.
package loopcall

import (
	"go/ast"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports catalog store and bulk data calls made once per loop
// iteration. Each one is a full SQLite query or HTTP round trip.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects catalog store and bulk data calls inside loops",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// storeMethods maps method names to the bulk alternative suggested.
var storeMethods = map[string]string{
	// CatalogStore
	"GetByExactName":           "FindByAllTokensSubstring or AllNames",
	"GetByExactLowercaseName":  "FindByAllTokensSubstring or AllLowercaseNames",
	"FindByAllTokensSubstring": "a single call with all patterns",
	"AllWords":                 "loading words once before the loop",
	"AllNames":                 "loading names once before the loop",
	"CheckPopulated":           "checking once before the loop",
	"Rebuild":                  "building one corpus",
	// BulkDataSource
	"Lookup": "looking up once before the loop",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	nodeFilter := []ast.Node{
		(*ast.RangeStmt)(nil),
		(*ast.ForStmt)(nil),
	}

	inspect.Preorder(nodeFilter, func(n ast.Node) {
		var body *ast.BlockStmt
		switch stmt := n.(type) {
		case *ast.RangeStmt:
			body = stmt.Body
		case *ast.ForStmt:
			body = stmt.Body
		}
		if body == nil {
			return
		}

		ast.Inspect(body, func(n ast.Node) bool {
			// Closures run later; their bodies are not per-iteration calls.
			if _, ok := n.(*ast.FuncLit); ok {
				return false
			}

			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			if hint, ok := storeMethods[sel.Sel.Name]; ok {
				pass.Reportf(call.Pos(),
					"%s called inside loop - consider %s",
					sel.Sel.Name, hint)
			}

			return true
		})
	})

	return nil, nil
}
