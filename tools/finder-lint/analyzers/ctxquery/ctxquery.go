// Package ctxquery detects database/sql calls that ignore the caller's context.
package ctxquery

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports database/sql methods that have a Context variant.
var Analyzer = &analysis.Analyzer{
	Name:     "ctxquery",
	Doc:      "detects database/sql calls that should use their Context variant",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var contextVariants = map[string]string{
	"Query":    "QueryContext",
	"QueryRow": "QueryRowContext",
	"Exec":     "ExecContext",
	"Prepare":  "PrepareContext",
	"Begin":    "BeginTx",
	"Ping":     "PingContext",
}

func run(pass *analysis.Pass) (interface{}, error) {
	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	inspect.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}

		variant, ok := contextVariants[sel.Sel.Name]
		if !ok {
			return
		}

		fn, ok := pass.TypesInfo.Uses[sel.Sel].(*types.Func)
		if !ok || fn.Pkg() == nil || fn.Pkg().Path() != "database/sql" {
			return
		}

		pass.Reportf(call.Pos(), "sql %s ignores context - use %s", sel.Sel.Name, variant)
	})

	return nil, nil
}
