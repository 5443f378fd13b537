// Package loopcall detects embedding and vector store calls inside loops.
package loopcall

import (
	"go/ast"
	"go/types"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer detects remote calls inside loops that should be batched.
var Analyzer = &analysis.Analyzer{
	Name:     "loopcall",
	Doc:      "detects embedding and vector store calls inside loops that should be batched",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// remoteMethods are method names that cost a network round trip.
// The batch variants (EmbedBatch, SaveBatch) are the fix, so they are not listed.
var remoteMethods = map[string]bool{
	// Embedder
	"Embed": true,
	// FactIndex and CollectionManager
	"Search":           true,
	"Count":            true,
	"EnsureCollection": true,
	"DeleteCollection": true,
}

func run(pass *analysis.Pass) (any, error) {
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
			call, ok := n.(*ast.CallExpr)
			if !ok {
				return true
			}

			sel, ok := call.Fun.(*ast.SelectorExpr)
			if !ok {
				return true
			}

			// Package-level functions such as strings.Count are not remote.
			if id, ok := sel.X.(*ast.Ident); ok {
				if _, isPkg := pass.TypesInfo.Uses[id].(*types.PkgName); isPkg {
					return true
				}
			}

			if remoteMethods[sel.Sel.Name] {
				pass.Reportf(call.Pos(),
					"potential N+1: %s called inside loop - consider batching",
					sel.Sel.Name)
			}

			return true
		})
	})

	return nil, nil
}
