// Package determinism keeps domain code replayable from a seed.
//
// Domain packages draw randomness from ports.RandomSource and receive the
// current time from their caller. Reaching for a global generator, the
// wall clock or uuid's crypto-backed constructors there makes a seeded run
// unrepeatable.
package determinism

import (
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports randomness and wall clock use in domain packages.
var Analyzer = &analysis.Analyzer{
	Name:     "determinism",
	Doc:      "reports math/rand, crypto/rand, time.Now and random uuid constructors in domain packages",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

var domainPath string

func init() {
	Analyzer.Flags.StringVar(&domainPath, "domain", "/internal/domain/",
		"package path fragment that marks domain packages")
}

var forbiddenImports = map[string]string{
	"math/rand":    "use ports.RandomSource",
	"math/rand/v2": "use ports.RandomSource",
	"crypto/rand":  "use ports.RandomSource",
}

type call struct {
	pkg, name string
}

const uuidPath = "github.com/google/uuid"

var forbiddenCalls = map[call]string{
	{"time", "Now"}:         "take the time as a parameter",
	{uuidPath, "New"}:       "use uuid.NewRandomFromReader over ports.RandomSource",
	{uuidPath, "NewString"}: "use uuid.NewRandomFromReader over ports.RandomSource",
	{uuidPath, "NewRandom"}: "use uuid.NewRandomFromReader over ports.RandomSource",
	{uuidPath, "NewV7"}:     "use uuid.NewRandomFromReader over ports.RandomSource",
}

func run(pass *analysis.Pass) (any, error) {
	if !strings.Contains(pass.Pkg.Path()+"/", domainPath) {
		return nil, nil
	}

	for _, file := range pass.Files {
		if isTest(pass, file.Pos()) {
			continue
		}
		for _, imp := range file.Imports {
			path, err := strconv.Unquote(imp.Path.Value)
			if err != nil {
				continue
			}
			if hint, ok := forbiddenImports[path]; ok {
				pass.Reportf(imp.Pos(), "%s imported in domain package: %s", path, hint)
			}
		}
	}

	inspect := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)
	inspect.Preorder([]ast.Node{(*ast.SelectorExpr)(nil)}, func(n ast.Node) {
		sel := n.(*ast.SelectorExpr)
		id, ok := sel.X.(*ast.Ident)
		if !ok {
			return
		}
		pkg, ok := pass.TypesInfo.Uses[id].(*types.PkgName)
		if !ok {
			return
		}
		hint, ok := forbiddenCalls[call{pkg.Imported().Path(), sel.Sel.Name}]
		if !ok || isTest(pass, sel.Pos()) {
			return
		}
		pass.Reportf(sel.Pos(), "%s.%s in domain package: %s", pkg.Imported().Name(), sel.Sel.Name, hint)
	})

	return nil, nil
}

func isTest(pass *analysis.Pass, pos token.Pos) bool {
	return strings.HasSuffix(pass.Fset.File(pos).Name(), "_test.go")
}
