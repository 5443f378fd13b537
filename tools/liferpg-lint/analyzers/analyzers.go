// Package analyzers provides all custom static analyzers for liferpg-core.
package analyzers

import (
	"golang.org/x/tools/go/analysis"

	"github.com/ersonp/liferpg-core/tools/liferpg-lint/analyzers/determinism"
	"github.com/ersonp/liferpg-core/tools/liferpg-lint/analyzers/loopcall"
)

// All returns all analyzers to run.
func All() []*analysis.Analyzer {
	return []*analysis.Analyzer{
		determinism.Analyzer,
		loopcall.Analyzer,
	}
}
