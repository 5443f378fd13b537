// liferpg-lint is a custom static analyzer for liferpg-core.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/ersonp/liferpg-core/tools/liferpg-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
