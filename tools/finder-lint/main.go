// finder-lint checks catalog access patterns in magic-finder.
package main

import (
	"golang.org/x/tools/go/analysis/multichecker"

	"github.com/magic-finder/magic-finder/tools/finder-lint/analyzers"
)

func main() {
	multichecker.Main(analyzers.All()...)
}
