package ctxquery_test

import (
	"testing"

	"golang.org/x/tools/go/analysis/analysistest"

	"github.com/magic-finder/magic-finder/tools/finder-lint/analyzers/ctxquery"
)

func TestAnalyzer(t *testing.T) {
	testdata := analysistest.TestData()
	analysistest.Run(t, testdata, ctxquery.Analyzer, "a")
}
