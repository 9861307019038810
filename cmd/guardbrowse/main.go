// guardbrowse is an interactive browser for a spreadsheet of guardrail
// validators, filterable by use case, risk category and content type.
package main

import (
	"os"

	"github.com/hupe1980/guardbrowse/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
