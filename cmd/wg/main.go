package main

import (
	"errors"
	"fmt"
	"os"

	app "github.com/valter-silva-au/workgraph/internal"
	"github.com/valter-silva-au/workgraph/internal/cli"
	"github.com/valter-silva-au/workgraph/internal/core"
	"github.com/valter-silva-au/workgraph/pkg/models"
)

// Set by goreleaser ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	basePath := app.ResolveBasePath()

	a, err := app.NewApp(basePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing wg: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = a.Close() }()

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit code: 2 for missing items,
// 3 for rendering failures, 1 for everything else.
func exitCode(err error) int {
	var notFound *models.NotFoundError
	if errors.As(err, &notFound) {
		return 2
	}
	var renderErr *models.RenderError
	if errors.As(err, &renderErr) {
		return 3
	}
	var validation *models.ValidationError
	if errors.As(err, &validation) {
		return 1
	}
	var dependents *core.DependentsError
	if errors.As(err, &dependents) {
		return 1
	}
	return 1
}
