package main

import (
	"context"
	"os"

	"github.com/yaklabco/autoxbuild/cmd/autoxbuild"
	"github.com/yaklabco/autoxbuild/pkg/st"
)

func main() {
	os.Exit(actualMain())
}

// actualMain returns the process exit code: 0 on success, otherwise the
// failing step's exit status.
func actualMain() int {
	ctx := context.Background()

	rootCmd := autoxbuild.NewRootCmd(ctx)

	// fang has already rendered the error to stderr.
	return st.ExitStatus(autoxbuild.ExecuteWithFang(ctx, rootCmd))
}
