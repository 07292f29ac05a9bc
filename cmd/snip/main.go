// Command snip is a personal code-snippet manager backed by a local file.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"snip/pkg/domain"
)

var exitFunc = os.Exit

func main() {
	code := cli(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	exitFunc(code)
}

// cli runs one snip invocation and returns the process exit code.
// NotFound and EmptyStore outcomes are informational and exit 0.
func cli(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{stdout: stdout, stderr: stderr}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if flushErr := a.close(); flushErr != nil && err == nil {
		err = flushErr
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		if errors.Is(err, domain.ErrCorruptStore) {
			_, _ = fmt.Fprintln(stderr, "Fix or delete the store document to continue.")
		}
		return 1
	}
	return 0
}
