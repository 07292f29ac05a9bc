package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type recordingFatal struct {
	msg string
}

func (r *recordingFatal) Fatalf(format string, args ...any) {
	r.msg = fmt.Sprintf(format, args...)
}

func TestPredicates(t *testing.T) {
	cases := []struct {
		name string
		pred func(string) bool
		in   string
		want bool
	}{
		{"internal", InternalImportForbidden, "snip/internal/core", true},
		{"internal pkg", InternalImportForbidden, "snip/pkg/domain", false},
		{"sql", StorageDriverForbidden, "database/sql", true},
		{"sqlite", StorageDriverForbidden, "modernc.org/sqlite/lib", true},
		{"json", StorageDriverForbidden, "encoding/json", false},
		{"cobra", CLIImportForbidden, "github.com/spf13/cobra", true},
		{"pflag", CLIImportForbidden, "github.com/spf13/pflag", true},
		{"zap", CLIImportForbidden, "go.uber.org/zap", false},
		{"any of", AnyOf(CLIImportForbidden, StorageDriverForbidden), "database/sql", true},
		{"any of none", AnyOf(), "database/sql", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.pred(tc.in); got != tc.want {
				t.Fatalf("predicate(%q)=%v want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDirectImportViolations(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	write("a.go", "package x\n\nimport (\n\t\"database/sql\"\n\t\"fmt\"\n)\n\nvar _ = sql.ErrNoRows\nvar _ = fmt.Sprint\n")
	write("a_test.go", "package x\n\nimport \"github.com/spf13/cobra\"\n\nvar _ cobra.Command\n")
	write("notes.txt", "ignored")

	viols, err := directImportViolations(dir, AnyOf(StorageDriverForbidden, CLIImportForbidden))
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(viols) != 1 || !strings.HasPrefix(viols[0], "database/sql") {
		t.Fatalf("expected only database/sql violation, got %v", viols)
	}

	if _, err := directImportViolations(filepath.Join(dir, "missing"), StorageDriverForbidden); err == nil {
		t.Fatalf("expected error for missing dir")
	}
	write("broken.go", "package x\nimport (")
	if _, err := directImportViolations(dir, StorageDriverForbidden); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestTransitiveDependencyViolations(t *testing.T) {
	prev := goListDeps
	t.Cleanup(func() { goListDeps = prev })

	goListDeps = func(string) ([]byte, error) {
		return []byte("fmt\ndatabase/sql\n\nsnip/pkg/domain\n"), nil
	}
	viols, _, err := transitiveDependencyViolations("./...", StorageDriverForbidden)
	if err != nil || len(viols) != 1 || viols[0] != "database/sql" {
		t.Fatalf("unexpected result %v %v", viols, err)
	}

	goListDeps = func(string) ([]byte, error) { return []byte("boom"), errors.New("exit 1") }
	if _, out, err := transitiveDependencyViolations("./...", StorageDriverForbidden); err == nil || string(out) != "boom" {
		t.Fatalf("expected go list error passthrough")
	}
}

func TestFailIfViolations(t *testing.T) {
	rec := &recordingFatal{}
	failIfViolations(rec, "direct imports", "reason", nil)
	if rec.msg != "" {
		t.Fatalf("unexpected failure %q", rec.msg)
	}
	failIfViolations(rec, "direct imports", "keep domain pure", []string{"database/sql (in a.go)"})
	if !strings.Contains(rec.msg, "keep domain pure") || !strings.Contains(rec.msg, "database/sql") {
		t.Fatalf("unexpected message %q", rec.msg)
	}
}
