package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"snip/pkg/domain"
)

type result struct {
	code   int
	stdout string
	stderr string
}

// setup isolates config lookup and points the file driver at a temp document.
func setup(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("SNIP_STORAGE_DRIVER", "")
	t.Setenv("SNIP_SQLITE_PATH", "")
	t.Setenv("SNIP_METRICS_TEXTFILE", "")
	path := filepath.Join(dir, "snip", "snippets.json")
	t.Setenv("SNIP_FILE_PATH", path)
	return path
}

func run(t *testing.T, args ...string) result {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := cli(context.Background(), args, &stdout, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func TestCLIConcreteScenario(t *testing.T) {
	path := setup(t)

	r := run(t, "add", "print(1)", "--lang", "python")
	if r.code != 0 || r.stdout != "Added snippet 1\n" {
		t.Fatalf("add python: %+v", r)
	}
	r = run(t, "add", "fmt.Println(1)", "-l", "go", "-t", "demo")
	if r.code != 0 || r.stdout != "Added snippet 2\n" {
		t.Fatalf("add go: %+v", r)
	}

	r = run(t, "list", "--tag", "dem")
	if r.code != 0 || !strings.HasPrefix(r.stdout, "2: {") || strings.Contains(r.stdout, "1: {") {
		t.Fatalf("list demo: %+v", r)
	}

	r = run(t, "pop")
	if r.code != 0 || !strings.HasPrefix(r.stdout, "2: {") {
		t.Fatalf("pop: %+v", r)
	}

	r = run(t, "get", "2")
	if r.code != 0 || r.stdout != "" || strings.TrimSpace(r.stderr) != "Snippet with ID 2 not found" {
		t.Fatalf("get missing: %+v", r)
	}

	r = run(t, "get", "1")
	if r.code != 0 || r.stdout != "print(1)\n" {
		t.Fatalf("get 1: %+v", r)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var persisted []domain.Snippet
	if err := json.Unmarshal(b, &persisted); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != 1 || persisted[0].Language != "python" {
		t.Fatalf("unexpected persisted state: %+v", persisted)
	}
}

func TestCLIListPrintsPrettyRecords(t *testing.T) {
	setup(t)
	run(t, "add", "x", "-l", "go", "--tags", "a", "--tags", "b", "-t", "c")
	r := run(t, "list")
	want := "1: {\n  \"id\": 1,\n  \"code\": \"x\",\n  \"lang\": \"go\",\n  \"tags\": [\n    \"a\",\n    \"b\",\n    \"c\"\n  ]\n}\n"
	if r.stdout != want {
		t.Fatalf("unexpected list output:\n%q\nwant\n%q", r.stdout, want)
	}
}

func TestCLITagsKeptVerbatim(t *testing.T) {
	path := setup(t)
	r := run(t, "add", "y", "-l", "go", "-t", `say"hi`, "-t", "a,b")
	if r.code != 0 || r.stdout != "Added snippet 1\n" {
		t.Fatalf("add with literal tags: %+v", r)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read store: %v", err)
	}
	var persisted []domain.Snippet
	if err := json.Unmarshal(b, &persisted); err != nil {
		t.Fatalf("decode store: %v", err)
	}
	want := []string{`say"hi`, "a,b"}
	if len(persisted) != 1 || len(persisted[0].Tags) != 2 || persisted[0].Tags[0] != want[0] || persisted[0].Tags[1] != want[1] {
		t.Fatalf("expected tags %q, got %+v", want, persisted)
	}
}

func TestCLIListEmptyTagSkipsUntagged(t *testing.T) {
	setup(t)
	run(t, "add", "untagged", "-l", "go")
	run(t, "add", "tagged", "-l", "go", "-t", "x")

	r := run(t, "list", "--tag=")
	if r.code != 0 || strings.Contains(r.stdout, `"code": "untagged"`) || !strings.Contains(r.stdout, `"code": "tagged"`) {
		t.Fatalf("list with empty tag: %+v", r)
	}
	r = run(t, "list")
	if !strings.Contains(r.stdout, `"code": "untagged"`) || !strings.Contains(r.stdout, `"code": "tagged"`) {
		t.Fatalf("list without filter: %+v", r)
	}
}

func TestCLIRemove(t *testing.T) {
	setup(t)
	run(t, "add", "A", "-l", "go")
	run(t, "add", "B", "-l", "go")
	run(t, "add", "C", "-l", "go")

	r := run(t, "remove", "2")
	if r.code != 0 || !strings.Contains(r.stdout, `"code": "B"`) {
		t.Fatalf("remove: %+v", r)
	}
	r = run(t, "rm", "2")
	if r.code != 0 || !strings.Contains(r.stderr, "Snippet with ID 2 not found") {
		t.Fatalf("remove missing: %+v", r)
	}
	r = run(t, "list")
	if !strings.HasPrefix(r.stdout, "1: {") || !strings.Contains(r.stdout, "\n3: {") {
		t.Fatalf("expected [1 3], got %q", r.stdout)
	}
}

func TestCLIPopEmptyIsInformational(t *testing.T) {
	setup(t)
	r := run(t, "pop")
	if r.code != 0 || strings.TrimSpace(r.stderr) != "No snippets to pop" {
		t.Fatalf("pop empty: %+v", r)
	}
}

func TestCLIUsageErrors(t *testing.T) {
	setup(t)
	cases := []struct {
		name string
		args []string
	}{
		{"add without lang", []string{"add", "x"}},
		{"add empty lang", []string{"add", "x", "--lang", ""}},
		{"add empty code", []string{"add", "", "--lang", "go"}},
		{"get non numeric", []string{"get", "abc"}},
		{"get missing arg", []string{"get"}},
		{"unknown command", []string{"frobnicate"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := run(t, tc.args...)
			if r.code != 1 || !strings.Contains(r.stderr, "Error:") {
				t.Fatalf("expected exit 1 with error, got %+v", r)
			}
		})
	}
}

func TestCLICorruptStore(t *testing.T) {
	path := setup(t)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	r := run(t, "list")
	if r.code != 1 || !strings.Contains(r.stderr, path) || !strings.Contains(r.stderr, "Fix or delete") {
		t.Fatalf("expected corrupt store report, got %+v", r)
	}
}

func TestCLIConfigFileSelectsSQLite(t *testing.T) {
	setup(t)
	t.Setenv("SNIP_FILE_PATH", "")
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	dbPath := filepath.Join(dir, "snippets.db")
	content := "storage:\n  driver: sqlite\n  sqlite_path: " + dbPath + "\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if r := run(t, "--config", cfgPath, "add", "x", "-l", "go"); r.code != 0 {
		t.Fatalf("add: %+v", r)
	}
	r := run(t, "-c", cfgPath, "get", "1")
	if r.code != 0 || r.stdout != "x\n" {
		t.Fatalf("get: %+v", r)
	}
	if _, err := os.Stat(dbPath); err != nil {
		t.Fatalf("expected sqlite database: %v", err)
	}
}

func TestCLIMissingConfigFile(t *testing.T) {
	setup(t)
	r := run(t, "--config", filepath.Join(t.TempDir(), "absent.yaml"), "list")
	if r.code != 1 {
		t.Fatalf("expected failure for missing config, got %+v", r)
	}
}

func TestCLIMetricsTextfile(t *testing.T) {
	setup(t)
	prom := filepath.Join(t.TempDir(), "snip.prom")
	t.Setenv("SNIP_METRICS_TEXTFILE", prom)
	run(t, "add", "x", "-l", "go")
	b, err := os.ReadFile(prom)
	if err != nil {
		t.Fatalf("read metrics: %v", err)
	}
	if !strings.Contains(string(b), `snip_operations_total{operation="add",status="success"} 1`) {
		t.Fatalf("unexpected metrics:\n%s", b)
	}
}

func TestCLIDebugTracesToStderr(t *testing.T) {
	setup(t)
	r := run(t, "-dd", "list")
	if r.code != 0 {
		t.Fatalf("list: %+v", r)
	}
	if !strings.Contains(r.stderr, `"operation":"list"`) || !strings.Contains(r.stderr, `"driver":"file"`) || !strings.Contains(r.stderr, "snippets loaded") {
		t.Fatalf("expected trace and debug log on stderr, got %q", r.stderr)
	}
	quiet := run(t, "list")
	if quiet.stderr != "" {
		t.Fatalf("expected silent stderr without --debug, got %q", quiet.stderr)
	}
}

func TestMainUsesExitFunc(t *testing.T) {
	setup(t)
	var got = -1
	prevExit, prevArgs := exitFunc, os.Args
	t.Cleanup(func() { exitFunc, os.Args = prevExit, prevArgs })
	exitFunc = func(code int) { got = code }
	os.Args = []string{"snip", "list"}
	main()
	if got != 0 {
		t.Fatalf("expected exit 0, got %d", got)
	}
}
