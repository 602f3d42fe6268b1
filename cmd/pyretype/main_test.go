package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/seraphln/pyre-check/internal/config"
	"github.com/seraphln/pyre-check/internal/typestore"
)

func TestMain(m *testing.M) {
	config.IsTestMode = true
	os.Exit(m.Run())
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), config.SettingsFileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

const settingsYAML = `
aliases:
  IntAlias: int
dequalify:
  typing: ""
store:
  path: types.db
  snapshot: cli
`

func TestRunRenderings(t *testing.T) {
	path := writeSettings(t, settingsYAML)

	var out bytes.Buffer
	err := run(context.Background(), options{configPath: path}, []string{"typing.Optional[IntAlias]"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "typing.Optional[IntAlias]: Optional[int]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	out.Reset()
	if err := run(context.Background(), options{configPath: path, concise: true}, []string{"typing.List[str]"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got, want := out.String(), "typing.List[str]: List[str]\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunJSON(t *testing.T) {
	path := writeSettings(t, "aliases:\n  IntAlias: int\n")

	var out bytes.Buffer
	if err := run(context.Background(), options{configPath: path, json: true}, []string{"IntAlias"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	_, doc, ok := strings.Cut(strings.TrimSpace(out.String()), ": ")
	if !ok {
		t.Fatalf("unexpected output %q", out.String())
	}
	if got := gjson.Get(doc, "name").String(); got != "int" {
		t.Errorf("name = %q, want int", got)
	}
}

func TestRunArchives(t *testing.T) {
	path := writeSettings(t, settingsYAML)

	var out bytes.Buffer
	if err := run(context.Background(), options{configPath: path}, []string{"int", "str"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}

	store, err := typestore.Open(context.Background(), filepath.Join(filepath.Dir(path), "types.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	snapshot, err := store.SnapshotByLabel(context.Background(), "cli")
	if err != nil {
		t.Fatalf("SnapshotByLabel: %v", err)
	}
	records, err := store.List(context.Background(), snapshot.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(records) != 2 || records[0].Name != "int" || records[1].Name != "str" {
		t.Errorf("unexpected records %+v", records)
	}
}

func TestRunReportsFailures(t *testing.T) {
	path := writeSettings(t, "")

	var out bytes.Buffer
	err := run(context.Background(), options{configPath: path}, []string{"int", "List[", "str"}, &out)
	if err == nil || !strings.Contains(err.Error(), "1 of 3") {
		t.Fatalf("got %v, want a failure count", err)
	}
	if got, want := out.String(), "int: int\nstr: str\n"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRunHash(t *testing.T) {
	path := writeSettings(t, "cache:\n  enabled: true\n")

	var out bytes.Buffer
	if err := run(context.Background(), options{configPath: path, hash: true}, []string{"int"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "int: int #") {
		t.Errorf("got %q", out.String())
	}
}

func TestParseFlags(t *testing.T) {
	opts, annotations, err := parseFlags([]string{"-concise", "-snapshot", "s", "int", "str"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !opts.concise || opts.snapshot != "s" || len(annotations) != 2 {
		t.Errorf("unexpected result %+v %v", opts, annotations)
	}
	if _, _, err := parseFlags(nil); err == nil {
		t.Errorf("expected an error without annotations")
	}
}

func TestUseColorDisabledInTests(t *testing.T) {
	if useColor(os.Stdout) {
		t.Errorf("colour must be off in test mode")
	}
}
