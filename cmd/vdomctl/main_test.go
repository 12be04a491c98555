package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vango-dev/reconcile/internal/config"
	"github.com/vango-dev/reconcile/internal/errors"
)

func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	var out, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"-C", dir, "--log-level", "error"}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func demoScene(t *testing.T) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", "demo.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRenderCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "render", demoScene(t), "--mutations")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	for _, want := range []string{
		"== mount ==",
		"-- CreateElement",
		`<p class="greeting">hello</p>`,
		"== edit ==",
		`SetText`,
		`<p class="greeting">world</p>`,
		"== same ==\n-- no changes\n",
		"== clear ==\n-- RemoveChild",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderLastAndSave(t *testing.T) {
	dir := t.TempDir()
	out, err := run(t, dir, "render", demoScene(t), "--last", "--save")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(out, "== mount ==") || !strings.Contains(out, "== clear ==") {
		t.Errorf("--last output = %q", out)
	}
	if !strings.Contains(out, "snapshot ") {
		t.Fatalf("output = %q, want a snapshot id", out)
	}

	list, err := run(t, dir, "snapshot", "list")
	if err != nil {
		t.Fatalf("snapshot list: %v", err)
	}
	ids := strings.Fields(list)
	if len(ids) != 1 || !strings.Contains(out, ids[0]) {
		t.Fatalf("snapshot list = %q", list)
	}
	if _, err := os.Stat(filepath.Join(dir, config.DefaultSnapshotDir)); err != nil {
		t.Errorf("snapshot dir not created: %v", err)
	}

	show, err := run(t, dir, "snapshot", "show")
	if err != nil {
		t.Fatalf("snapshot show: %v", err)
	}
	if !strings.Contains(show, ids[0]) || !strings.Contains(show, "Snapshot, seq 3") {
		t.Errorf("snapshot show = %q", show)
	}
}

func TestSnapshotShowErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "snapshot", "show"); !errors.HasCode(err, "E041") {
		t.Errorf("show on empty store = %v, want E041", err)
	}
	if _, err := run(t, dir, "snapshot", "show", "nope"); !errors.HasCode(err, "E041") {
		t.Errorf("show invalid id = %v, want E041", err)
	}
}

func TestRenderMissingScene(t *testing.T) {
	_, err := run(t, t.TempDir(), "render", "does-not-exist.yaml")
	if !errors.HasCode(err, "E030") {
		t.Errorf("render missing scene = %v, want E030", err)
	}
}

func TestConfigInitAndShow(t *testing.T) {
	dir := t.TempDir()
	if _, err := run(t, dir, "config", "init"); err != nil {
		t.Fatalf("config init: %v", err)
	}
	if !config.Exists(dir) {
		t.Fatal("config init did not write the file")
	}
	if _, err := run(t, dir, "config", "init"); !errors.HasCode(err, "E022") {
		t.Errorf("second init = %v, want E022", err)
	}
	if _, err := run(t, dir, "config", "init", "--force"); err != nil {
		t.Errorf("init --force: %v", err)
	}

	out, err := run(t, dir, "config", "show")
	if err != nil {
		t.Fatalf("config show: %v", err)
	}
	if !strings.Contains(out, config.DefaultAddr) {
		t.Errorf("config show = %q, want %s", out, config.DefaultAddr)
	}
}

func TestInvalidLogLevel(t *testing.T) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"-C", t.TempDir(), "--log-level", "chatty", "config", "show"})
	if err := cmd.Execute(); !errors.HasCode(err, "E022") {
		t.Errorf("Execute() = %v, want E022", err)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "version", "--short")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != version {
		t.Errorf("version --short = %q, want %q", out, version)
	}
}

func TestErrorsCommand(t *testing.T) {
	out, err := run(t, t.TempDir(), "errors")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"E003  portal", "E041  snapshot   Snapshot not found"} {
		if !strings.Contains(out, want) {
			t.Errorf("errors output missing %q:\n%s", want, out)
		}
	}

	out, err = run(t, t.TempDir(), "errors", "E006")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "E006 (render): Reentrant render\n") {
		t.Errorf("errors E006 = %q", out)
	}

	if _, err := run(t, t.TempDir(), "errors", "E999"); err == nil {
		t.Error("unknown code should fail")
	}
}

func TestErrorFormatFlag(t *testing.T) {
	defer errors.SetOutputFormat(errors.OutputText)

	_, err := run(t, t.TempDir(), "--error-format", "json", "render", "does-not-exist.yaml")
	if !errors.HasCode(err, "E030") {
		t.Fatalf("render missing scene = %v, want E030", err)
	}
	var buf bytes.Buffer
	errors.Fprint(&buf, err)
	if !strings.HasPrefix(buf.String(), `{"code":"E030"`) {
		t.Errorf("json error output = %q", buf.String())
	}

	if _, err := run(t, t.TempDir(), "--error-format", "yaml", "version"); err == nil {
		t.Error("unknown --error-format should fail")
	}
}
