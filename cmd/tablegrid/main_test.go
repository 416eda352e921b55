package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

func cell(text string) *model.Node {
	return model.Cell(model.DefaultAttrs(), model.Paragraph(text))
}

// writeDoc saves doc as JSON in a temporary directory and returns its path.
func writeDoc(t *testing.T, doc *model.Node) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.json")
	if err := tablegrid.Save(path, doc, tablegrid.DefaultOptions()); err != nil {
		t.Fatalf("Failed to write test document: %v", err)
	}
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestGrid(t *testing.T) {
	path := writeDoc(t, model.Doc(model.Table(model.Body(
		model.Row(cell("a"), cell("b")),
		model.Row(cell("c")),
	))))

	out, err := execute(t, "grid", path)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	for _, want := range []string{"table 1 at 1 (2 columns, 2 rows)", "body", "a", "problem: missing"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestGridJSON(t *testing.T) {
	path := writeDoc(t, model.Doc(model.Table(model.Body(model.Row(cell("a"), cell("b"))))))

	out, err := execute(t, "grid", "--json", path)
	if err != nil {
		t.Fatalf("grid failed: %v", err)
	}
	var report tablegrid.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("Failed to decode report: %v", err)
	}
	if len(report.Tables) != 1 || report.Tables[0].Width != 2 {
		t.Errorf("Expected one table of width 2, got %+v", report.Tables)
	}
}

func TestFix(t *testing.T) {
	path := writeDoc(t, model.Doc(model.Table(model.Body(
		model.Row(cell("a"), cell("b")),
		model.Row(cell("c")),
	))))
	outPath := filepath.Join(t.TempDir(), "fixed.yaml")

	if _, err := execute(t, "fix", path, "-o", outPath); err != nil {
		t.Fatalf("fix failed: %v", err)
	}
	fixed, err := tablegrid.Load(outPath, tablegrid.DefaultOptions())
	if err != nil {
		t.Fatalf("Failed to load fixed document: %v", err)
	}
	report, err := tablegrid.Inspect(fixed)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(report.Tables) != 1 || report.Tables[0].Problems != nil {
		t.Errorf("Expected a well-formed table, got %+v", report.Tables)
	}
}

func TestApply(t *testing.T) {
	// The text of the first cell starts at 5.
	path := writeDoc(t, model.Doc(model.Table(model.Body(model.Row(cell("a"), cell("b"))))))

	out, err := execute(t, "apply", path, "--command", "add-column-after", "--anchor", "5")
	if err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	var doc model.Node
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("Failed to decode document: %v", err)
	}
	if got := doc.Child(0).Child(0).Child(0).ChildCount(); got != 3 {
		t.Errorf("Expected 3 cells, got %d", got)
	}

	if _, err := execute(t, "apply", path, "--command", "split-cell", "--anchor", "5"); err == nil {
		t.Error("Expected split-cell to be refused on a 1x1 cell")
	}
	if _, err := execute(t, "apply", path, "--anchor", "5"); err == nil {
		t.Error("Expected an error without --command")
	}
}

func TestCommandsList(t *testing.T) {
	out, err := execute(t, "commands")
	if err != nil {
		t.Fatalf("commands failed: %v", err)
	}
	for _, want := range []string{"add-column-after", "merge-cells", "toggle-header-row"} {
		if !strings.Contains(out, want+"\n") {
			t.Errorf("Expected %q in the command list, got:\n%s", want, out)
		}
	}
}

func TestEnvironment(t *testing.T) {
	path := writeDoc(t, model.Doc(model.Table(model.Body(model.Row(cell("a"), cell("b"))))))

	t.Run("global prefix", func(t *testing.T) {
		t.Setenv("TABLEGRID_PRETTY", "true")
		out, err := execute(t, "grid", "--json", path)
		if err != nil {
			t.Fatalf("grid failed: %v", err)
		}
		if !strings.Contains(out, "\n  \"tables\"") {
			t.Errorf("Expected indented JSON, got:\n%s", out)
		}
	})

	t.Run("command prefix", func(t *testing.T) {
		t.Setenv("TABLEGRID_APPLY_COMMAND", "add-column-before")
		out, err := execute(t, "apply", path, "--anchor", "5")
		if err != nil {
			t.Fatalf("apply failed: %v", err)
		}
		var doc model.Node
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("Failed to decode document: %v", err)
		}
		if got := doc.Child(0).Child(0).Child(0).ChildCount(); got != 3 {
			t.Errorf("Expected 3 cells, got %d", got)
		}
	})

	t.Run("config file", func(t *testing.T) {
		config := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(config, []byte("pretty: true\n"), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
		out, err := execute(t, "grid", "--json", "--config", config, path)
		if err != nil {
			t.Fatalf("grid failed: %v", err)
		}
		if !strings.Contains(out, "\n  \"tables\"") {
			t.Errorf("Expected indented JSON, got:\n%s", out)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("TABLEGRID_HEADER_ROWS", "many")
		if _, err := execute(t, "grid", path); err == nil {
			t.Error("Expected an error for a non-numeric header-rows value")
		}
	})
}

func TestNewLogger(t *testing.T) {
	if _, err := newLogger("verbose", "text", &bytes.Buffer{}); err == nil {
		t.Error("Expected an error for an unknown level")
	}
	if _, err := newLogger("info", "xml", &bytes.Buffer{}); err == nil {
		t.Error("Expected an error for an unknown format")
	}
	var buf bytes.Buffer
	l, err := newLogger("info", "json", &buf)
	if err != nil {
		t.Fatalf("newLogger failed: %v", err)
	}
	l.Info("hello")
	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("Expected a JSON entry, got %s", buf.String())
	}
}
