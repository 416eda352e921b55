package tablegrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/commands"
	. "github.com/ukaji3/tablegrid-go/pkg/tablegrid/internal/fixture"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
)

var (
	doc   = model.Doc
	table = model.Table
	thead = model.Head
	tbody = model.Body
	tr    = model.Row
)

func boolPtr(b bool) *bool { return &b }

func TestFormatOf(t *testing.T) {
	tests := []struct {
		path    string
		want    Format
		wantErr bool
	}{
		{"doc.json", FormatJSON, false},
		{"doc.YAML", FormatYAML, false},
		{"doc.yml", FormatYAML, false},
		{"book.xlsx", FormatXLSX, false},
		{"notes.txt", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := FormatOf(tt.path)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("Expected %q, got %q (%v)", tt.want, got, err)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	opts := DefaultOptions()
	if !opts.ShouldImportWidths() {
		t.Error("Expected widths to be imported by default")
	}
	opts.Widths = boolPtr(false)
	if opts.ShouldImportWidths() {
		t.Error("Expected widths override to be honored")
	}
	opts.LegacyHeaderToggle = true
	if !opts.CommandOptions().LegacyHeaderToggle {
		t.Error("Expected LegacyHeaderToggle to reach the command options")
	}
	if (Options{}).NormalizeOptions().Logger == nil {
		t.Error("Expected a logger in the normalizer options")
	}
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(filepath.Join(dir, "missing.json"), DefaultOptions())
	if !errors.Is(err, ErrFileNotFound) {
		t.Errorf("Expected ErrFileNotFound, got %v", err)
	}
	var docErr *DocumentError
	if !errors.As(err, &docErr) || docErr.Stage != "read" {
		t.Errorf("Expected a read DocumentError, got %v", err)
	}

	para := filepath.Join(dir, "para.json")
	if err := os.WriteFile(para, []byte(`{"type":"paragraph"}`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := Load(para, DefaultOptions()); !errors.Is(err, model.ErrInvalidNode) {
		t.Errorf("Expected ErrInvalidNode, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"type":`), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	if _, err := Load(bad, DefaultOptions()); !errors.As(err, &docErr) || docErr.Stage != "decode" {
		t.Errorf("Expected a decode DocumentError, got %v", err)
	}

	if _, err := Load(filepath.Join(dir, "doc.txt"), DefaultOptions()); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadBareTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "table.json")
	data := `{"type":"table","content":[{"type":"body","content":[{"type":"row","content":[{"type":"cell","content":[{"type":"paragraph"}]}]}]}]}`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	got, err := Load(path, DefaultOptions())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := doc(table(tbody(tr(CEmpty()))))
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}
}

func TestSaveLoad(t *testing.T) {
	d := doc(P("intro"), table(thead(tr(H(2, 1))), tbody(tr(C11(), CW(120)))))
	for _, name := range []string{"doc.json", "doc.yaml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			opts := DefaultOptions()
			opts.Pretty = true
			if err := Save(path, d, opts); err != nil {
				t.Fatalf("Save failed: %v", err)
			}
			got, err := Load(path, opts)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if !got.Equal(d) {
				t.Errorf("Expected %s, got %s", d, got)
			}
		})
	}
}

func TestSaveLoadSpreadsheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	d := doc(P("intro"), table(thead(tr(H(2, 1))), tbody(tr(C11(), C(1, 2)), tr(C11()))))

	opts := DefaultOptions()
	opts.Sheet = "Grid"
	if err := Save(path, d, opts); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	opts.HeaderRows = 1
	opts.Widths = boolPtr(false)
	got, err := Load(path, opts)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := doc(table(thead(tr(H(2, 1))), tbody(tr(C11(), C(1, 2)), tr(C11()))))
	if !got.Equal(want) {
		t.Errorf("Expected %s, got %s", want, got)
	}

	err = Save(filepath.Join(t.TempDir(), "empty.xlsx"), doc(P("x")), DefaultOptions())
	if !errors.Is(err, ErrNoTable) {
		t.Errorf("Expected ErrNoTable, got %v", err)
	}
}

func TestInspect(t *testing.T) {
	d := doc(P("a"), table(tbody(tr(C11(), C11()))), table(tbody(tr(C11()), tr(C11(), C11()))))
	report, err := Inspect(d)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(report.Tables) != 2 {
		t.Fatalf("Expected 2 tables, got %d", len(report.Tables))
	}
	first := report.Tables[0]
	if first.Start != 4 {
		t.Errorf("Expected the first table content at 4, got %d", first.Start)
	}
	if diff := cmp.Diff([][]string{{"x", "x"}}, first.Slots); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
	if len(report.Tables[1].Problems) == 0 {
		t.Error("Expected the second table to report a missing slot")
	}
}

func TestFix(t *testing.T) {
	d := doc(table(tbody(tr(C11(), C11()), tr(C11()))))
	fixed, changed, err := Fix(d, DefaultOptions())
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if !changed {
		t.Error("Expected the table to be repaired")
	}
	report, err := Inspect(fixed)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if len(report.Tables) != 1 || report.Tables[0].Problems != nil {
		t.Errorf("Expected a well-formed table, got %+v", report.Tables)
	}

	again, changed, err := Fix(fixed, DefaultOptions())
	if err != nil {
		t.Fatalf("Fix failed: %v", err)
	}
	if changed || !again.Equal(fixed) {
		t.Errorf("Expected a second fix to change nothing, got %s", again)
	}
}

func TestApply(t *testing.T) {
	// Cells at 3 and 8; the text of the first cell starts at 5.
	d := doc(table(tbody(tr(C11(), C11()))))

	t.Run("cursor", func(t *testing.T) {
		state, err := Apply(d, "add-column-after", 5, -1, DefaultOptions())
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		want := doc(table(tbody(tr(C11(), CEmpty(), C11()))))
		if !state.Doc.Equal(want) {
			t.Errorf("Expected %s, got %s", want, state.Doc)
		}
	})

	t.Run("cell selection", func(t *testing.T) {
		state, err := Apply(d, "merge-cells", 3, 8, DefaultOptions())
		if err != nil {
			t.Fatalf("Apply failed: %v", err)
		}
		want := doc(table(tbody(tr(Td(model.Span(2, 1), P("x"), P("x"))))))
		if !state.Doc.Equal(want) {
			t.Errorf("Expected %s, got %s", want, state.Doc)
		}
	})

	t.Run("refusal", func(t *testing.T) {
		if _, err := Apply(d, "split-cell", 5, -1, DefaultOptions()); !errors.Is(err, commands.ErrNotApplicable) {
			t.Errorf("Expected ErrNotApplicable, got %v", err)
		}
	})

	t.Run("unknown command", func(t *testing.T) {
		if _, err := Apply(d, "explode", 5, -1, DefaultOptions()); err == nil {
			t.Error("Expected an error for an unknown command")
		}
	})
}
