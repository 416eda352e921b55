package tablegrid

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/output"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/xlsx"
)

// Format is a document file format.
type Format string

const (
	// FormatJSON is the node JSON form.
	FormatJSON Format = "json"
	// FormatYAML is the node JSON form written as YAML.
	FormatYAML Format = "yaml"
	// FormatXLSX is a spreadsheet holding one table per document.
	FormatXLSX Format = "xlsx"
)

// FormatOf returns the format of path, chosen by its extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".xlsx":
		return FormatXLSX, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Load reads the document at path. A file holding a bare table is wrapped
// in a document; a spreadsheet yields a document with one table.
func Load(path string, opts Options) (*model.Node, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, NewDocumentError(path, "read", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewDocumentError(path, "read", ErrFileNotFound)
	}

	if format == FormatXLSX {
		table, err := xlsx.ImportFile(path, xlsx.ImportOptions{
			Sheet:      opts.Sheet,
			Range:      opts.Range,
			HeaderRows: opts.HeaderRows,
			Widths:     opts.ShouldImportWidths(),
		})
		if err != nil {
			return nil, NewDocumentError(path, "import", err)
		}
		return model.Doc(table), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, NewDocumentError(path, "read", err)
	}
	var node model.Node
	if format == FormatJSON {
		err = json.Unmarshal(data, &node)
	} else {
		err = output.FromYAML(data, &node)
	}
	if err != nil {
		return nil, NewDocumentError(path, "decode", err)
	}
	switch node.Role() {
	case model.RoleDoc:
		return &node, nil
	case model.RoleTable:
		return model.Doc(&node), nil
	}
	return nil, NewDocumentError(path, "decode",
		fmt.Errorf("%w: root is a %s node", model.ErrInvalidNode, node.Role()))
}

// Save writes doc to path in the format its extension names. A spreadsheet
// receives the first table of doc.
func Save(path string, doc *model.Node, opts Options) error {
	format, err := FormatOf(path)
	if err != nil {
		return NewDocumentError(path, "write", err)
	}

	var data []byte
	switch format {
	case FormatXLSX:
		tables := Tables(doc)
		if len(tables) == 0 {
			return NewDocumentError(path, "export", ErrNoTable)
		}
		if err := xlsx.ExportFile(path, tables[0].Node, xlsx.ExportOptions{Sheet: opts.Sheet}); err != nil {
			return NewDocumentError(path, "export", err)
		}
		return nil
	case FormatJSON:
		data, err = output.ToJSON(doc, opts.Pretty)
	case FormatYAML:
		data, err = output.ToYAML(doc)
	}
	if err != nil {
		return NewDocumentError(path, "encode", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return NewDocumentError(path, "write", err)
	}
	return nil
}
