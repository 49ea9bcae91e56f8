// Package document assembles the extracted tables into the single JSON
// document consumed by the downstream generators.
package document

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/zxdocs/nextdoc/ports"
	"github.com/zxdocs/nextdoc/registers"
	"github.com/zxdocs/nextdoc/romfuncs"
	"github.com/zxdocs/nextdoc/sysvars"
)

// Document is the full output. Created is set by the caller (it is the
// only non-deterministic value, so it stays out of the extractors). A
// source that failed to load contributes an empty table, same as one that
// parsed to nothing.
type Document struct {
	Created   string                `json:"created,omitempty"`
	Ports     []*ports.Port         `json:"ports"`
	Registers []*registers.Register `json:"registers"`
	Functions []*romfuncs.Function  `json:"functions"`
	SysVars   []*sysvars.Variable   `json:"sysvars"`
}

// New returns a Document with every table present but empty.
func New() *Document {
	return &Document{
		Ports:     []*ports.Port{},
		Registers: []*registers.Register{},
		Functions: []*romfuncs.Function{},
		SysVars:   []*sysvars.Variable{},
	}
}

// Encode writes the document as indented JSON. Output is byte identical
// across runs for identical input and Created value.
func (d *Document) Encode(w io.Writer) error {
	b, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("can't marshal document: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("can't write document: %w", err)
	}
	return nil
}
