// Package functionality does basic end-end verification of the document
// pipeline over the fixture documents in testdata.
package functionality

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/go-test/deep"
	"github.com/zxdocs/nextdoc/document"
	"github.com/zxdocs/nextdoc/ports"
	"github.com/zxdocs/nextdoc/registers"
	"github.com/zxdocs/nextdoc/rename"
	"github.com/zxdocs/nextdoc/romfuncs"
	"github.com/zxdocs/nextdoc/source"
	"github.com/zxdocs/nextdoc/sysvars"
)

func loadLines(t *testing.T, name string) []string {
	t.Helper()
	res := source.Load(filepath.Join("testdata", name))
	if res.Missing() {
		t.Fatalf("Can't load fixture %s: %v", name, res.Err)
	}
	return res.Lines
}

func buildDocument(t *testing.T) *document.Document {
	t.Helper()
	doc := document.New()
	doc.Created = "2026-08-30T00:00:00Z"
	doc.Ports = ports.Extract(loadLines(t, "ports.txt"))
	doc.Registers = registers.Extract(loadLines(t, "registers.txt"))
	doc.Functions = romfuncs.Extract(loadLines(t, "rom.asm"))
	doc.SysVars = sysvars.Extract(loadLines(t, "sysvars.txt"))
	rename.Apply(rename.LoadRules(loadLines(t, "rename.txt")), doc)
	return doc
}

func TestFullDocument(t *testing.T) {
	doc := buildDocument(t)

	if len(doc.Ports) != 4 {
		t.Fatalf("Expected 4 ports, got:\n%s", spew.Sdump(doc.Ports))
	}

	ula := doc.Ports[0]
	if ula.Address != "0x00fe" {
		t.Errorf("ULA address got %q want 0x00fe", ula.Address)
	}
	// The rename pass rewrote both the name and the field description.
	if got, want := ula.Name, "Uncommitted Logic Array control"; got != want {
		t.Errorf("ULA name got %q want %q", got, want)
	}
	if len(ula.Fields) != 2 {
		t.Fatalf("Expected 2 ULA fields, got:\n%s", spew.Sdump(ula))
	}
	border := ula.Fields[1]
	if got, want := border.Description, "Border color"; got != want {
		t.Errorf("Border field description got %q want %q", got, want)
	}
	if border.Access != "R/W" {
		t.Errorf("Border field access got %q want R/W", border.Access)
	}
	wantMasks := []ports.Mask{
		{Pattern: "000", Description: "Black"},
		{Pattern: "001", Description: "Blue"},
		{Pattern: "010", Description: "Red"},
	}
	if diff := deep.Equal(border.Masks, wantMasks); diff != nil {
		t.Errorf("Border masks differ: %v\n%s", diff, spew.Sdump(border))
	}

	kempston := doc.Ports[1]
	if got, want := kempston.Fields[0].Access, "R"; got != want {
		t.Errorf("Kempston access got %q want %q", got, want)
	}

	dac := doc.Ports[2]
	wantChannels := []*ports.DacChannel{
		{
			Name: "DAC Channel A",
			Values: []ports.ChannelValue{
				{ID: "0", Value: "0x1F"},
				{ID: "1", Value: "0xF1"},
				{ID: "2", Value: "0x3F"},
			},
		},
		{
			Name:   "DAC Channel B",
			Values: []ports.ChannelValue{{ID: "0", Value: "0x0F"}},
		},
	}
	if diff := deep.Equal(dac.Values, wantChannels); diff != nil {
		t.Errorf("DAC channels differ: %v\n%s", diff, spew.Sdump(dac))
	}
	wantNames := []ports.DacName{{ID: "3", Name: "Left sample"}}
	if diff := deep.Equal(dac.Names, wantNames); diff != nil {
		t.Errorf("DAC names differ: %v\n%s", diff, spew.Sdump(dac))
	}

	reserved := doc.Ports[3]
	if reserved.Fields != nil || reserved.Values != nil || reserved.Names != nil {
		t.Errorf("Reserved port picked up structure:\n%s", spew.Sdump(reserved))
	}

	if len(doc.Registers) != 2 || doc.Registers[1].Name != "CPU Speed" {
		t.Errorf("Registers wrong:\n%s", spew.Sdump(doc.Registers))
	}
	if len(doc.Functions) != 2 || doc.Functions[0].Label != "PRINT_A" {
		t.Errorf("Functions wrong:\n%s", spew.Sdump(doc.Functions))
	}
	if got, want := doc.Functions[1].Description, "Maskable interrupt service Updates FRAMES."; got != want {
		t.Errorf("MASK_INT description got %q want %q", got, want)
	}
	if len(doc.SysVars) != 2 || doc.SysVars[0].Address != "0x5c00" {
		t.Errorf("Sysvars wrong:\n%s", spew.Sdump(doc.SysVars))
	}
}

// The cross-check table parses independently from the same resource and
// stays separate from the port records.
func TestCrossCheckTable(t *testing.T) {
	entries := ports.CrossCheck(loadLines(t, "ports.txt"))
	want := []ports.CrossCheckEntry{
		{Address: "0x00fe", Description: "ULA"},
		{Address: "0x001f", Description: "Kempston / DAC A"},
	}
	if diff := deep.Equal(entries, want); diff != nil {
		t.Errorf("Cross-check differs: %v\n%s", diff, spew.Sdump(entries))
	}
}

func TestDocumentIdempotence(t *testing.T) {
	var first, second bytes.Buffer
	if err := buildDocument(t).Encode(&first); err != nil {
		t.Fatalf("Can't encode: %v", err)
	}
	if err := buildDocument(t).Encode(&second); err != nil {
		t.Fatalf("Can't encode: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Encodings differ across runs")
	}
}

// A missing source degrades to an empty table rather than failing the
// run.
func TestMissingSourceDegrades(t *testing.T) {
	res := source.Load(filepath.Join("testdata", "does_not_exist.txt"))
	if !res.Missing() {
		t.Fatal("Expected a missing result")
	}
	doc := document.New()
	doc.Ports = ports.Extract(res.Lines)
	var buf bytes.Buffer
	if err := doc.Encode(&buf); err != nil {
		t.Fatalf("Can't encode degraded document: %v", err)
	}
	if !bytes.Contains(buf.Bytes(), []byte(`"ports": []`)) {
		t.Errorf("Degraded document missing empty ports table:\n%s", buf.String())
	}
}
