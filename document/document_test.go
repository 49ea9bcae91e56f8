package document

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zxdocs/nextdoc/ports"
)

// Absent sources and empty parses both serialize as empty arrays, never
// null, so downstream generators can index unconditionally.
func TestEncodeEmptyDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := New().Encode(&buf); err != nil {
		t.Fatalf("Can't encode: %v", err)
	}
	out := buf.String()
	for _, key := range []string{`"ports": []`, `"registers": []`, `"functions": []`, `"sysvars": []`} {
		if !strings.Contains(out, key) {
			t.Errorf("Output missing %s:\n%s", key, out)
		}
	}
	if strings.Contains(out, "null") {
		t.Errorf("Output contains null tables:\n%s", out)
	}
	if strings.Contains(out, `"created"`) {
		t.Errorf("Unset created timestamp was emitted:\n%s", out)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	build := func() *Document {
		doc := New()
		doc.Created = "2026-08-30T00:00:00Z"
		doc.Ports = ports.Extract([]string{
			"0x05 Configuration register",
			"bit 0 = Enable feature",
		})
		return doc
	}
	var first, second bytes.Buffer
	if err := build().Encode(&first); err != nil {
		t.Fatalf("Can't encode: %v", err)
	}
	if err := build().Encode(&second); err != nil {
		t.Fatalf("Can't encode: %v", err)
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Errorf("Encodings differ:\n%s\n%s", first.String(), second.String())
	}
	if !strings.HasSuffix(first.String(), "\n") {
		t.Error("Encoding doesn't end with a newline")
	}
}
