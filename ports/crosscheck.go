package ports

import (
	"regexp"
	"strings"

	"github.com/golang/glog"
)

// CrossCheckEntry is one row of the alternate tabular port rendition.
// It exists purely as a completeness aid against Extract's output and is
// never merged into the Port records.
type CrossCheckEntry struct {
	Address     string `json:"address"`
	Description string `json:"description"`
}

// A cross-check row carries read/write flag columns, the four 4 bit
// address decode groups, the port address, then free text. Decode groups
// use 0/1 for decoded bits and "-" for don't-care positions.
var crossCheckRE = regexp.MustCompile(`^\s*([RW-])\s+([RW-])\s+([01-]{4})\s+([01-]{4})\s+([01-]{4})\s+([01-]{4})\s+0x([0-9a-fA-F]{2,4})\s+(\S.*)$`)

// CrossCheck runs the single pass tabular extractor over the document
// lines. No state carries between rows; anything that isn't a well formed
// row is skipped.
func CrossCheck(lines []string) []CrossCheckEntry {
	out := []CrossCheckEntry{}
	for _, line := range lines {
		m := crossCheckRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		out = append(out, CrossCheckEntry{
			Address:     Address(m[7]),
			Description: strings.TrimSpace(m[8]),
		})
	}
	glog.V(1).Infof("cross-check table has %d rows", len(out))
	return out
}
