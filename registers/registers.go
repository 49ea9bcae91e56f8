// Package registers extracts the machine register list from its reference
// document. Register headers have the shape "0xNN (DD) => Name" and may be
// followed by an indented description paragraph which runs until the next
// blank line or header.
package registers

import (
	"regexp"
	"strings"

	"github.com/golang/glog"
)

// Register is one machine register. Address keeps the 2 digit form used
// by the reference ("0x07"); ID is the decimal register number as written.
type Register struct {
	Address     string `json:"address"`
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

var (
	headerRE = regexp.MustCompile(`^0x([0-9a-fA-F]{2})\s+\((\d+)\)\s+=>\s+(\S.*)$`)
	contRE   = regexp.MustCompile(`^\s+(\S.*)$`)
)

// Extract runs a single pass over the register reference lines. A header
// line opens a register; indented lines below it accumulate into the
// description. Anything else closes the open register.
func Extract(lines []string) []*Register {
	out := []*Register{}
	var cur *Register
	var desc []string

	emit := func() {
		if cur == nil {
			return
		}
		if len(desc) > 0 {
			cur.Description = strings.Join(desc, " ")
		}
		out = append(out, cur)
		cur = nil
		desc = nil
	}

	for _, line := range lines {
		if m := headerRE.FindStringSubmatch(line); m != nil {
			emit()
			cur = &Register{
				Address: "0x" + strings.ToLower(m[1]),
				ID:      m[2],
				Name:    strings.TrimSpace(m[3]),
			}
			continue
		}
		if cur == nil {
			continue
		}
		if m := contRE.FindStringSubmatch(line); m != nil {
			desc = append(desc, strings.TrimSpace(m[1]))
			continue
		}
		// Blank or unindented line ends the open register.
		emit()
	}
	emit()
	glog.V(1).Infof("extracted %d registers", len(out))
	return out
}
