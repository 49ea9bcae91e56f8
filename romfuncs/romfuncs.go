// Package romfuncs extracts documented function entry points from the ROM
// assembly listing. An entry is a 4 digit hex address followed by an upper
// case label and a colon, with the describing comment either trailing on
// the same line or on comment lines directly below.
package romfuncs

import (
	"regexp"
	"strings"

	"github.com/golang/glog"
)

// Function is one ROM entry point.
type Function struct {
	Address     string `json:"address"`
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

var (
	entryRE   = regexp.MustCompile(`^([0-9a-fA-F]{4})\s+([A-Z][A-Z0-9_]*):\s*(?:;\s*(.*))?$`)
	commentRE = regexp.MustCompile(`^\s*;\s?(.*)$`)
)

// Extract runs a single pass over the listing. Label candidates that don't
// match the entry shape are dropped silently; the listing contains far more
// code lines than entry points and this is a best effort scrape.
func Extract(lines []string) []*Function {
	out := []*Function{}
	var cur *Function
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
		if m := entryRE.FindStringSubmatch(line); m != nil {
			emit()
			cur = &Function{
				Address: "0x" + strings.ToLower(m[1]),
				Label:   m[2],
			}
			if t := strings.TrimSpace(m[3]); t != "" {
				desc = append(desc, t)
			}
			continue
		}
		if cur != nil {
			if m := commentRE.FindStringSubmatch(line); m != nil {
				if t := strings.TrimSpace(m[1]); t != "" {
					desc = append(desc, t)
				}
				continue
			}
		}
		// Any code line ends the comment block for the open entry.
		emit()
	}
	emit()
	glog.V(1).Infof("extracted %d ROM entry points", len(out))
	return out
}
