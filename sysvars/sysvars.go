// Package sysvars extracts the system variables table from the plain text
// rendition of the platform reference (the PDF to text step happens
// upstream). Rows are "<address> <NAME> <length> <description>" where the
// address is hex or decimal.
package sysvars

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Variable is one system variable.
type Variable struct {
	Address     string `json:"address"`
	Name        string `json:"name"`
	Length      int    `json:"length"`
	Description string `json:"description"`
}

var rowRE = regexp.MustCompile(`^\s*(0x[0-9a-fA-F]{1,4}|\d{1,5})\s+([A-Z][A-Z0-9_]*)\s+(\d{1,3})\s+(\S.*)$`)

// Extract runs a single pass over the table lines. Malformed rows are
// dropped, not fatal.
func Extract(lines []string) []*Variable {
	out := []*Variable{}
	for _, line := range lines {
		m := rowRE.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		addr, err := parseAddr(m[1])
		if err != nil {
			glog.V(1).Infof("skipping system variable row %q: %v", line, err)
			continue
		}
		length, err := strconv.Atoi(m[3])
		if err != nil {
			continue
		}
		out = append(out, &Variable{
			Address:     addr,
			Name:        m[2],
			Length:      length,
			Description: strings.TrimSpace(m[4]),
		})
	}
	glog.V(1).Infof("extracted %d system variables", len(out))
	return out
}

func parseAddr(tok string) (string, error) {
	base := 10
	if strings.HasPrefix(tok, "0x") {
		base = 16
		tok = tok[2:]
	}
	v, err := strconv.ParseUint(tok, base, 16)
	if err != nil {
		return "", fmt.Errorf("bad address %q: %w", tok, err)
	}
	return fmt.Sprintf("0x%04x", v), nil
}
