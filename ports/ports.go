// Package ports reconstructs the I/O port table of the Next from the
// loosely structured plain text port reference. Each port header opens a
// record which then greedily consumes bit field, mask, and DAC rows until
// the next header or end of input. The grammar is best effort: lines that
// match no known shape are skipped rather than treated as errors.
package ports

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/golang/glog"
)

// Mask documents one named binary sub-value encoding of a field.
type Mask struct {
	Pattern     string `json:"mask"`
	Description string `json:"description"`
}

// Field describes one bit or contiguous bit range of a port. Exactly one
// of Bit or Bits is set. Access is inherited from the most recent access
// mode marker ("R", "W" or "R/W") and may be empty if none was seen.
type Field struct {
	Bit         string   `json:"bit,omitempty"`
	Bits        []string `json:"bits,omitempty"`
	Access      string   `json:"access,omitempty"`
	Description string   `json:"description"`
	Masks       []Mask   `json:"masks,omitempty"`
}

// ChannelValue is one register address slot of a DAC channel. ID is the
// column index the address appeared in.
type ChannelValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// DacChannel is a named audio channel with its register address slots.
type DacChannel struct {
	Name   string         `json:"name"`
	Values []ChannelValue `json:"values"`
}

// DacName is a named DAC value id collected per port.
type DacName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Port is one documented I/O address. Address is always "0x" plus exactly
// 4 lowercase hex digits. Name and the nested descriptions stay mutable so
// the rename pass can rewrite them in place before emission.
type Port struct {
	Address string        `json:"address"`
	Name    string        `json:"name"`
	Fields  []*Field      `json:"fields,omitempty"`
	Values  []*DacChannel `json:"values,omitempty"`
	Names   []DacName     `json:"names,omitempty"`
}

const (
	kDacColumns     = 7
	kDacColumnWidth = 8
)

var (
	portHeaderRE = regexp.MustCompile(`^0x([0-9a-fA-F]{2,4})\s+(\S.*)$`)
	accessRE     = regexp.MustCompile(`^\((R/W|R|W)\)`)
	singleBitRE  = regexp.MustCompile(`^\s*bit\s+(\d)\s*=\s*(\S.*)$`)
	bitRangeRE   = regexp.MustCompile(`^\s*bits\s+(\d)\s*:\s*(\d)(?:\s*,\s*(\d))?\s*=?\s*(\S.*)$`)
	maskRowRE    = regexp.MustCompile(`^\s+([01]{2,8})\s*=\s*(\S.*)$`)
	dacChannelRE = regexp.MustCompile(`DAC Channel ([A-D])`)
	dacTokenRE   = regexp.MustCompile(`^0x[0-9a-fA-F]{2}$`)
	dacValueRE   = regexp.MustCompile(`^\s*(\d+)\s*=\s*(\S.*)$`)
)

// Address formats a raw hex token (2-4 digits) as the normalized 4 digit
// lowercase form used throughout the output document.
func Address(tok string) string {
	// The recognizers only hand over 2-4 hex digits so this can't fail.
	v, _ := strconv.ParseUint(tok, 16, 16)
	return fmt.Sprintf("0x%04x", v)
}

func matchPortHeader(line string) (addr, name string, ok bool) {
	m := portHeaderRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return Address(m[1]), strings.TrimSpace(m[2]), true
}

func matchAccess(line string) (mode string, ok bool) {
	m := accessRE.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func matchSingleBit(line string) (bit, desc string, ok bool) {
	m := singleBitRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], strings.TrimSpace(m[2]), true
}

func matchBitRange(line string) (bits []string, desc string, ok bool) {
	m := bitRangeRE.FindStringSubmatch(line)
	if m == nil {
		return nil, "", false
	}
	bits = []string{m[1] + ":" + m[2]}
	if m[3] != "" {
		bits = append(bits, m[3])
	}
	return bits, strings.TrimSpace(m[4]), true
}

func matchMaskRow(line string) (mask Mask, ok bool) {
	m := maskRowRE.FindStringSubmatch(line)
	if m == nil {
		return Mask{}, false
	}
	return Mask{Pattern: m[1], Description: strings.TrimSpace(m[2])}, true
}

// matchDacChannel recognizes a DAC channel row. The reference lays the
// register addresses out in fixed width columns after the channel letter;
// a blank column means that slot has no register and produces no entry.
func matchDacChannel(line string) (ch *DacChannel, ok bool) {
	loc := dacChannelRE.FindStringSubmatchIndex(line)
	if loc == nil {
		return nil, false
	}
	letter := line[loc[2]:loc[3]]
	rest := line[loc[1]:]
	ch = &DacChannel{Name: "DAC Channel " + letter}
	for i := 0; i < kDacColumns; i++ {
		start := i * kDacColumnWidth
		if start >= len(rest) {
			break
		}
		end := start + kDacColumnWidth
		if end > len(rest) {
			end = len(rest)
		}
		tok := strings.TrimSpace(rest[start:end])
		if dacTokenRE.MatchString(tok) {
			ch.Values = append(ch.Values, ChannelValue{ID: strconv.Itoa(i), Value: tok})
		}
	}
	return ch, true
}

func matchDacValue(line string) (v DacName, ok bool) {
	m := dacValueRE.FindStringSubmatch(line)
	if m == nil {
		return DacName{}, false
	}
	return DacName{ID: m[1], Name: strings.TrimSpace(m[2])}, true
}

// portBuilder accumulates one port while its lines are being consumed.
// The finished immutable Port only exists once finish runs, so a header
// with no following rows still emits cleanly and partial state never
// leaks into the output sequence.
type portBuilder struct {
	addr   string
	name   string
	access string

	fields    []*Field
	lastField int // index of the most recently appended field, -1 for none
	pending   []Mask

	channels []*DacChannel
	dacNames []DacName
}

func newPortBuilder(addr, name string) *portBuilder {
	return &portBuilder{
		addr:      addr,
		name:      name,
		lastField: -1,
	}
}

// flush attaches the buffered mask rows to the most recently appended
// field. Flushing an empty buffer is a no-op. Masks arriving before any
// field have nothing to describe and are dropped.
func (b *portBuilder) flush() {
	if len(b.pending) == 0 {
		return
	}
	if b.lastField < 0 {
		glog.V(1).Infof("port %s: dropping %d mask rows with no field to attach to", b.addr, len(b.pending))
		b.pending = nil
		return
	}
	f := b.fields[b.lastField]
	f.Masks = append(f.Masks, b.pending...)
	b.pending = nil
}

func (b *portBuilder) addField(f *Field) {
	b.fields = append(b.fields, f)
	b.lastField = len(b.fields) - 1
}

// finish flushes any pending masks and seals the builder into a Port.
// Empty field/value/name lists are omitted entirely, not emitted as
// empty arrays.
func (b *portBuilder) finish() *Port {
	b.flush()
	p := &Port{Address: b.addr, Name: b.name}
	if len(b.fields) > 0 {
		p.Fields = b.fields
	}
	if len(b.channels) > 0 {
		p.Values = b.channels
	}
	if len(b.dacNames) > 0 {
		p.Names = b.dacNames
	}
	return p
}

// Extract runs the port table state machine over the document lines.
// Ports, fields and masks all preserve line order. Lines matching no
// recognizer are skipped, including everything before the first header.
func Extract(lines []string) []*Port {
	out := []*Port{}
	var b *portBuilder
	for _, line := range lines {
		if addr, name, ok := matchPortHeader(line); ok {
			if b != nil {
				out = append(out, b.finish())
			}
			b = newPortBuilder(addr, name)
			glog.V(2).Infof("port %s %q", addr, name)
			continue
		}
		if b == nil {
			continue
		}

		// Mask rows only buffer. Every other recognized shape is a
		// flush trigger for whatever masks are pending. Probe order
		// matters: a mask row like "00 = Disabled" would also parse
		// as a DAC value row.
		if mask, ok := matchMaskRow(line); ok {
			b.pending = append(b.pending, mask)
			continue
		}
		if mode, ok := matchAccess(line); ok {
			b.flush()
			b.access = mode
			continue
		}
		if bit, desc, ok := matchSingleBit(line); ok {
			b.flush()
			b.addField(&Field{Bit: bit, Access: b.access, Description: desc})
			continue
		}
		if bits, desc, ok := matchBitRange(line); ok {
			b.flush()
			b.addField(&Field{Bits: bits, Access: b.access, Description: desc})
			continue
		}
		if ch, ok := matchDacChannel(line); ok {
			b.flush()
			b.channels = append(b.channels, ch)
			continue
		}
		if v, ok := matchDacValue(line); ok {
			b.dacNames = append(b.dacNames, v)
			continue
		}
	}
	if b != nil {
		out = append(out, b.finish())
	}
	glog.V(1).Infof("extracted %d ports", len(out))
	return out
}
