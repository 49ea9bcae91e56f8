// Package source reads the plain text reference documents the extractors
// consume. A document loads into an ordered line sequence along with an
// explicit marker for "resource missing" so callers can tell an absent
// source apart from one that parsed to nothing.
package source

import (
	"bufio"
	"fmt"
	"os"

	"github.com/golang/glog"
)

// Result holds the line sequence for one source document. Err is non-nil
// only when the resource itself couldn't be opened or read. A present but
// empty document yields a nil Err and zero lines.
type Result struct {
	Lines []string
	Err   error
}

// Missing reports whether the resource was unavailable (as opposed to
// present but containing nothing extractable).
func (r Result) Missing() bool {
	return r.Err != nil
}

// Load reads the file at path into ordered lines. Line terminators are
// stripped and a trailing newline does not produce a phantom empty line.
func Load(path string) Result {
	f, err := os.Open(path)
	if err != nil {
		return Result{Err: fmt.Errorf("can't open %s: %w", path, err)}
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	// Some reference documents carry very wide table rows.
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var lines []string
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return Result{Err: fmt.Errorf("can't read %s: %w", path, err)}
	}
	glog.V(1).Infof("read %d lines from %s", len(lines), path)
	return Result{Lines: lines}
}
