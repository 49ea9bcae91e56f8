// nextdoc scrapes the Next hardware reference documents and emits one
// JSON document for the downstream header and documentation generators.
// Each input is optional: a source that's missing or unreadable degrades
// to an empty table with a diagnostic on the error stream while the rest
// of the run continues. Only a failure to write the output itself is
// fatal.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/zxdocs/nextdoc/document"
	"github.com/zxdocs/nextdoc/ports"
	"github.com/zxdocs/nextdoc/registers"
	"github.com/zxdocs/nextdoc/rename"
	"github.com/zxdocs/nextdoc/romfuncs"
	"github.com/zxdocs/nextdoc/source"
	"github.com/zxdocs/nextdoc/sysvars"
)

var (
	portsFile     = flag.String("ports_file", "", "Path to the port reference text")
	crossCheck    = flag.Bool("crosscheck", false, "If true also parse the tabular port rendition and log a completeness comparison")
	registersFile = flag.String("registers_file", "", "Path to the machine register reference text")
	romListing    = flag.String("rom_listing", "", "Path to the ROM assembly listing")
	sysvarsFile   = flag.String("sysvars_file", "", "Path to the system variables text")
	renameFile    = flag.String("rename_file", "", "Path to the substitution rules applied before emission")
	output        = flag.String("output", "", "Output path for the JSON document. Defaults to stdout")
	dump          = flag.Bool("dump", false, "If true spew the assembled document to stderr before encoding")
)

// loadLines wraps source.Load with the per-source degradation policy: a
// missing resource logs and contributes nothing.
func loadLines(path, what string) []string {
	if path == "" {
		return nil
	}
	res := source.Load(path)
	if res.Missing() {
		glog.Errorf("%s unavailable, its table will be empty: %v", what, res.Err)
		return nil
	}
	return res.Lines
}

func main() {
	flag.Parse()
	defer glog.Flush()

	portLines := loadLines(*portsFile, "port reference")

	doc := document.New()
	doc.Created = time.Now().UTC().Format(time.RFC3339)
	doc.Ports = ports.Extract(portLines)
	doc.Registers = registers.Extract(loadLines(*registersFile, "register reference"))
	doc.Functions = romfuncs.Extract(loadLines(*romListing, "ROM listing"))
	doc.SysVars = sysvars.Extract(loadLines(*sysvarsFile, "system variables"))

	if *crossCheck {
		entries := ports.CrossCheck(portLines)
		glog.Infof("cross-check table lists %d addresses, ports table has %d", len(entries), len(doc.Ports))
	}

	if *renameFile != "" {
		rules := rename.LoadRules(loadLines(*renameFile, "rename rules"))
		rename.Apply(rules, doc)
		glog.V(1).Infof("applied %d rename rules", len(rules))
	}

	if *dump {
		fmt.Fprint(os.Stderr, spew.Sdump(doc))
	}

	out := os.Stdout
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			glog.Exitf("can't create %s: %v", *output, err)
		}
		defer f.Close()
		out = f
	}
	if err := doc.Encode(out); err != nil {
		glog.Exitf("can't emit document: %v", err)
	}
}
