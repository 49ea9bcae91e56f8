// Package rename applies an external list of regex substitution rules to
// the names and descriptions of an extracted document. The rule file is
// one rule per line, "<pattern><TAB><replacement>", with # comments and
// blank lines ignored. Rules rewrite the records in place and run in file
// order.
package rename

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/golang/glog"
	"github.com/zxdocs/nextdoc/document"
)

// Rule is one compiled substitution.
type Rule struct {
	re          *regexp.Regexp
	replacement string
}

// LoadRules parses rule lines. Lines that aren't two tab separated fields
// or whose pattern doesn't compile are reported and skipped; a bad rule
// never aborts the run.
func LoadRules(lines []string) []Rule {
	var rules []Rule
	for i, line := range lines {
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			glog.Errorf("rename rule on line %d has no replacement, skipping: %q", i+1, line)
			continue
		}
		re, err := regexp.Compile(parts[0])
		if err != nil {
			glog.Errorf("rename rule on line %d doesn't compile, skipping: %v", i+1, err)
			continue
		}
		rules = append(rules, Rule{re: re, replacement: parts[1]})
	}
	return rules
}

func (r Rule) apply(s *string) {
	*s = r.re.ReplaceAllString(*s, r.replacement)
}

func (r Rule) String() string {
	return fmt.Sprintf("s/%s/%s/", r.re, r.replacement)
}

// Apply rewrites port names, field and mask descriptions, register names
// and descriptions and system variable descriptions with every rule in
// order.
func Apply(rules []Rule, doc *document.Document) {
	for _, rule := range rules {
		for _, p := range doc.Ports {
			rule.apply(&p.Name)
			for _, f := range p.Fields {
				rule.apply(&f.Description)
				for i := range f.Masks {
					rule.apply(&f.Masks[i].Description)
				}
			}
		}
		for _, reg := range doc.Registers {
			rule.apply(&reg.Name)
			rule.apply(&reg.Description)
		}
		for _, v := range doc.SysVars {
			rule.apply(&v.Description)
		}
	}
}
