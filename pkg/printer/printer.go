package printer

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/berkguzel/slsperm/internal/options"
	"github.com/berkguzel/slsperm/pkg/aws"
	"github.com/berkguzel/slsperm/pkg/policy"
	"github.com/berkguzel/slsperm/pkg/types"
	"k8s.io/apimachinery/pkg/util/sets"
	"sigs.k8s.io/yaml"
)

// minResourceWidth is the narrowest RESOURCE column of the table output.
const minResourceWidth = 52

type Printer struct {
	writer io.Writer
}

func New(w io.Writer) *Printer {
	return &Printer{writer: w}
}

// Result is everything the printer may need to render one generated policy.
type Result struct {
	Name     string
	Config   types.Config
	Document policy.Document
	Report   types.Report
}

func (p *Printer) Print(res Result, opts *options.Options) error {
	switch opts.Output {
	case options.OutputJSON, "":
		return p.printJSON(res.Document)
	case options.OutputYAML:
		return p.printYAML(res.Document)
	case options.OutputCLIInput:
		input, err := aws.CreatePolicyInput(res.Name, res.Config, res.Document)
		if err != nil {
			return err
		}
		return p.printJSON(input)
	case options.OutputTable:
		p.printTable(res, opts.RiskOnly)
		return nil
	default:
		return fmt.Errorf("unknown output format %q", opts.Output)
	}
}

func (p *Printer) printJSON(v interface{}) error {
	enc := json.NewEncoder(p.writer)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func (p *Printer) printYAML(doc policy.Document) error {
	out, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode YAML output: %w", err)
	}
	_, err = p.writer.Write(out)
	return err
}

func (p *Printer) printTable(res Result, riskOnly bool) {
	fmt.Fprintf(p.writer, "%s %s\n", bold("Policy:"), res.Name)
	fmt.Fprintf(p.writer, "%s\n\n", summarize(res.Document))

	// Calculate max resource length
	maxResourceLen := minResourceWidth
	for _, perm := range res.Report.Permissions {
		if len(perm.Resource) > maxResourceLen {
			maxResourceLen = len(perm.Resource) + 2 // add some padding
		}
	}

	perms := res.Report.Permissions
	if riskOnly {
		perms = res.Report.HighRisk()
	}

	p.printPermissionsTableHeader(maxResourceLen)
	for _, perm := range perms {
		scope := " ✅ "
		if perm.IsBroad || perm.IsHighRisk {
			scope = " 🚨 "
		}

		fmt.Fprintf(p.writer, "| %4d | %-45s | %-*s | %-4s |\n",
			perm.Statement,
			truncateString(perm.Action, 45),
			maxResourceLen,
			formatResource(perm.Resource),
			scope,
		)
	}
	p.printPermissionsSeparator(maxResourceLen)
}

// summarize describes doc in one line: statement count, services granted
// and how many statements carry a condition.
func summarize(doc policy.Document) string {
	services := sets.New[string]()
	conditioned := 0
	for _, stmt := range doc.Statement {
		for _, action := range stmt.Action.Strings() {
			services.Insert(serviceOf(action))
		}
		if len(stmt.Condition) > 0 {
			conditioned++
		}
	}

	return fmt.Sprintf("%d statements, %d conditioned, services: %s",
		len(doc.Statement), conditioned, strings.Join(sets.List(services), ", "))
}

func serviceOf(action string) string {
	if i := strings.Index(action, ":"); i >= 0 {
		return action[:i]
	}
	return action
}

func formatResource(resource string) string {
	if resource == "*" {
		return "all resources"
	}
	return resource
}

func truncateString(s string, maxLen int) string {
	if len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}

func (p *Printer) printPermissionsTableHeader(resourceWidth int) {
	p.printPermissionsSeparator(resourceWidth)
	fmt.Fprintf(p.writer, "| %4s | %-45s | %-*s | %-5s |\n",
		"STMT",
		"ACTION",
		resourceWidth,
		"RESOURCE",
		"SCOPE",
	)
	p.printPermissionsSeparator(resourceWidth)
}

func (p *Printer) printPermissionsSeparator(resourceWidth int) {
	fmt.Fprintf(p.writer, "+------+-----------------------------------------------+%s+-------+\n",
		strings.Repeat("-", resourceWidth+2))
}
