package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	yaml "gopkg.in/yaml.v3"

	"github.com/itential/iapctl/api/workflow"
)

// Report is the record handed back to orchestration tooling.
// Response is "" whenever no payload was fetched.
type Report struct {
	Changed  bool   `json:"changed" yaml:"changed"`
	Failed   bool   `json:"failed,omitempty" yaml:"failed,omitempty"`
	Msg      string `json:"msg,omitempty" yaml:"msg,omitempty"`
	Response any    `json:"response" yaml:"response"`
}

// FromFetch maps the outcome of a fetch onto a Report.
// A failure never carries partial data.
func FromFetch(res *workflow.Result, err error) Report {
	if err != nil {
		return Report{Failed: true, Msg: err.Error(), Response: ""}
	}
	if res == nil || res.Skipped {
		return Report{Response: ""}
	}
	return Report{Changed: true, Response: res.Body}
}

type Format string

const (
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTable Format = "table"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatTable:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format %q (want json, yaml or table)", s)
}

// Write renders r to w in the given format.
func (r Report) Write(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		return r.writeYAML(w)
	case FormatTable:
		return r.writeTable(w)
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	}
}

func (r Report) writeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return errors.Wrap(err, "encoding yaml")
	}
	return enc.Close()
}

// writeTable lists top-level response keys. Anything that is not an object falls back to JSON.
func (r Report) writeTable(w io.Writer) error {
	vars, ok := r.Response.(map[string]any)
	if r.Failed || !ok {
		return r.Write(w, FormatJSON)
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Variable", "Value"})
	table.SetAutoWrapText(false)
	for _, k := range keys {
		value, err := json.Marshal(vars[k])
		if err != nil {
			return errors.Wrapf(err, "encoding variable %s", k)
		}
		table.Append([]string{k, string(value)})
	}
	table.Render()
	return nil
}
