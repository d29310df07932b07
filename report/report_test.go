package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/itential/iapctl/api/workflow"
	"github.com/itential/iapctl/errs"
)

func render(t *testing.T, r Report, format Format) string {
	t.Helper()
	var buf bytes.Buffer
	assert.NilError(t, r.Write(&buf, format))
	return buf.String()
}

func TestFromFetch(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		r := FromFetch(&workflow.Result{StatusCode: 200, Body: map[string]any{"a": json.Number("1")}}, nil)
		assert.Check(t, r.Changed)
		assert.Check(t, !r.Failed)
		assert.Equal(t, render(t, r, FormatJSON), `{
  "changed": true,
  "response": {
    "a": 1
  }
}
`)
	})

	t.Run("check mode", func(t *testing.T) {
		r := FromFetch(&workflow.Result{Skipped: true}, nil)
		assert.DeepEqual(t, r, Report{Response: ""})
		assert.Equal(t, render(t, r, FormatJSON), `{
  "changed": false,
  "response": ""
}
`)
	})

	t.Run("failure carries no data", func(t *testing.T) {
		err := errs.New(errs.KindHTTP, errors.New("404 Client Error: Not Found for url: http://iap:3000/x"))
		r := FromFetch(&workflow.Result{Body: map[string]any{"partial": true}}, err)
		assert.DeepEqual(t, r, Report{
			Failed:   true,
			Msg:      "Http Error: 404 Client Error: Not Found for url: http://iap:3000/x",
			Response: "",
		})
	})
}

func TestWrite(t *testing.T) {
	r := Report{Changed: true, Response: map[string]any{
		"device":  "r1",
		"retries": json.Number("3"),
	}}

	t.Run("yaml", func(t *testing.T) {
		assert.Equal(t, render(t, r, FormatYAML), "changed: true\nresponse:\n  device: r1\n  retries: 3\n")
	})

	t.Run("table", func(t *testing.T) {
		out := render(t, r, FormatTable)
		assert.Check(t, cmp.Contains(out, "device"))
		assert.Check(t, cmp.Contains(out, `"r1"`))
		assert.Check(t, cmp.Contains(out, "retries"))
	})

	t.Run("table falls back to json for non-objects", func(t *testing.T) {
		out := render(t, Report{Changed: true, Response: []any{"x"}}, FormatTable)
		assert.Check(t, cmp.Contains(out, `"changed": true`))
	})
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("yaml")
	assert.NilError(t, err)
	assert.Equal(t, f, FormatYAML)

	_, err = ParseFormat("xml")
	assert.Check(t, cmp.ErrorContains(err, `unknown output format "xml"`))
}
