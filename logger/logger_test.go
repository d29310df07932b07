package logger

import (
	"bytes"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

func TestLogger(t *testing.T) {
	t.Run("debug is hidden unless verbose", func(t *testing.T) {
		var out, errOut bytes.Buffer
		New(&out, &errOut, false).Debug("fetching %s", "vars")
		assert.Equal(t, errOut.String(), "")

		errOut.Reset()
		New(&out, &errOut, true).Debugf("fetching %s", "vars")
		assert.Check(t, cmp.Contains(errOut.String(), "fetching vars"))
		assert.Equal(t, out.String(), "")
	})

	t.Run("info goes to stdout", func(t *testing.T) {
		var out, errOut bytes.Buffer
		New(&out, &errOut, false).Infoln("1.2.3+abc")
		assert.Equal(t, out.String(), "1.2.3+abc\n")
		assert.Equal(t, errOut.String(), "")
	})

	t.Run("warnings and errors show without verbose", func(t *testing.T) {
		var out, errOut bytes.Buffer
		l := New(&out, &errOut, false)
		l.Warnf("slow response: %s", "2s")
		l.Errorf("request failed: %v", "boom")
		assert.Check(t, cmp.Contains(errOut.String(), "slow response: 2s"))
		assert.Check(t, cmp.Contains(errOut.String(), "request failed: boom"))
	})
}
