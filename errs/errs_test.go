package errs

import (
	"errors"
	"fmt"
	"testing"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"
)

func TestFetchError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:1: connect: connection refused")

	t.Run("message mirrors kind", func(t *testing.T) {
		cases := []struct {
			kind Kind
			want string
		}{
			{KindConnection, "Failed to connect to Itential Automation Platform : " + cause.Error()},
			{KindHTTP, "Http Error: " + cause.Error()},
			{KindTimeout, "Timeout Error: " + cause.Error()},
			{KindOther, "Something happened: " + cause.Error()},
		}
		for _, c := range cases {
			assert.Check(t, cmp.Error(New(c.kind, cause), c.want))
		}
	})

	t.Run("matches its sentinel only", func(t *testing.T) {
		err := New(KindTimeout, cause)
		assert.Check(t, errors.Is(err, ErrTimeout))
		assert.Check(t, !errors.Is(err, ErrConnection))
		assert.Check(t, errors.Is(err, cause))
	})

	t.Run("kind survives wrapping", func(t *testing.T) {
		err := fmt.Errorf("fetching: %w", New(KindHTTP, cause))
		assert.Equal(t, KindOf(err), KindHTTP)
		assert.Equal(t, KindOf(cause), KindOther)
	})

	t.Run("nil cause", func(t *testing.T) {
		assert.NilError(t, New(KindOther, nil))
	})

	t.Run("kind names", func(t *testing.T) {
		assert.Equal(t, KindConnection.String(), "ConnectionError")
		assert.Equal(t, KindHTTP.String(), "HttpError")
		assert.Equal(t, Kind(42).String(), "OtherError")
	})
}
