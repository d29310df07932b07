package workflow

import (
	"errors"
	"testing"
	"time"

	"gotest.tools/v3/assert"
	"gotest.tools/v3/assert/cmp"

	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/settings"
)

func TestFetchRequest_URL(t *testing.T) {
	req := FetchRequest{
		Host:         "localhost",
		Port:         3000,
		WorkflowName: "RouterUpgradeWorkflow",
		Token:        "abc123",
	}

	t.Run("http by default", func(t *testing.T) {
		assert.Equal(t, req.URL().String(), "http://localhost:3000/workflow_engine/workflows/variables/RouterUpgradeWorkflow?token=abc123")
	})

	t.Run("https when TLS is on", func(t *testing.T) {
		tls := req
		tls.UseTLS = true
		assert.Equal(t, tls.URL().String(), "https://localhost:3000/workflow_engine/workflows/variables/RouterUpgradeWorkflow?token=abc123")
	})

	t.Run("percent-encodes name and token", func(t *testing.T) {
		odd := req
		odd.WorkflowName = "Router Upgrade/v2"
		odd.Token = "a+b=&c"
		assert.Equal(t, odd.URL().String(), "http://localhost:3000/workflow_engine/workflows/variables/Router%20Upgrade%2Fv2?token=a%2Bb%3D%26c")
		assert.Equal(t, odd.URL().Query().Get("token"), "a+b=&c")
	})

	t.Run("brackets IPv6 hosts", func(t *testing.T) {
		v6 := req
		v6.Host = "::1"
		assert.Equal(t, v6.URL().Host, "[::1]:3000")
	})
}

func TestFetchRequest_Validate(t *testing.T) {
	valid := FetchRequest{Host: "iap.example.com", Port: 3443, WorkflowName: "wf", Token: "t"}
	assert.NilError(t, valid.Validate())

	ip := valid
	ip.Host = "10.0.0.5"
	assert.NilError(t, ip.Validate())

	t.Run("reports every missing field", func(t *testing.T) {
		err := FetchRequest{}.Validate()
		assert.Check(t, errors.Is(err, errs.ErrInvalidRequest))
		for _, field := range []string{"iap_fqdn", "iap_port", "workflow_name", "token_key"} {
			assert.Check(t, cmp.Contains(err.Error(), field+" is required"))
		}
	})

	t.Run("port range", func(t *testing.T) {
		bad := valid
		bad.Port = 70000
		assert.Check(t, cmp.ErrorContains(bad.Validate(), "iap_port must be between 1 and 65535"))
	})

	t.Run("host shape", func(t *testing.T) {
		bad := valid
		bad.Host = "http://iap.example.com"
		err := bad.Validate()
		assert.Check(t, errors.Is(err, errs.ErrInvalidRequest))
		assert.Check(t, cmp.ErrorContains(err, "iap_fqdn"))
	})
}

func TestRequestFromConfig(t *testing.T) {
	cfg := settings.Config{Host: "iap", Port: 3000, Token: "tok", HTTPS: true, Timeout: time.Second}
	assert.DeepEqual(t, RequestFromConfig(cfg, "wf"), FetchRequest{
		Host:         "iap",
		Port:         3000,
		WorkflowName: "wf",
		Token:        "tok",
		UseTLS:       true,
	})
}
