package validator

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/settings"
)

type Validator func(cmd *cobra.Command, args []string) error

// RequireConnection checks that the settings needed to reach the platform are present,
// naming every missing one together with where it can be supplied.
func RequireConnection(cfg *settings.Config) Validator {
	return func(_ *cobra.Command, _ []string) error {
		var missing []string
		if cfg.Host == "" {
			missing = append(missing, "host (--host, IAP_CLI_HOST or iap_fqdn)")
		}
		if cfg.Port == 0 {
			missing = append(missing, "port (--port, IAP_CLI_PORT or iap_port)")
		}
		if cfg.Token == "" {
			missing = append(missing, "token (--token, IAP_CLI_TOKEN or token_key)")
		}
		if len(missing) > 0 {
			return errs.Newf(errs.KindInvalidRequest, "missing required settings: %s", strings.Join(missing, ", "))
		}
		return nil
	}
}
