package cmd

import (
	"github.com/itential/iapctl/logger"
	"github.com/itential/iapctl/settings"
	"github.com/itential/iapctl/version"
	"github.com/spf13/cobra"
)

type versionOptions struct {
	cfg *settings.Config
	log *logger.Logger
}

func newVersionCommand(config *settings.Config) *cobra.Command {
	opts := versionOptions{
		cfg: config,
	}

	return &cobra.Command{
		Use:   "version",
		Short: "Display version information",
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := opts.cfg.LoadFromFlags(cmd.Flags()); err != nil {
				return err
			}
			opts.log = logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts.cfg.Debug)
			return nil
		},
		Run: func(_ *cobra.Command, _ []string) {
			opts.log.Infoln(version.Version + "+" + version.Commit)
		},
	}
}
