package cmd

import (
	"errors"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/itential/iapctl/api/header"
	"github.com/itential/iapctl/cmd/validator"
	"github.com/itential/iapctl/cmd/workflow"
	"github.com/itential/iapctl/settings"
)

var rootHelpLong = `Use the Itential Automation Platform from the command line.

Connection settings are read from ~/.iap/cli.yml, then from IAP_CLI_HOST,
IAP_CLI_PORT, IAP_CLI_TOKEN, IAP_CLI_HTTPS and IAP_CLI_TIMEOUT, then from flags.`

// Execute adds all child commands to rootCmd and
// sets flags appropriately. This function is called
// by main.main(). It only needs to happen once to
// the rootCmd.
func Execute() error {
	command := MakeCommands()
	err := command.Execute()
	if err != nil && !errors.Is(err, workflow.ErrFetchFailed) {
		// Failure reports are already on stdout.
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %s\n", err)
	}
	return err
}

// MakeCommands creates the top level commands
func MakeCommands() *cobra.Command {
	return makeCommands(afero.NewOsFs())
}

func makeCommands(fs afero.Fs) *cobra.Command {
	rootOptions, err := settings.New()
	if err != nil {
		panic(err)
	}

	rootCmd := &cobra.Command{
		Use:           "iapctl",
		Long:          rootHelpLong,
		Short:         "Use the Itential Automation Platform from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			header.SetCommandStr(commandStr(cmd))
		},
	}

	settings.RegisterFlags(rootCmd.PersistentFlags())

	rootCmd.AddCommand(workflow.NewWorkflowCommand(rootOptions, fs, validator.RequireConnection(rootOptions)))
	rootCmd.AddCommand(newVersionCommand(rootOptions))

	return rootCmd
}

// commandStr is the command path without the binary name, e.g. "workflow variables".
func commandStr(cmd *cobra.Command) string {
	return strings.TrimPrefix(cmd.CommandPath(), cmd.Root().Name()+" ")
}
