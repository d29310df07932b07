package workflow

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/itential/iapctl/api/rest"
	workflowapi "github.com/itential/iapctl/api/workflow"
	"github.com/itential/iapctl/cmd/validator"
	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/logger"
	"github.com/itential/iapctl/settings"
)

type workflowOpts struct {
	cfg            *settings.Config
	fs             afero.Fs
	workflowClient workflowapi.WorkflowClient
}

func NewWorkflowCommand(config *settings.Config, fs afero.Fs, validate validator.Validator) *cobra.Command {
	pos := workflowOpts{cfg: config, fs: fs}

	command := &cobra.Command{
		Use:   "workflow",
		Short: "Operate on workflows",
	}

	command.AddCommand(newVariablesCommand(&pos, validate))

	return command
}

// loadSettings reads the settings file, the environment and the flags, in that order.
func (pos *workflowOpts) loadSettings(cmd *cobra.Command) error {
	if err := pos.cfg.Load(pos.fs); err != nil {
		return errs.New(errs.KindInvalidRequest, err)
	}
	return errs.New(errs.KindInvalidRequest, pos.cfg.LoadFromFlags(cmd.Flags()))
}

// peekSettings reads only what check mode prints with, the output format.
// Nothing is created and an unreadable settings file is ignored.
func (pos *workflowOpts) peekSettings() {
	_ = pos.cfg.ReadFromDisk(pos.fs)
}

func (pos *workflowOpts) client(cmd *cobra.Command) workflowapi.WorkflowClient {
	if pos.workflowClient == nil {
		log := logger.New(cmd.OutOrStdout(), cmd.ErrOrStderr(), pos.cfg.Debug)
		pos.workflowClient = workflowapi.NewWorkflowRestClient(*pos.cfg, rest.WithLogger(log))
	}
	return pos.workflowClient
}
