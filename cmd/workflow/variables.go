package workflow

import (
	"errors"

	"github.com/spf13/cobra"

	workflowapi "github.com/itential/iapctl/api/workflow"
	"github.com/itential/iapctl/cmd/validator"
	"github.com/itential/iapctl/errs"
	"github.com/itential/iapctl/report"
	"github.com/itential/iapctl/settings"
)

// ErrFetchFailed is returned after a failure report has been printed.
var ErrFetchFailed = errors.New("fetching job variables failed")

func newVariablesCommand(ops *workflowOpts, validate validator.Validator) *cobra.Command {
	var (
		checkMode bool
		argsFile  string
		output    string
	)

	cmd := &cobra.Command{
		Use:   "variables [workflow-name]",
		Short: "Get the job variables of a workflow.",
		Long: `Get the job variables of a workflow from the Itential Automation Platform.

The result is printed as {"changed": ..., "response": ...}. On failure the
record also carries "failed": true and a "msg", and the command exits non-zero.

Parameters can come from an args file holding iap_fqdn, iap_port, token_key,
workflow_name and https. Flags override the file.

Examples:
  iapctl workflow variables RouterUpgradeWorkflow --host localhost --port 3000 --token $TOKEN
  iapctl workflow variables --args args.json --output yaml
  iapctl workflow variables RouterUpgradeWorkflow --check`,
		RunE: func(cmd *cobra.Command, args []string) error {
			mode := workflowapi.ModeApply
			if checkMode {
				mode = workflowapi.ModeCheck
			}

			var workflowName string
			if len(args) > 0 {
				workflowName = args[0]
			}

			var err error
			if mode == workflowapi.ModeApply {
				err = ops.loadSettings(cmd)
				if err == nil {
					workflowName, err = prepare(cmd, ops, argsFile, workflowName)
				}
				if err == nil {
					err = validate(cmd, args)
				}
			} else {
				ops.peekSettings()
			}

			format, ferr := report.ParseFormat(firstNonEmpty(output, ops.cfg.Output, string(report.FormatJSON)))
			if ferr != nil {
				return ferr
			}

			var res *workflowapi.Result
			if err == nil {
				req := workflowapi.RequestFromConfig(*ops.cfg, workflowName)
				res, err = ops.client(cmd).FetchJobVariables(cmd.Context(), mode, req)
			}

			rep := report.FromFetch(res, err)
			if werr := rep.Write(cmd.OutOrStdout(), format); werr != nil {
				return werr
			}
			if rep.Failed {
				return ErrFetchFailed
			}
			return nil
		},
		Args: cobra.MaximumNArgs(1),
	}

	cmd.Flags().BoolVar(&checkMode, "check", false, "Report what would happen without contacting the platform")
	cmd.Flags().StringVar(&argsFile, "args", "", "JSON or YAML file with the module arguments")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output format: json, yaml or table")

	return cmd
}

// prepare overlays the args file on the loaded settings, then re-applies flags so they keep priority.
// It returns the workflow name to fetch.
func prepare(cmd *cobra.Command, ops *workflowOpts, argsFile, workflowName string) (string, error) {
	if argsFile == "" {
		return workflowName, nil
	}

	moduleArgs, err := settings.LoadModuleArgs(ops.fs, argsFile)
	if err != nil {
		return "", errs.New(errs.KindInvalidRequest, err)
	}
	moduleArgs.Apply(ops.cfg)
	if err := ops.cfg.LoadFromFlags(cmd.Flags()); err != nil {
		return "", errs.New(errs.KindInvalidRequest, err)
	}

	if workflowName == "" && moduleArgs.WorkflowName != nil {
		workflowName = *moduleArgs.WorkflowName
	}
	return workflowName, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
