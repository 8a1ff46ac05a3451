package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/recsel/internal/harness"
)

// ValidationIssue is one problem found in a scenario file.
type ValidationIssue struct {
	File    string `json:"file"`
	Query   string `json:"query,omitempty"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Files  int               `json:"files"`
	Errors []ValidationIssue `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario files without executing them.

Checks each file against the scenario schema and decodes every query's
where tree into a predicate. Faster than test for authoring feedback.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	for _, f := range files {
		if _, err := os.Stat(f); os.IsNotExist(err) {
			_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("scenario file not found: %s", f), nil)
			return NewExitError(ExitCommandError, fmt.Sprintf("scenario file not found: %s", f))
		}
	}

	var issues []ValidationIssue
	for _, f := range files {
		formatter.VerboseLog("Validating %s", f)
		issues = append(issues, validateScenarioFile(f)...)
	}

	if len(issues) > 0 {
		return outputValidationErrors(formatter, len(files), issues)
	}

	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Files: len(files)})
	}
	fmt.Fprintf(formatter.Writer, "✓ %d scenario file(s) valid\n", len(files))
	return nil
}

// validateScenarioFile loads a scenario and decodes each query's predicate.
func validateScenarioFile(path string) []ValidationIssue {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return []ValidationIssue{{File: path, Code: ErrCodeInvalid, Message: err.Error()}}
	}

	var issues []ValidationIssue
	for _, q := range scenario.Queries {
		if _, err := harness.DecodePredicate(q.Where); err != nil {
			// A query that expects a validation error may carry a
			// deliberately invalid where tree.
			if q.ExpectError == harness.ErrorKindValidation {
				continue
			}
			issues = append(issues, ValidationIssue{
				File:    path,
				Query:   q.Name,
				Code:    ErrCodeBadQuery,
				Message: err.Error(),
			})
		}
	}
	return issues
}

// outputValidationErrors outputs every issue and returns an exit error.
func outputValidationErrors(formatter *OutputFormatter, files int, issues []ValidationIssue) error {
	if formatter.Format == "json" {
		_ = formatter.Error(issues[0].Code, fmt.Sprintf("%d validation error(s)", len(issues)),
			ValidationResult{Valid: false, Files: files, Errors: issues})
	} else {
		for _, is := range issues {
			if is.Query != "" {
				fmt.Fprintf(formatter.Writer, "✗ %s: query %q: [%s] %s\n", is.File, is.Query, is.Code, is.Message)
			} else {
				fmt.Fprintf(formatter.Writer, "✗ %s: [%s] %s\n", is.File, is.Code, is.Message)
			}
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(issues)))
}
