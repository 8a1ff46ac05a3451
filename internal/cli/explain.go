package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/recsel/internal/harness"
	"github.com/roach88/recsel/internal/predicate"
	"github.com/roach88/recsel/internal/querysql"
)

// QueryExplanation describes how one scenario query is evaluated.
type QueryExplanation struct {
	Name      string   `json:"name"`
	Table     string   `json:"table"`
	Predicate string   `json:"predicate,omitempty"`
	Portable  bool     `json:"portable"`
	Warnings  []string `json:"warnings,omitempty"`
	SQL       string   `json:"sql,omitempty"`
	Params    []any    `json:"params,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ExplainResult holds the explanations for a scenario file.
type ExplainResult struct {
	Scenario string             `json:"scenario"`
	Queries  []QueryExplanation `json:"queries"`
}

// NewExplainCommand creates the explain command.
func NewExplainCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain <scenario-file>",
		Short: "Show rendered predicates and compiled SQL for a scenario",
		Long: `Explain each query of a scenario file.

For every query prints the rendered predicate, whether it can be
compiled to SQL (with the reasons when it cannot), and the SQLite
statement and parameters the mirror would run.

Examples:
  recsel explain ./scenarios/songs.yaml
  recsel explain ./scenarios/songs.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runExplain(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = formatter.Error(ErrCodeNotFound, fmt.Sprintf("scenario file not found: %s", path), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("scenario file not found: %s", path))
	}

	scenario, err := harness.LoadScenario(path)
	if err != nil {
		_ = formatter.Error(ErrCodeLoadFailed, err.Error(), nil)
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	result := ExplainResult{
		Scenario: scenario.Name,
		Queries:  make([]QueryExplanation, 0, len(scenario.Queries)),
	}
	compiler := querysql.NewSQLCompiler()
	for _, q := range scenario.Queries {
		formatter.VerboseLog("Explaining %s", q.Name)
		result.Queries = append(result.Queries, explainQuery(compiler, q))
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	printExplainText(formatter, result)
	return nil
}

func explainQuery(compiler *querysql.SQLCompiler, q harness.QueryStep) QueryExplanation {
	ex := QueryExplanation{Name: q.Name, Table: q.Table}

	p, err := harness.DecodePredicate(q.Where)
	if err != nil {
		ex.Error = err.Error()
		return ex
	}
	ex.Predicate = predicate.String(p)

	v := predicate.Validate(p)
	ex.Portable = v.IsPortable
	ex.Warnings = v.Warnings
	if !v.IsPortable {
		return ex
	}

	sql, params, err := compiler.SelectSQL(q.Table, p)
	if err != nil {
		ex.Portable = false
		ex.Error = err.Error()
		return ex
	}
	ex.SQL = sql
	ex.Params = params
	return ex
}

func printExplainText(f *OutputFormatter, result ExplainResult) {
	w := f.Writer
	fmt.Fprintf(w, "Scenario: %s\n", result.Scenario)

	for _, q := range result.Queries {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%s (%s)\n", q.Name, q.Table)
		if q.Predicate != "" {
			fmt.Fprintf(w, "  where:  %s\n", q.Predicate)
		}
		for _, warn := range q.Warnings {
			fmt.Fprintf(w, "  warn:   %s\n", warn)
		}
		if q.Error != "" {
			fmt.Fprintf(w, "  error:  %s\n", q.Error)
		}
		if q.SQL != "" {
			fmt.Fprintf(w, "  sql:    %s\n", q.SQL)
			fmt.Fprintf(w, "  params: %v\n", q.Params)
		}
	}
}
