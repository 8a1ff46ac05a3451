package harness

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"
)

//go:embed schema.cue
var schemaCUE string

// Scenario defines a conformance test scenario: records to insert into a
// fresh store, then queries with their expected results.
type Scenario struct {
	// Name uniquely identifies this scenario. It names the golden file, so
	// it is restricted to lowercase letters, digits and underscores.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Inserts run in order before any query.
	Inserts []InsertStep `yaml:"inserts,omitempty"`

	// Queries run in order against the populated store.
	Queries []QueryStep `yaml:"queries"`
}

// InsertStep appends one record to a table.
type InsertStep struct {
	Table string `yaml:"table"`

	// Record holds attribute values. A null value makes the record
	// invalid, which is how scenarios exercise insert validation.
	Record map[string]any `yaml:"record"`

	// ExpectError is "validation" when the insert must be rejected.
	ExpectError string `yaml:"expect_error,omitempty"`
}

// QueryStep runs one select and checks its outcome.
type QueryStep struct {
	// Name identifies the query in results and golden files.
	Name string `yaml:"name"`

	// Table is the table to select from.
	Table string `yaml:"table"`

	// Where is the predicate tree. See DecodePredicate.
	Where map[string]any `yaml:"where"`

	// Expect lists the exact records the query returns, in order.
	// Omitted or empty means no records.
	Expect []map[string]any `yaml:"expect,omitempty"`

	// ExpectError is the error kind the query must fail with:
	// "validation" or "comparison".
	ExpectError string `yaml:"expect_error,omitempty"`

	// CrossCheck replays the query through the SQLite mirror and requires
	// identical results.
	CrossCheck bool `yaml:"cross_check,omitempty"`
}

// Error kinds used by expect_error.
const (
	ErrorKindValidation = "validation"
	ErrorKindComparison = "comparison"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, fails the
// scenario schema, or contains unknown fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenario, nil
}

// ParseScenario parses scenario YAML.
//
// The document is first validated against the embedded CUE schema, then
// decoded strictly into a Scenario, then checked for cross-field rules the
// schema does not express.
func ParseScenario(data []byte) (*Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	// Parse YAML with strict field validation (catches typos like "querys:")
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateSchema checks doc against #Scenario in schema.cue.
func validateSchema(doc any) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return formatCUEError(err)
	}

	unified := schema.LookupPath(cue.ParsePath("#Scenario")).Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return formatCUEError(err)
	}
	return nil
}

// formatCUEError flattens a CUE error list into one error, one line per
// problem.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = strings.TrimSpace(errors.Details(e, nil))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

// validateScenario checks rules that span fields.
func validateScenario(s *Scenario) error {
	seen := make(map[string]bool, len(s.Queries))
	for i, q := range s.Queries {
		if seen[q.Name] {
			return fmt.Errorf("query %d: duplicate name %q", i, q.Name)
		}
		seen[q.Name] = true

		if q.ExpectError != "" && len(q.Expect) > 0 {
			return fmt.Errorf("query %q: expect and expect_error are mutually exclusive", q.Name)
		}
	}

	for i, ins := range s.Inserts {
		if ins.ExpectError != "" && ins.ExpectError != ErrorKindValidation {
			return fmt.Errorf("insert %d: inserts can only expect %q errors", i, ErrorKindValidation)
		}
	}

	return nil
}
