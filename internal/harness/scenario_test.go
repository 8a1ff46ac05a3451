package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenario = `
name: test_scenario
description: "Test scenario for validation"
inserts:
  - table: songs
    record: {title: "Fly", rating: 8, ripped: true, score: 6.5}
queries:
  - name: fly
    table: songs
    where: {eq: [title, "Fly"]}
    cross_check: true
    expect:
      - {title: "Fly", rating: 8, ripped: true, score: 6.5}
`

func TestParseScenario_Valid(t *testing.T) {
	scenario, err := ParseScenario([]byte(validScenario))
	require.NoError(t, err)

	assert.Equal(t, "test_scenario", scenario.Name)
	assert.Equal(t, "Test scenario for validation", scenario.Description)
	require.Len(t, scenario.Inserts, 1)
	assert.Equal(t, "songs", scenario.Inserts[0].Table)
	assert.Equal(t, 8, scenario.Inserts[0].Record["rating"])
	assert.Equal(t, 6.5, scenario.Inserts[0].Record["score"])
	require.Len(t, scenario.Queries, 1)
	assert.Equal(t, "fly", scenario.Queries[0].Name)
	assert.True(t, scenario.Queries[0].CrossCheck)
	assert.Equal(t, []any{"title", "Fly"}, scenario.Queries[0].Where["eq"])
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validScenario), 0644))

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "test_scenario", scenario.Name)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_MalformedYAML(t *testing.T) {
	_, err := ParseScenario([]byte("name: [unclosed"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParseScenario_SchemaErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			"unknown top-level field",
			`
name: s
description: d
querys: []
queries:
  - {name: q, table: t, where: {and: []}}
`,
		},
		{
			"missing queries",
			`
name: s
description: d
`,
		},
		{
			"empty queries",
			`
name: s
description: d
queries: []
`,
		},
		{
			"bad scenario name",
			`
name: "Has Spaces"
description: d
queries:
  - {name: q, table: t, where: {and: []}}
`,
		},
		{
			"unknown operator",
			`
name: s
description: d
queries:
  - {name: q, table: t, where: {like: [title, "F%"]}}
`,
		},
		{
			"wrong arity",
			`
name: s
description: d
queries:
  - {name: q, table: t, where: {between: [rating, 1]}}
`,
		},
		{
			"nested record value",
			`
name: s
description: d
inserts:
  - {table: t, record: {tags: [a, b]}}
queries:
  - {name: q, table: t, where: {and: []}}
`,
		},
		{
			"unknown error kind",
			`
name: s
description: d
queries:
  - {name: q, table: t, where: {and: []}, expect_error: boom}
`,
		},
		{
			"empty document",
			``,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "schema validation failed")
		})
	}
}

func TestParseScenario_DuplicateQueryName(t *testing.T) {
	content := `
name: s
description: d
queries:
  - {name: q, table: t, where: {and: []}}
  - {name: q, table: t, where: {or: []}}
`
	_, err := ParseScenario([]byte(content))

	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate name "q"`)
}

func TestParseScenario_ExpectAndExpectError(t *testing.T) {
	content := `
name: s
description: d
queries:
  - name: q
    table: t
    where: {and: []}
    expect: [{a: 1}]
    expect_error: comparison
`
	_, err := ParseScenario([]byte(content))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestParseScenario_InsertExpectsComparison(t *testing.T) {
	content := `
name: s
description: d
inserts:
  - {table: t, record: {a: 1}, expect_error: comparison}
queries:
  - {name: q, table: t, where: {and: []}}
`
	_, err := ParseScenario([]byte(content))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "inserts can only expect")
}

func TestLoadScenario_TestdataFiles(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, f := range files {
		t.Run(filepath.Base(f), func(t *testing.T) {
			_, err := LoadScenario(f)
			require.NoError(t, err)
		})
	}
}
