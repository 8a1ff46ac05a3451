package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const tinyScenario = `name: tiny
description: "one song"
inserts:
  - table: songs
    record: {title: "Fly", artist: "Dixie Chicks", rating: 8}
queries:
  - name: fly
    table: songs
    where: {eq: [title, "Fly"]}
    expect:
      - {title: "Fly", artist: "Dixie Chicks", rating: 8}
  - name: before_a
    table: songs
    where: {lt: [title, null]}
    expect_error: comparison
`

const failingScenario = `name: wrong
description: "expects a record that is not there"
inserts:
  - table: songs
    record: {title: "Fly", rating: 8}
queries:
  - name: home
    table: songs
    where: {eq: [title, "Fly"]}
    expect:
      - {title: "Home", rating: 9}
`

// writeScenario writes content to dir/name and returns the path.
func writeScenario(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
