package driver

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type fixtureExpectation struct {
	Stdout     []string `yaml:"stdout"`
	Diagnostic string   `yaml:"diagnostic"`
	Exit       int      `yaml:"exit"`
}

func TestExecFixtures(t *testing.T) {
	root := filepath.Join("..", "..", "fixtures", "exec")
	entries, err := os.ReadDir(root)
	require.NoError(t, err)

	loader := NewLoader(nil)
	ran := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, "expect.yml")); err != nil {
			continue
		}
		ran++
		t.Run(entry.Name(), func(t *testing.T) {
			runExecFixture(t, loader, dir)
		})
	}
	require.NotZero(t, ran, "no fixtures found under %s", root)
}

func runExecFixture(t *testing.T, loader *Loader, dir string) {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(dir, "expect.yml"))
	require.NoError(t, err)
	var expected fixtureExpectation
	require.NoError(t, yaml.Unmarshal(data, &expected))

	unit, _ := loader.Load(context.Background(), FileSource{Path: filepath.Join(dir, "main.lua")})
	require.NotNil(t, unit)

	var stdout bytes.Buffer
	runner := &Runner{Stdout: &stdout}
	results := runner.Run([]*Unit{unit})
	require.Len(t, results, 1)

	exit := 0
	diagnostic := ""
	if res := results[0]; res.Err != nil {
		exit = 1
		diagnostic = DescribeDiagnostic(DiagnosticFromError(res.Err, filepath.Base(res.Path)))
	}
	require.Equal(t, expected.Exit, exit, "exit code (diagnostic %q)", diagnostic)
	require.Equal(t, expected.Diagnostic, diagnostic)
	require.Equal(t, normalizeStdout(expected.Stdout), outputLines(stdout.String()))
}

func normalizeStdout(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}

func outputLines(out string) []string {
	out = strings.TrimSuffix(out, "\n")
	if out == "" {
		return []string{}
	}
	return strings.Split(out, "\n")
}
