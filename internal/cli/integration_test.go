package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/refract/internal/cli"
	"github.com/yaklabco/refract/pkg/fsutil"
)

const shapes = `class Shapes
{
    int Area(int width, int height)
    {
        int area = width * height;
        return area;
    }
}
`

type execResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the CLI with an isolated config file.
func execute(t *testing.T, stdin string, args ...string) execResult {
	t.Helper()

	cfgFile := filepath.Join(t.TempDir(), ".refract.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("language: csharp\n"), 0o600))

	cmd := cli.NewRootCommand(testInfo())
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--config", cfgFile, "--color", "never"}, args...))

	err := cmd.Execute()
	return execResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeShapes(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "Shapes.cs")
	require.NoError(t, os.WriteFile(path, []byte(shapes), 0o600))
	return path
}

func TestIntegration_RenameReportsWithoutWriting(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "area", "result", "--show-edits", path)
	require.NoError(t, res.err)

	assert.Contains(t, res.stdout, "Shapes.cs")
	assert.Contains(t, res.stdout, "2 edits pending")
	assert.Contains(t, res.stdout, "result")

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, shapes, string(got))
}

func TestIntegration_RenameWrite(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "width", "w", "--write", path)
	require.NoError(t, res.err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(got), "int Area(int w, int height)")
	assert.Contains(t, string(got), "int area = w * height;")

	backup, err := os.ReadFile(path + fsutil.BackupSuffix)
	require.NoError(t, err)
	assert.Equal(t, shapes, string(backup))
}

func TestIntegration_RestoreAfterWrite(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	require.NoError(t, execute(t, "", "rename", "width", "w", "--write", path).err)

	res := execute(t, "", "restore", path, path+".missing")
	require.NoError(t, res.err)
	assert.Equal(t, "1 of 2 files restored\n", res.stdout)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, shapes, string(got))
	_, err = os.Stat(path + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestIntegration_RenameWriteNoBackups(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "width", "w", "-w", "--no-backups", path)
	require.NoError(t, res.err)

	_, err := os.Stat(path + fsutil.BackupSuffix)
	assert.True(t, os.IsNotExist(err))
}

func TestIntegration_DryRunWins(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "width", "w", "--write", "--dry-run", path)
	require.NoError(t, res.err)

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, shapes, string(got))
}

func TestIntegration_RenameStdin(t *testing.T) {
	t.Parallel()

	res := execute(t, "int total = 1;\nConsole.WriteLine(total);\n", "rename", "total", "sum", "-l", "cs", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "int sum = 1;\nConsole.WriteLine(sum);\n", res.stdout)
}

func TestIntegration_RenameStdinDiff(t *testing.T) {
	t.Parallel()

	res := execute(t, "int total = 1;\n", "rename", "total", "sum", "--format", "diff", "-")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "-int total = 1;")
	assert.Contains(t, res.stdout, "+int sum = 1;")
}

func TestIntegration_ExtractJSON(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "extract", "product", "--expr", "width * height", "--format", "json", path)
	require.NoError(t, res.err)

	var out struct {
		Files []struct {
			Changed bool `json:"changed"`
			Edits   []struct {
				NewText string `json:"newText"`
			} `json:"edits"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	require.Len(t, out.Files, 1)
	assert.True(t, out.Files[0].Changed)
	assert.Len(t, out.Files[0].Edits, 2)
}

func TestIntegration_ExtractUsageErrors(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	tests := []struct {
		name string
		args []string
	}{
		{name: "no selection", args: []string{"extract", "x", path}},
		{name: "offsets with two inputs", args: []string{"extract", "x", "--start", "1", "--end", "4", path, path}},
		{name: "empty selection", args: []string{"extract", "x", "--start", "4", "--end", "4", path}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := execute(t, "", tt.args...)
			require.ErrorIs(t, res.err, cli.ErrInvalidUsage)
			assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
		})
	}
}

func TestIntegration_RequireChanges(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "depth", "d", "--require-changes", path)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitNoChanges, cli.ExitCode(res.err))
}

func TestIntegration_InvalidName(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "rename", "width", "9lives", path)
	require.ErrorIs(t, res.err, cli.ErrRefactoringFailed)
	assert.Equal(t, cli.ExitFailure, cli.ExitCode(res.err))
	assert.Contains(t, res.stdout, "Shapes.cs")
}

func TestIntegration_BadConfig(t *testing.T) {
	t.Parallel()

	cfgFile := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(cfgFile, []byte("backups:\n  mode: cloud\n"), 0o600))

	cmd := cli.NewRootCommand(testInfo())
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--config", cfgFile, "rename", "a", "b", writeShapes(t)})

	err := cmd.Execute()
	require.ErrorIs(t, err, cli.ErrConfig)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestIntegration_Print(t *testing.T) {
	t.Parallel()

	src := `public class MyClass {
    public int MyMethod(int a) {
        return 5;
    }
}`
	res := execute(t, src, "print", "-l", "csharp")
	require.NoError(t, res.err)
	assert.Equal(t, src+"\n", res.stdout)
}

func TestIntegration_PrintMarkdown(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte("# Demo\n\n```cs\nint x = 1;\n```\n"), 0o600))

	res := execute(t, "", "print", path)
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "// "+path+":4 (csharp)\n"), res.stdout)
	assert.Contains(t, res.stdout, "int x = 1;")
}

func TestIntegration_ParseJSON(t *testing.T) {
	t.Parallel()

	path := writeShapes(t)
	res := execute(t, "", "parse", "--format", "json", "--decl", "Area", path)
	require.NoError(t, res.err)

	var out struct {
		Language string `json:"language"`
		Regions  []struct {
			Decls []struct {
				Kind  string `json:"kind"`
				Start int    `json:"start"`
			} `json:"decls"`
			SpanErrors []string `json:"span_errors"`
		} `json:"regions"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Equal(t, "csharp", out.Language)
	require.Len(t, out.Regions, 1)
	require.Len(t, out.Regions[0].Decls, 1)
	assert.Equal(t, "Function", out.Regions[0].Decls[0].Kind)
	assert.Positive(t, out.Regions[0].Decls[0].Start)
	assert.Empty(t, out.Regions[0].SpanErrors)
}

func TestIntegration_ParseYAML(t *testing.T) {
	t.Parallel()

	res := execute(t, "int x = 1;\n", "parse")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "language: csharp")
	assert.Contains(t, res.stdout, "regions:")
}

func TestIntegration_ParseUnsupported(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("words"), 0o600))

	res := execute(t, "", "parse", path)
	require.Error(t, res.err)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(res.err))
}

func TestIntegration_List(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "rename-variable")
	assert.Contains(t, res.stdout, "extract-variable")
	assert.Contains(t, res.stdout, "csharp")

	res = execute(t, "", "list", "--format", "json")
	require.NoError(t, res.err)
	var out struct {
		Refactorings []struct {
			ID string `json:"id"`
		} `json:"refactorings"`
		Languages []string `json:"languages"`
	}
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &out))
	assert.Len(t, out.Refactorings, 2)
	assert.Contains(t, out.Languages, "csharp")
}

func TestIntegration_Version(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "test-version")
	assert.Contains(t, res.stdout, "test-commit")
}

func TestIntegration_Help(t *testing.T) {
	t.Parallel()

	res := execute(t, "", "--help")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Commands:")
	assert.Contains(t, res.stdout, "rename")
	assert.Contains(t, res.stdout, "--config")
}
