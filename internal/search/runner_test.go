package search

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/sgrep/internal/filter"
	"github.com/cheerioskun/sgrep/internal/matcher"
	"github.com/cheerioskun/sgrep/internal/models"
	"github.com/cheerioskun/sgrep/internal/scanner"
	"github.com/cheerioskun/sgrep/internal/utils"
	"github.com/muesli/termenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemFs(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()

	fs := afero.NewMemMapFs()
	for path, content := range files {
		require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0644))
	}
	return fs
}

func newPlainRunner(fs afero.Fs, out *bytes.Buffer, opts *models.Options, logger *utils.Logger) *Runner {
	runner := NewRunner(fs, out, opts, logger)

	r := lipgloss.NewRenderer(out)
	r.SetColorProfile(termenv.Ascii)
	runner.SetStyles(filter.DefaultStyles(r))
	return runner
}

func TestRunFilesLabelsEachFile(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/a.rs":     "pub struct Foo\nlet x = 1\npub struct Bar\n",
		"/proj/b.rs":     "fn nothing() {}\n",
		"/proj/notes.md": "pub struct in docs\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.SetInclude([]string{"pub struct"}, matcher.Sensitive)
	opts.FileFilter = scanner.NewFileNameFilter([]string{".rs"})
	opts.ShowLineNumbers = true

	var out bytes.Buffer
	targets, err := newPlainRunner(fs, &out, opts, nil).RunFiles()
	require.NoError(t, err)

	want := "/proj/a.rs\n" +
		"   0: pub struct Foo\n" +
		"   2: pub struct Bar\n" +
		"\n"
	assert.Equal(t, want, out.String())
	assert.Len(t, targets.Files, 2)
	assert.Equal(t, 2, targets.Searched)
	assert.Equal(t, 2, targets.LinesShown)
}

func TestRunFilesRecursesOnlyWhenAsked(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/top.txt":     "needle top\n",
		"/proj/sub/low.txt": "needle low\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true
	opts.SetInclude([]string{"needle"}, matcher.Sensitive)

	var out bytes.Buffer
	_, err := newPlainRunner(fs, &out, opts, nil).RunFiles()
	require.NoError(t, err)
	assert.Equal(t, "needle top\n", out.String())

	out.Reset()
	opts.Recurse = true
	_, err = newPlainRunner(fs, &out, opts, nil).RunFiles()
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	assert.ElementsMatch(t, []string{"needle top", "needle low"}, lines)
}

func TestRunFilesExplicitListSkipsMissingAndDirectories(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/a.h":        "#ifdef A\nint a;\n",
		"/proj/dir/keep.h": "#ifndef KEEP\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true
	opts.SetInclude([]string{"#ifdef", "#ifndef"}, matcher.Sensitive)
	opts.Files = []string{"/proj/*.c", "/proj/dir", "/proj/a.h"}

	var out bytes.Buffer
	targets, err := newPlainRunner(fs, &out, opts, nil).RunFiles()
	require.NoError(t, err)

	assert.Equal(t, "#ifdef A\n", out.String())
	assert.Equal(t, 2, targets.Skipped)
	assert.Equal(t, 1, targets.Searched)
}

func TestRunFilesContinuesAfterDecodeError(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/a.bin": "match\n\xff\xfe\n",
		"/proj/b.txt": "match too\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true
	opts.Debug = true
	opts.SetInclude([]string{"match"}, matcher.Sensitive)

	var out, logs bytes.Buffer
	targets, err := newPlainRunner(fs, &out, opts, utils.NewLogger(&logs)).RunFiles()
	require.NoError(t, err)

	assert.Equal(t, "match\nmatch too\n", out.String())
	assert.Equal(t, 1, targets.Failed)
	assert.Equal(t, 1, targets.Searched)
	assert.Contains(t, logs.String(), "[ERROR] ")
	assert.Contains(t, logs.String(), "/proj/a.bin: line 1")
}

func TestRunFilesLogsNothingWithoutDebug(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/a.bin": "match\n\xff\xfe\n",
		"/proj/b.txt": "match too\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true
	opts.Files = []string{"/proj/missing.txt", "/proj/a.bin", "/proj/b.txt"}
	opts.SetInclude([]string{"match"}, matcher.Sensitive)

	var out, logs bytes.Buffer
	targets, err := newPlainRunner(fs, &out, opts, utils.NewLogger(&logs)).RunFiles()
	require.NoError(t, err)

	assert.Equal(t, "match\nmatch too\n", out.String())
	assert.Equal(t, 1, targets.Skipped)
	assert.Equal(t, 1, targets.Failed)
	assert.Empty(t, logs.String())
}

func TestRunFilesMissingRootIsFatal(t *testing.T) {
	opts := models.NewOptions()
	opts.Root = "/missing"
	opts.SetInclude([]string{"x"}, matcher.Sensitive)

	var out bytes.Buffer
	_, err := newPlainRunner(afero.NewMemMapFs(), &out, opts, nil).RunFiles()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error listing files")
}

type closedPipe struct{}

func (closedPipe) Write(p []byte) (int, error) {
	return 0, errors.New("write |1: broken pipe")
}

func TestRunFilesStopsOnOutputError(t *testing.T) {
	fs := newMemFs(t, map[string]string{
		"/proj/a.txt": "x\n",
		"/proj/b.txt": "x\n",
	})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true

	runner := NewRunner(fs, closedPipe{}, opts, nil)
	targets, err := runner.RunFiles()
	require.Error(t, err)
	assert.True(t, errors.Is(err, filter.ErrOutput))
	assert.Equal(t, 0, targets.Searched)
}

func TestRunStdinForcesTopLines(t *testing.T) {
	opts := models.NewOptions()
	opts.SetInclude([]string{"bash"}, matcher.Sensitive)
	opts.ShowTop = 1

	var out bytes.Buffer
	err := newPlainRunner(afero.NewMemMapFs(), &out, opts, nil).
		Run(strings.NewReader("init process\nmy-bash-shell\nother\n"), true)
	require.NoError(t, err)

	assert.Equal(t, "init process\nmy-bash-shell\n", out.String())
}

func TestRunStdinDecodeErrorIsFatal(t *testing.T) {
	opts := models.NewOptions()

	var out bytes.Buffer
	err := newPlainRunner(afero.NewMemMapFs(), &out, opts, nil).RunStdin(strings.NewReader("ok\n\xff\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading from stdin")
	assert.True(t, errors.Is(err, filter.ErrInvalidText))
}

func TestRunDispatchesToFiles(t *testing.T) {
	fs := newMemFs(t, map[string]string{"/proj/a.txt": "hello\n"})

	opts := models.NewOptions()
	opts.Root = "/proj"
	opts.Raw = true

	var out bytes.Buffer
	err := newPlainRunner(fs, &out, opts, nil).Run(strings.NewReader("ignored\n"), false)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", out.String())
}
