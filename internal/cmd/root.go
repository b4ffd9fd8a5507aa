package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/cheerioskun/sgrep/internal/filter"
	"github.com/cheerioskun/sgrep/internal/models"
	"github.com/cheerioskun/sgrep/internal/search"
	"github.com/cheerioskun/sgrep/internal/utils"
	"github.com/mattn/go-isatty"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// Env holds the process resources a run reads from and writes to
type Env struct {
	In       io.Reader
	Out      io.Writer
	Err      io.Writer
	Fs       afero.Fs
	Piped    bool               // stdin is redirected rather than a terminal
	Renderer *lipgloss.Renderer // decides whether colors reach the terminal
}

// StdinPiped reports whether f is redirected from a file or pipe
func StdinPiped(f *os.File) bool {
	fd := f.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Execute runs sgrep against the real process streams and returns the exit code
func Execute(args []string) int {
	return execute(os.Stdin, os.Stdout, os.Stderr, args)
}

func execute(stdin, stdout *os.File, stderr io.Writer, args []string) int {
	out := bufio.NewWriter(stdout)

	env := Env{
		In:       stdin,
		Out:      out,
		Err:      stderr,
		Fs:       afero.NewOsFs(),
		Piped:    StdinPiped(stdin),
		Renderer: lipgloss.NewRenderer(stdout),
	}

	err := Run(env, args)
	flushErr := out.Flush()
	if err == nil {
		err = flushErr
	}

	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// Run parses args and performs one search. A single bare argument is
// handled before cobra sees the arguments.
func Run(env Env, args []string) error {
	if pattern, ok := shorthandPattern(args); ok {
		return runSearch(env, shorthandOptions(pattern, env.Piped), utils.Discard())
	}

	// cobra falls back to os.Args for a nil slice
	if args == nil {
		args = []string{}
	}

	cmd := NewRootCommand(env)
	cmd.SetArgs(args)
	return cmd.Execute()
}

// NewRootCommand creates and returns the root cobra command for sgrep
func NewRootCommand(env Env) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "sgrep [files...]",
		Short: "Print lines containing any of the given substrings",
		Long: `sgrep searches files, or standard input when it is piped, for lines
containing any of the --pattern substrings and not containing any of the
--exclude substrings.

Examples:
  # Lines containing "pub struct" in all .rs files in the local directory
  sgrep -p "pub struct" *.rs

  # Lines containing "#ifdef" or "#ifndef" in all .c and .h files
  sgrep -p "#ifdef" -p "#ifndef" -f .c -f .h

  # Keep the header line of ps output
  ps aux | sgrep -t 1 -p bash

  # Shorthand for: sgrep -r -i -p armaria
  sgrep armaria`,
		Args:          cobra.ArbitraryArgs,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadConfig(v); err != nil {
				return err
			}

			opts, err := buildOptions(v, cmd, args, env.Piped)
			if err != nil {
				return err
			}

			if !opts.HasLineFilters() {
				return cmd.Help()
			}

			logger, err := newLogger(v, env.Err)
			if err != nil {
				return err
			}
			defer logger.Close()

			utils.SetDefault(logger)
			if used := v.ConfigFileUsed(); used != "" {
				utils.Debug("using config file %s", used)
			}

			return runSearch(env, opts, logger)
		},
	}

	cmd.SetIn(env.In)
	cmd.SetOut(env.Out)
	cmd.SetErr(env.Err)

	flags := cmd.Flags()
	flags.BoolP("recurse", "r", false, "recursively search subdirectories")
	flags.BoolP("case-insensitive", "i", false, "case-insensitive search")
	flags.String("root", ".", "root directory to search")
	flags.IntP("show-top", "t", 0, "always show the first N lines of every file or stream")
	flags.StringArrayP("pattern", "p", nil, "patterns to filter lines in a buffer (comma separated in env and config)")
	flags.StringArrayP("exclude", "e", nil, "hide lines containing any of these patterns; \"\" hides every line")
	flags.StringArrayP("file-pattern", "f", nil, "patterns to filter files. E.g. .cpp, .h, my_class")
	flags.Bool("raw", false, "print matching lines only, without file names, numbers or colors")
	flags.BoolP("line-numbers", "n", false, "prefix lines with their number (default on for files, off for stdin)")
	flags.BoolP("debug", "d", false, "report files that could not be read on stderr")
	flags.String("log-file", "", "append diagnostics to this file")
	flags.String("config", "", "config file (default .sgrep.yaml in the current or home directory)")

	bindFlags(v, cmd)

	return cmd
}

// runSearch executes one search with fully built options
func runSearch(env Env, opts *models.Options, logger *utils.Logger) error {
	runner := search.NewRunner(env.Fs, env.Out, opts, logger)
	if env.Renderer != nil {
		runner.SetStyles(filter.DefaultStyles(env.Renderer))
	}
	return runner.Run(env.In, env.Piped)
}
