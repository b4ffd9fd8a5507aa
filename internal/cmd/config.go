package cmd

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cheerioskun/sgrep/internal/matcher"
	"github.com/cheerioskun/sgrep/internal/models"
	"github.com/cheerioskun/sgrep/internal/scanner"
	"github.com/cheerioskun/sgrep/internal/utils"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlags binds every flag to viper and enables SGREP_* environment overrides
func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	v.SetEnvPrefix("sgrep")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Bind flags to viper
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		panic(fmt.Sprintf("binding flags: %v", err))
	}
}

// loadConfig reads the --config file, or .sgrep.yaml from the current or
// home directory when present
func loadConfig(v *viper.Viper) error {
	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName(".sgrep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// stringList reads a repeatable flag. Command line values are taken as given;
// env and config file strings are comma separated, with CSV quoting, so
// SGREP_PATTERN="pub struct" is one pattern.
func stringList(v *viper.Viper, cmd *cobra.Command, name string) ([]string, error) {
	if flag := cmd.Flags().Lookup(name); flag != nil && flag.Changed {
		return cmd.Flags().GetStringArray(name)
	}

	switch value := v.Get(name).(type) {
	case nil:
		return nil, nil
	case string:
		if value == "" {
			return nil, nil
		}
		fields, err := csv.NewReader(strings.NewReader(value)).Read()
		if err != nil {
			return nil, fmt.Errorf("invalid %s list %q: %w", name, value, err)
		}
		return fields, nil
	default:
		list, err := cast.ToStringSliceE(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s list: %w", name, err)
		}
		return list, nil
	}
}

// buildOptions merges flags, environment and config file into Options
func buildOptions(v *viper.Viper, cmd *cobra.Command, files []string, piped bool) (*models.Options, error) {
	showTop := v.GetInt("show-top")
	if showTop < 0 {
		return nil, fmt.Errorf("show-top must not be negative, got %d", showTop)
	}

	include, err := stringList(v, cmd, "pattern")
	if err != nil {
		return nil, err
	}
	exclude, err := stringList(v, cmd, "exclude")
	if err != nil {
		return nil, err
	}
	filePatterns, err := stringList(v, cmd, "file-pattern")
	if err != nil {
		return nil, err
	}

	mode := matcher.CaseModeFromFlag(v.GetBool("case-insensitive"))

	opts := models.NewOptions()
	opts.Root = v.GetString("root")
	opts.ShowTop = showTop
	opts.Raw = v.GetBool("raw")
	opts.Debug = v.GetBool("debug") || v.GetString("log-file") != ""
	opts.SetInclude(include, mode)
	opts.SetExclude(exclude, mode)

	if piped {
		// Stdin is a single stream; there is nothing to enumerate
		opts.FileFilter = scanner.NoFileFilter()
	} else {
		opts.Recurse = v.GetBool("recurse")
		opts.FileFilter = scanner.NewFileNameFilter(filePatterns)
		if len(files) > 0 {
			opts.Files = files
		}
	}

	opts.ShowLineNumbers = !piped
	if v.IsSet("line-numbers") {
		opts.ShowLineNumbers = v.GetBool("line-numbers")
	}

	if opts.Root == "" {
		opts.Root = "."
	}

	return opts, nil
}

// newLogger picks the diagnostics sink: a log file, stderr with --debug,
// or nothing
func newLogger(v *viper.Viper, stderr io.Writer) (*utils.Logger, error) {
	if path := v.GetString("log-file"); path != "" {
		return utils.NewFileLogger(path)
	}
	if v.GetBool("debug") {
		return utils.NewLogger(stderr), nil
	}
	return utils.Discard(), nil
}
