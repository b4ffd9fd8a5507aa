package cmd

import (
	"strings"

	"github.com/cheerioskun/sgrep/internal/matcher"
	"github.com/cheerioskun/sgrep/internal/models"
)

// shorthandPattern detects "sgrep <pattern>": exactly one argument that is
// not a flag
func shorthandPattern(args []string) (string, bool) {
	if len(args) != 1 || strings.HasPrefix(args[0], "-") {
		return "", false
	}
	return args[0], true
}

// shorthandOptions expands a bare pattern to -r -i -p <pattern>, numbering
// lines only when searching files
func shorthandOptions(pattern string, piped bool) *models.Options {
	opts := models.NewOptions()
	opts.Recurse = true
	opts.SetInclude([]string{pattern}, matcher.Insensitive)
	opts.ShowLineNumbers = !piped
	return opts
}
