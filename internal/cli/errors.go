package cli

import (
	"strings"

	"github.com/cockroachdb/errors"
)

// FormatError renders err for the terminal with any attached hints on
// their own lines.
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())
	for _, hint := range errors.GetAllHints(err) {
		b.WriteString("\n  hint: ")
		b.WriteString(hint)
	}
	return b.String()
}
