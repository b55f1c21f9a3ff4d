// Package output plans on-disk paths and encodings for generated files and
// parses the user's target-name input.
package output

import (
	"path"
	"regexp"
	"strings"

	"github.com/example/codegen/internal/errkind"
)

// Organizational markers embedded in logical paths at planning time.
const (
	MarkerCoreResolver   = "CoreResolver"
	MarkerInfrastructure = "Infrastructure"

	implementWord  = "Implement"
	repositoryWord = "Repository"
)

// PlanOutputPath strips the organizational marker from a logical path,
// removing the marker name plus tail following characters. Under the
// Infrastructure marker "Implement" is first rewritten to "Repository".
// Paths without a marker are returned unchanged.
func PlanOutputPath(logicalPath string, tail int) string {
	var marker string
	if strings.Contains(logicalPath, MarkerCoreResolver) {
		marker = MarkerCoreResolver
	}
	if strings.Contains(logicalPath, MarkerInfrastructure) {
		marker = MarkerInfrastructure
		logicalPath = strings.ReplaceAll(logicalPath, implementWord, repositoryWord)
	}
	if marker == "" {
		return logicalPath
	}

	i := strings.Index(logicalPath, marker)
	end := min(i+len(marker)+max(tail, 0), len(logicalPath))
	return logicalPath[:i] + logicalPath[end:]
}

var noBOM = map[string]bool{
	".cmd":  true,
	".bat":  true,
	".json": true,
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// UsesBOM reports whether a file at path is written with a UTF-8 byte order
// mark.
func UsesBOM(filePath string) bool {
	return !noBOM[strings.ToLower(path.Ext(toSlash(filePath)))]
}

// Encode returns the bytes written for content at filePath.
func Encode(filePath, content string) []byte {
	if !UsesBOM(filePath) {
		return []byte(content)
	}
	out := make([]byte, 0, len(utf8BOM)+len(content))
	out = append(out, utf8BOM...)
	return append(out, content...)
}

var reservedName = regexp.MustCompile(`(?i)^(PRN|AUX|NUL|CON|COM[1-9]|LPT[1-9])(\.|$)`)

const invalidChars = `<>:"|?*`

// ValidatePath checks every segment of a relative path against reserved
// device names and characters that are invalid in file names on any
// supported platform.
func ValidatePath(p string) error {
	for _, seg := range strings.FieldsFunc(p, isSeparator) {
		if reservedName.MatchString(seg) {
			return errkind.InvalidName("the name %q is a system reserved name", seg)
		}
		for _, r := range seg {
			if r < 0x20 || strings.ContainsRune(invalidChars, r) {
				return errkind.InvalidName("the name %q contains invalid characters", seg)
			}
		}
	}
	return nil
}

// IsFolder reports whether a logical path names a folder rather than a file.
func IsFolder(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, `\`)
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}
