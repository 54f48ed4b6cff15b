package report

import "strings"

// forbiddenChars are removed from titles before they become part of a filename
const forbiddenChars = `\/*?:"<>|`

// filenameReplacer drops each forbidden character. All of them are ASCII, so every other byte,
// including invalid UTF-8, passes through unchanged.
var filenameReplacer = func() *strings.Replacer {
	pairs := make([]string, 0, 2*len(forbiddenChars))
	for _, c := range forbiddenChars {
		pairs = append(pairs, string(c), "")
	}
	return strings.NewReplacer(pairs...)
}()

// SanitizeFilename drops every character that is not allowed in a filename.
// Nothing is replaced and the result is not truncated.
func SanitizeFilename(s string) string {
	return filenameReplacer.Replace(s)
}
