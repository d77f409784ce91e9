package novel

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"
)

func slugify(s string) string {
	s = strings.ToLower(s)

	repl := []string{
		"•", "_",
		"-", "_",
		"—", "_",
		"–", "_",
		"/", "_",
		"\\", "_",
		".", "_",
		" ", "_",
		"(", "",
		")", "",
	}
	for i := 0; i < len(repl); i += 2 {
		s = strings.ReplaceAll(s, repl[i], repl[i+1])
	}

	clean := make([]rune, 0, len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			clean = append(clean, r)
		}
	}
	s = string(clean)

	reUnderscore := regexp.MustCompile(`_+`)
	s = reUnderscore.ReplaceAllString(s, "_")

	return strings.Trim(s, "_")
}

// FileName is the on-disk name for a serialized chapter. The index prefix
// keeps a directory listing in reading order.
func (c Chapter) FileName() string {
	base := fmt.Sprintf("%04d", c.Index)
	if t := slugify(c.Title); t != "" {
		base += "_" + t
	}
	return base + ".html"
}

func (c Chapter) FilePath(out string) string {
	return filepath.Join(out, c.FileName())
}
