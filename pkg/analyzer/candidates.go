package analyzer

import "strings"

// DefaultFiles are the root-level files every analysis looks for.
var DefaultFiles = []string{
	"README.md",
	"CONTRIBUTING.md",
	"LICENSE",
	"setup.py",
	"requirements.txt",
	"Cargo.toml",
	"package.json",
	"go.mod",
	"composer.json",
	"Gemfile",
}

// Candidates returns DefaultFiles followed by extra, with blanks and
// duplicates removed. The first occurrence of a name keeps its position.
func Candidates(extra []string) []string {
	out := make([]string, 0, len(DefaultFiles)+len(extra))
	seen := make(map[string]bool, cap(out))
	for _, list := range [][]string{DefaultFiles, extra} {
		for _, name := range list {
			name = strings.TrimSpace(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			out = append(out, name)
		}
	}
	return out
}
