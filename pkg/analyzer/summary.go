package analyzer

import (
	"maps"
	"slices"

	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

// Summary is the result of analyzing one repository.
// It is built once by [Assemble] and not modified afterwards.
type Summary struct {
	Repo      github.RepoInfo   `json:"repo" yaml:"repo"`
	Stats     github.RepoStats  `json:"stats" yaml:"stats"`
	Languages github.Languages  `json:"languages" yaml:"languages"`
	Content   map[string]string `json:"content" yaml:"content"`
}

// Assemble combines fetched data into a Summary.
//
// The maps and topic list are copied, so later changes to the arguments do
// not affect the result. Nil maps and a nil topic list become empty values
// and serialize as {} and [] rather than null.
func Assemble(info github.RepoInfo, stats github.RepoStats, langs github.Languages, files map[string]string) *Summary {
	info.Topics = slices.Clone(info.Topics)
	if info.Topics == nil {
		info.Topics = []string{}
	}
	if info.License != nil {
		l := *info.License
		info.License = &l
	}

	s := &Summary{
		Repo:      info,
		Stats:     stats,
		Languages: github.Languages{},
		Content:   map[string]string{},
	}
	maps.Copy(s.Languages, langs)
	maps.Copy(s.Content, files)
	return s
}

// Files returns the names of the files present in the summary, sorted.
func (s *Summary) Files() []string {
	return slices.Sorted(maps.Keys(s.Content))
}
