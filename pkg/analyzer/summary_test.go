package analyzer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ursisterbtw/gh-analyzer/pkg/integrations/github"
)

func TestAssemble_CopiesInputs(t *testing.T) {
	langs := github.Languages{"Go": 10}
	files := map[string]string{"README.md": "hi"}
	topics := []string{"cli"}

	s := Assemble(github.RepoInfo{Name: "x", Topics: topics}, github.RepoStats{SizeKB: 4}, langs, files)

	langs["Rust"] = 5
	files["LICENSE"] = "MIT"
	topics[0] = "changed"

	assert.Equal(t, github.Languages{"Go": 10}, s.Languages)
	assert.Equal(t, map[string]string{"README.md": "hi"}, s.Content)
	assert.Equal(t, []string{"cli"}, s.Repo.Topics)
	assert.EqualValues(t, 4, s.Stats.SizeKB)
}

func TestAssemble_NilInputs(t *testing.T) {
	s := Assemble(github.RepoInfo{Name: "x"}, github.RepoStats{}, nil, nil)

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, map[string]any{}, out["languages"])
	assert.Equal(t, map[string]any{}, out["content"])
	assert.Equal(t, []any{}, out["repo"].(map[string]any)["topics"])
	assert.Nil(t, out["repo"].(map[string]any)["description"])
	assert.Contains(t, out, "stats")
}

func TestSummary_Files(t *testing.T) {
	s := Assemble(github.RepoInfo{}, github.RepoStats{}, nil, map[string]string{"b": "", "a": ""})
	assert.Equal(t, []string{"a", "b"}, s.Files())
}

func TestCandidates(t *testing.T) {
	got := Candidates([]string{"Makefile", "README.md", "", "Makefile", " Dockerfile "})
	want := append(append([]string{}, DefaultFiles...), "Makefile", "Dockerfile")
	assert.Equal(t, want, got)

	assert.Equal(t, DefaultFiles, Candidates(nil))
}
