package github

import (
	"testing"

	"github.com/ursisterbtw/gh-analyzer/pkg/errors"
)

func TestParseRepoRef(t *testing.T) {
	tests := []struct {
		in      string
		want    RepoRef
		wantErr bool
	}{
		{in: "pallets/flask", want: RepoRef{"pallets", "flask"}},
		{in: "  owner/repo.go  ", want: RepoRef{"owner", "repo.go"}},
		{in: "owner/repo.git", want: RepoRef{"owner", "repo"}},
		{in: "my-org/my_repo", want: RepoRef{"my-org", "my_repo"}},
		{in: "noslash", wantErr: true},
		{in: "/repo", wantErr: true},
		{in: "owner/", wantErr: true},
		{in: "-owner/repo", wantErr: true},
		{in: "owner/re po", wantErr: true},
		{in: "owner/repo/extra", wantErr: true},
		{in: "owner/..", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRepoRef(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidInput) {
					t.Errorf("ParseRepoRef(%q) error = %v, want INVALID_INPUT", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRepoRef(%q) error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseRepoRef(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
			if got.String() != tt.want.Owner+"/"+tt.want.Name {
				t.Errorf("String() = %q", got.String())
			}
		})
	}
}
