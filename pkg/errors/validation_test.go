package errors

import (
	"testing"
)

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"readme", "README.md", false},
		{"no extension", "LICENSE", false},
		{"nested", "docs/ARCHITECTURE.md", false},
		{"dotfile", ".editorconfig", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 300)), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "docs/../../secret", true},
		{"backslash", "docs\\README.md", true},
		{"query", "README.md?ref=main", true},
		{"fragment", "README.md#top", true},
		{"null byte", "README\x00.md", true},
		{"newline", "README\n.md", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidateFilename(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"https://api.github.com", false},
		{"http://localhost:8080", false},
		{"", true},
		{"ftp://example.com", true},
		{"api.github.com", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURL(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
