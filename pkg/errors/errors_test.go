package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeRepoNotFound, "repository not found: %s", "owner/name")

	if err.Code != ErrCodeRepoNotFound {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeRepoNotFound)
	}

	if err.Message != "repository not found: owner/name" {
		t.Errorf("Message = %v, want %v", err.Message, "repository not found: owner/name")
	}

	expected := "REPO_NOT_FOUND: repository not found: owner/name"
	if err.Error() != expected {
		t.Errorf("Error() = %v, want %v", err.Error(), expected)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(ErrCodeNetwork, cause, "fetch languages")

	if err.Code != ErrCodeNetwork {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeNetwork)
	}

	if err.Cause != cause {
		t.Errorf("Cause = %v, want %v", err.Cause, cause)
	}

	unwrapped := errors.Unwrap(err)
	if unwrapped != cause {
		t.Errorf("Unwrap() = %v, want %v", unwrapped, cause)
	}

	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		code     Code
		expected bool
	}{
		{
			name:     "matching code",
			err:      New(ErrCodeUnauthorized, "test"),
			code:     ErrCodeUnauthorized,
			expected: true,
		},
		{
			name:     "non-matching code",
			err:      New(ErrCodeUnauthorized, "test"),
			code:     ErrCodeNetwork,
			expected: false,
		},
		{
			name:     "wrapped error",
			err:      Wrap(ErrCodeNetwork, New(ErrCodeInvalidInput, "inner"), "outer"),
			code:     ErrCodeNetwork,
			expected: true,
		},
		{
			name:     "fmt wrapped error",
			err:      fmt.Errorf("analyze: %w", New(ErrCodeRepoNotFound, "gone")),
			code:     ErrCodeRepoNotFound,
			expected: true,
		},
		{
			name:     "rate limited error",
			err:      fmt.Errorf("analyze: %w", &RateLimitedError{}),
			code:     ErrCodeRateLimited,
			expected: true,
		},
		{
			name:     "non-Error type",
			err:      errors.New("plain error"),
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "nil error",
			err:      nil,
			code:     ErrCodeInvalidInput,
			expected: false,
		},
		{
			name:     "empty code",
			err:      errors.New("plain error"),
			code:     "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.expected {
				t.Errorf("Is() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Code
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeInvalidFormat, "test"),
			expected: ErrCodeInvalidFormat,
		},
		{
			name:     "rate limited",
			err:      &RateLimitedError{ResetAt: time.Unix(1700000000, 0)},
			expected: ErrCodeRateLimited,
		},
		{
			name:     "plain error",
			err:      errors.New("plain"),
			expected: "",
		},
		{
			name:     "nil",
			err:      nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.expected {
				t.Errorf("GetCode() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	reset := time.Unix(1700000000, 0)
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "Error type",
			err:      New(ErrCodeUnauthorized, "friendly message"),
			expected: "friendly message",
		},
		{
			name:     "rate limited",
			err:      fmt.Errorf("wrapped: %w", &RateLimitedError{ResetAt: reset}),
			expected: "API rate limit exceeded. Resets at " + reset.Local().Format("15:04:05"),
		},
		{
			name:     "plain error",
			err:      errors.New("plain error"),
			expected: "plain error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.expected {
				t.Errorf("UserMessage() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestRateLimitedError(t *testing.T) {
	reset := time.Unix(1700000000, 0)

	t.Run("message includes local reset time", func(t *testing.T) {
		err := &RateLimitedError{ResetAt: reset}
		want := reset.Local().Format("15:04:05")
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Error() = %q, want it to contain %q", err.Error(), want)
		}
		if !strings.HasPrefix(err.Error(), "API rate limit exceeded") {
			t.Errorf("Error() = %q, want rate limit prefix", err.Error())
		}
	})

	t.Run("code method", func(t *testing.T) {
		err := &RateLimitedError{}
		if err.Code() != ErrCodeRateLimited {
			t.Errorf("Code() = %v, want %v", err.Code(), ErrCodeRateLimited)
		}
	})

	t.Run("retry after", func(t *testing.T) {
		err := &RateLimitedError{ResetAt: reset}
		if got := err.RetryAfter(reset.Add(-90 * time.Second)); got != 90*time.Second {
			t.Errorf("RetryAfter() = %v, want 90s", got)
		}
		if got := err.RetryAfter(reset.Add(time.Minute)); got != 0 {
			t.Errorf("RetryAfter() after reset = %v, want 0", got)
		}
	})
}
