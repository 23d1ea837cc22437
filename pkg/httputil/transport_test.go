package httputil

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestTransport_SetsHeaders(t *testing.T) {
	var got http.Header
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer server.Close()

	client := &http.Client{Transport: &Transport{
		Headers: http.Header{
			"Accept":     {"application/vnd.github.v3+json"},
			"User-Agent": {"gh-analyzer-test"},
		},
	}}

	req, _ := http.NewRequest(http.MethodGet, server.URL, nil)
	req.Header.Set("Accept", "application/vnd.github.v3.raw")
	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("Do() error: %v", err)
	}
	resp.Body.Close()

	if ua := got.Get("User-Agent"); ua != "gh-analyzer-test" {
		t.Errorf("User-Agent = %q, want %q", ua, "gh-analyzer-test")
	}
	if accept := got.Get("Accept"); accept != "application/vnd.github.v3.raw" {
		t.Errorf("Accept = %q, explicit request header should win", accept)
	}
	if req.Header.Get("User-Agent") != "" {
		t.Error("Transport must not mutate the caller's request")
	}
}

func TestTransport_LogsWithoutSecrets(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	client := &http.Client{Transport: &Transport{
		Headers: http.Header{"Authorization": {"Bearer s3cr3t"}},
		Logger:  logger,
	}}

	resp, err := client.Get(server.URL + "/rate_limit")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	resp.Body.Close()

	out := buf.String()
	if strings.Contains(out, "s3cr3t") {
		t.Errorf("log output leaked token: %s", out)
	}
	if !strings.Contains(out, "/rate_limit") {
		t.Errorf("log output should mention the path, got: %s", out)
	}
}

func TestRedact(t *testing.T) {
	h := http.Header{
		"Authorization": {"Bearer token"},
		"Cookie":        {"session=1"},
		"Accept":        {"application/json"},
	}
	r := Redact(h)

	if r.Get("Authorization") != Redacted {
		t.Errorf("Authorization = %q, want %q", r.Get("Authorization"), Redacted)
	}
	if r.Get("Cookie") != Redacted {
		t.Errorf("Cookie = %q, want %q", r.Get("Cookie"), Redacted)
	}
	if r.Get("Accept") != "application/json" {
		t.Errorf("Accept = %q, should be untouched", r.Get("Accept"))
	}
	if h.Get("Authorization") != "Bearer token" {
		t.Error("Redact must not modify its input")
	}
	if _, ok := r["Proxy-Authorization"]; ok {
		t.Error("Redact should not add absent headers")
	}
}

func TestNewLimiter(t *testing.T) {
	if NewLimiter(0) != nil {
		t.Error("NewLimiter(0) should disable pacing")
	}
	if NewLimiter(-1) != nil {
		t.Error("NewLimiter(-1) should disable pacing")
	}
	if l := NewLimiter(2.5); l == nil || float64(l.Limit()) != 2.5 {
		t.Errorf("NewLimiter(2.5) = %v, want limit 2.5", l)
	}
}
