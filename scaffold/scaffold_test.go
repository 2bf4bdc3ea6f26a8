package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	created, err := Write(dir, Data{
		SiteName:      "Mi Sitio",
		SiteURL:       "https://example.com",
		SessionSecret: "s3cret",
		Repository:    "my-repo",
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 files, got %v", created)
	}

	cfg, err := os.ReadFile(filepath.Join(dir, "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{`name = "Mi Sitio"`, `session_secret = "s3cret"`, `repository = "my-repo"`} {
		if !strings.Contains(string(cfg), want) {
			t.Fatalf("expected %q in config.toml", want)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, ".env.example")); err != nil {
		t.Fatalf("expected .env.example: %v", err)
	}
}

func TestWriteRefusesToOverwrite(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Write(dir, Data{}); err == nil {
		t.Fatal("expected an error for an existing file")
	}
	got, _ := os.ReadFile(filepath.Join(dir, "config.toml"))
	if string(got) != "keep" {
		t.Fatalf("existing file was modified: %q", got)
	}
}
