package secret

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestEnvProvider_Resolve(t *testing.T) {
	t.Setenv("SECRET_TEST_VALUE", "hunter2")

	p := EnvProvider{}
	if got := p.Name(); got != "env" {
		t.Errorf("Name() = %q, want %q", got, "env")
	}

	got, err := p.Resolve(context.Background(), "SECRET_TEST_VALUE")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "hunter2" {
		t.Errorf("Resolve() = %q, want %q", got, "hunter2")
	}
}

func TestEnvProvider_Resolve_Unset(t *testing.T) {
	if _, err := (EnvProvider{}).Resolve(context.Background(), "SECRET_TEST_DOES_NOT_EXIST"); err == nil {
		t.Error("Resolve() error = nil, want error for unset variable")
	}
}

func TestEnvProvider_Resolve_Empty(t *testing.T) {
	t.Setenv("SECRET_TEST_EMPTY", "")

	if _, err := (EnvProvider{}).Resolve(context.Background(), "SECRET_TEST_EMPTY"); err == nil {
		t.Error("Resolve() error = nil, want error for empty variable")
	}
}

func TestFileProvider_Resolve(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "token")
	if err := os.WriteFile(path, []byte("  s3cr3t\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p := FileProvider{}
	if got := p.Name(); got != "file" {
		t.Errorf("Name() = %q, want %q", got, "file")
	}

	got, err := p.Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if got != "s3cr3t" {
		t.Errorf("Resolve() = %q, want %q", got, "s3cr3t")
	}
}

func TestFileProvider_Resolve_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope")
	if _, err := (FileProvider{}).Resolve(context.Background(), path); err == nil {
		t.Error("Resolve() error = nil, want error for missing file")
	}
}

func TestFileProvider_Resolve_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	if err := os.WriteFile(path, []byte("  \n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := (FileProvider{}).Resolve(context.Background(), path); err == nil {
		t.Error("Resolve() error = nil, want error for empty file")
	}
}
