package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestFindEnvFile_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, "custom.env")
	writeFile(t, envPath, "A=1\n")

	found, err := FindEnvFile(tmpDir, envPath)
	if err != nil {
		t.Fatalf("FindEnvFile failed: %v", err)
	}
	if found != envPath {
		t.Errorf("expected %q, got %q", envPath, found)
	}

	_, err = FindEnvFile(tmpDir, filepath.Join(tmpDir, "nonexistent"))
	if err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestFindEnvFile_TraverseUp(t *testing.T) {
	tmpDir := t.TempDir()
	subdir := filepath.Join(tmpDir, "a", "b")
	if err := os.MkdirAll(subdir, 0o700); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	envPath := filepath.Join(tmpDir, ".env")
	writeFile(t, envPath, "A=1\n")

	found, err := FindEnvFile(subdir, "")
	if err != nil {
		t.Fatalf("FindEnvFile failed: %v", err)
	}
	if found != envPath {
		t.Errorf("expected %q, got %q", envPath, found)
	}
}

func TestFindEnvFile_AboveCheckout(t *testing.T) {
	tmpDir := t.TempDir()
	projectDir := filepath.Join(tmpDir, "project")
	if err := os.MkdirAll(filepath.Join(projectDir, ".git"), 0o700); err != nil {
		t.Fatalf("failed to create directories: %v", err)
	}
	envPath := filepath.Join(tmpDir, ".env")
	writeFile(t, envPath, "A=1\n")

	found, err := FindEnvFile(projectDir, "")
	if err != nil {
		t.Fatalf("FindEnvFile failed: %v", err)
	}
	if found != envPath {
		t.Errorf("expected %q, got %q", envPath, found)
	}
}

func TestFindEnvFile_NoHome(t *testing.T) {
	t.Setenv("HOME", "")
	tmpDir := t.TempDir()
	envPath := filepath.Join(tmpDir, ".env")
	writeFile(t, envPath, "A=1\n")

	found, err := FindEnvFile(tmpDir, "")
	if err != nil {
		t.Fatalf("FindEnvFile failed without HOME: %v", err)
	}
	if found != envPath {
		t.Errorf("expected %q, got %q", envPath, found)
	}
}

func TestReadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	writeFile(t, path, "# comment\nGOOGLE_API_KEY=your_google_api_key_here\nOPENAI_API_KEY=\"sk-test\"\nLLMPROBE_NEVER_EXPORTED=1\n")

	env, err := ReadEnvFile(path)
	if err != nil {
		t.Fatalf("ReadEnvFile failed: %v", err)
	}

	cfg := Load(env)
	if cfg.Gemini.Credential.Configured() {
		t.Error("placeholder from .env should not count as configured")
	}
	if cfg.OpenAI.Credential.Value != "sk-test" {
		t.Errorf("OPENAI_API_KEY = %q, want %q", cfg.OpenAI.Credential.Value, "sk-test")
	}
	if _, ok := os.LookupEnv("LLMPROBE_NEVER_EXPORTED"); ok {
		t.Error("ReadEnvFile must not touch the process environment")
	}
}

func TestReadEnvFile_Missing(t *testing.T) {
	if _, err := ReadEnvFile(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("expected error for missing file")
	}
}
