package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir, unavailable
// on this toolchain).
func chdir(t *testing.T, dir string) {
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(old)
	})
}

func TestLoadConfigMissingFileIsZero(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", dir)

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Strict || cfg.MaxArenaBytes != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigReadsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	content := "strict: true\nmaxArenaBytes: 4096\n"
	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if !cfg.Strict {
		t.Error("strict not read from config")
	}
	if cfg.MaxArenaBytes != 4096 {
		t.Errorf("maxArenaBytes = %d, want 4096", cfg.MaxArenaBytes)
	}
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("HOME", t.TempDir())

	if err := os.WriteFile(filepath.Join(dir, configFileName), []byte("strict: [not a bool"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := loadConfig(); err == nil {
		t.Fatal("expected an error for malformed YAML")
	}
}

func TestExitCodes(t *testing.T) {
	if got := ExitCode(&exitError{code: 2, msg: "parse"}); got != 2 {
		t.Fatalf("ExitCode = %d, want 2", got)
	}
	if got := ExitCode(os.ErrNotExist); got != 1 {
		t.Fatalf("ExitCode for a plain error = %d, want 1", got)
	}
}
