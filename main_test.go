package main

import (
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/olivier-w/folio/internal/config"
)

func restoreLogger(t *testing.T) {
	t.Helper()
	out, prefix, flags := log.Writer(), log.Prefix(), log.Flags()
	t.Cleanup(func() {
		log.SetOutput(out)
		log.SetPrefix(prefix)
		log.SetFlags(flags)
	})
}

func TestSetupLoggingReadsDebugFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvDebug, "")
	os.Unsetenv(config.EnvDebug)
	restoreLogger(t)

	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(config.EnvDebug+"=1\n"), 0o644); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	f, err := setupLogging()
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	if f == nil {
		t.Fatal("expected a debug log file")
	}
	log.Print("hello")
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, debugLogFile))
	if err != nil {
		t.Fatalf("read debug log: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected the log line in the debug file")
	}
}

func TestSetupLoggingDiscardsWithoutDebug(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv(config.EnvDebug, "")
	restoreLogger(t)

	f, err := setupLogging()
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	if f != nil {
		t.Fatal("expected no log file without debug")
	}
	if _, err := os.Stat(filepath.Join(dir, debugLogFile)); !os.IsNotExist(err) {
		t.Fatalf("expected no debug log, stat error = %v", err)
	}
}
