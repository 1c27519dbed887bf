package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStatusCommandReportsStubbedBinaries(t *testing.T) {
	env := setupCLITestEnv(t)

	binDir := filepath.Join(env.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	writeStubBinary(t, binDir, "yt-dlp")
	writeStubBinary(t, binDir, "ffmpeg")
	writeStubBinary(t, binDir, "converso-worker")
	t.Setenv("PATH", binDir)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	requireContains(t, out, "yt-dlp")
	requireContains(t, out, "Worker")
	requireContains(t, out, "found")
	requireContains(t, out, "FFmpeg resolved at")
	requireContains(t, out, env.outputDir)
}

func TestStatusCommandFailsWhenWorkerMissing(t *testing.T) {
	env := setupCLITestEnv(t)

	binDir := filepath.Join(env.baseDir, "bin")
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		t.Fatalf("mkdir bin: %v", err)
	}
	writeStubBinary(t, binDir, "yt-dlp")
	t.Setenv("PATH", binDir)

	out, _, err := runCLI(t, []string{"status"}, env.configPath)
	if err == nil {
		t.Fatal("expected error when required binaries are missing")
	}
	requireContains(t, out, "not found")
}
