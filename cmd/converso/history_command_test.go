package main

import (
	"context"
	"testing"

	"converso/internal/config"
	"converso/internal/history"
)

func TestHistoryCommandEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No downloads recorded")
}

func TestHistoryCommandListsAndClears(t *testing.T) {
	env := setupCLITestEnv(t)

	cfg, _, _, err := config.Load(env.configPath)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	store, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{
		URL:      "https://example.com/watch?v=abc",
		Title:    "Example Clip",
		Mode:     "merge",
		FormatID: "137+251",
		FileSize: "10.0 MB",
		Success:  true,
	}); err != nil {
		t.Fatalf("record entry: %v", err)
	}
	store.Close()

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "Example Clip")
	requireContains(t, out, "merge")
	requireContains(t, out, "ok")

	out, _, err = runCLI(t, []string{"history", "clear"}, env.configPath)
	if err != nil {
		t.Fatalf("history clear: %v", err)
	}
	requireContains(t, out, "Removed 1 entries")

	out, _, err = runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history after clear: %v", err)
	}
	requireContains(t, out, "No downloads recorded")
}
