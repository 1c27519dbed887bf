package services

import (
	"errors"
	"fmt"
	"testing"
)

func TestWrapTagsMarker(t *testing.T) {
	err := Wrap(ErrValidation, "", "URL is required", nil)
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation marker, got %v", err)
	}
	if Message(err) != "URL is required" {
		t.Fatalf("unexpected message: %q", Message(err))
	}
}

func TestWrapIncludesCause(t *testing.T) {
	cause := fmt.Errorf("exit status 1")
	err := Wrap(ErrEngine, "download", "yt-dlp failed", cause)
	if !errors.Is(err, ErrEngine) {
		t.Fatalf("expected engine marker, got %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected wrapped cause to survive")
	}
	if Message(err) != "download: yt-dlp failed: exit status 1" {
		t.Fatalf("unexpected message: %q", Message(err))
	}
}

func TestWrapNilMarkerDefaultsToEngine(t *testing.T) {
	err := Wrap(nil, "", "boom", nil)
	if !errors.Is(err, ErrEngine) {
		t.Fatalf("expected engine default, got %v", err)
	}
}

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		err   error
		fatal bool
	}{
		{Wrap(ErrProtocol, "", "no input received", nil), true},
		{Wrap(ErrAuth, "", "Authentication required", nil), true},
		{Wrap(ErrTimeout, "", "Module execution timed out", nil), true},
		{Wrap(ErrValidation, "", "URL is required", nil), false},
		{Wrap(ErrEngine, "", "download failed", nil), false},
		{Wrap(ErrExternalTool, "", "FFmpeg is required", nil), false},
		{Wrap(ErrUnknownCommand, "", "Unknown command: bogus", nil), false},
	}
	for _, tc := range cases {
		if Fatal(tc.err) != tc.fatal {
			t.Fatalf("Fatal(%v) = %v, want %v", tc.err, !tc.fatal, tc.fatal)
		}
	}
}

func TestMessagePassthrough(t *testing.T) {
	if Message(nil) != "" {
		t.Fatal("expected empty message for nil error")
	}
	plain := errors.New("plain failure")
	if Message(plain) != "plain failure" {
		t.Fatalf("unexpected message: %q", Message(plain))
	}
}
