package bridge_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"converso/internal/bridge"
	"converso/internal/protocol"
	"converso/internal/services"
)

func TestReadRequestParsesOneLine(t *testing.T) {
	in := strings.NewReader(`{"command":"info","args":{"url":"https://x"},"auth_token":"Bearer t","device_token":"dev-1","timeout":30}` + "\n")
	var out bytes.Buffer
	b := bridge.New(in, &out, nil)

	req, err := b.ReadRequest()
	if err != nil {
		t.Fatalf("ReadRequest failed: %v", err)
	}
	if req.Command != "info" {
		t.Fatalf("unexpected command: %q", req.Command)
	}
	if req.Args["url"] != "https://x" {
		t.Fatalf("unexpected args: %v", req.Args)
	}
	if req.Timeout != 30 {
		t.Fatalf("unexpected timeout: %d", req.Timeout)
	}
	if b.DeviceToken() != "dev-1" {
		t.Fatalf("unexpected device token: %q", b.DeviceToken())
	}
}

func TestReadRequestEmptyInput(t *testing.T) {
	b := bridge.New(strings.NewReader(""), &bytes.Buffer{}, nil)
	_, err := b.ReadRequest()
	if err == nil {
		t.Fatal("expected error for empty input")
	}
	if !errors.Is(err, services.ErrProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
	if services.Message(err) != "no input received" {
		t.Fatalf("unexpected message: %q", services.Message(err))
	}
}

func TestReadRequestMalformedJSON(t *testing.T) {
	b := bridge.New(strings.NewReader("{not json\n"), &bytes.Buffer{}, nil)
	_, err := b.ReadRequest()
	if !errors.Is(err, services.ErrProtocol) {
		t.Fatalf("expected protocol error, got %v", err)
	}
}

func TestValidateAuth(t *testing.T) {
	cases := []struct {
		name    string
		token   string
		wantErr string
	}{
		{"missing", "", "Authentication required"},
		{"wrong shape", "tok-123", "Invalid token format"},
		{"empty bearer", "Bearer ", "Invalid token format"},
		{"valid", "Bearer tok-123", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			line := `{"command":"info","auth_token":` + quote(tc.token) + `,"timeout":30}` + "\n"
			b := bridge.New(strings.NewReader(line), &bytes.Buffer{}, nil)
			if _, err := b.ReadRequest(); err != nil {
				t.Fatalf("ReadRequest failed: %v", err)
			}
			err := b.ValidateAuth()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("expected valid token, got %v", err)
				}
				return
			}
			if err == nil || !errors.Is(err, services.ErrAuth) {
				t.Fatalf("expected auth error, got %v", err)
			}
			if services.Message(err) != tc.wantErr {
				t.Fatalf("unexpected message: got %q want %q", services.Message(err), tc.wantErr)
			}
		})
	}
}

func TestSendProgressThenError(t *testing.T) {
	var out bytes.Buffer
	b := bridge.New(strings.NewReader(""), &out, nil)

	if err := b.SendProgress("downloading", 50, 100, "halfway"); err != nil {
		t.Fatalf("SendProgress failed: %v", err)
	}
	if err := b.SendError("boom"); err != nil {
		t.Fatalf("SendError failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d: %q", len(lines), out.String())
	}

	first, err := protocol.DecodeResponse([]byte(lines[0]))
	if err != nil {
		t.Fatalf("decode progress line: %v", err)
	}
	if first.Terminal() {
		t.Fatal("progress line must not be terminal")
	}
	if !first.Success || first.Progress.Stage != "downloading" || first.Progress.Percentage != 50 {
		t.Fatalf("unexpected progress line: %+v", first)
	}

	second, err := protocol.DecodeResponse([]byte(lines[1]))
	if err != nil {
		t.Fatalf("decode error line: %v", err)
	}
	if !second.Terminal() || second.Success || second.Error != "boom" {
		t.Fatalf("unexpected terminal line: %+v", second)
	}
}

func quote(s string) string {
	return `"` + s + `"`
}
