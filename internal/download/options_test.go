package download

import "testing"

func TestClampConcurrency(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{0, 1},
		{1, 1},
		{16, 16},
		{100, 16},
		{-3, 1},
		{8, 8},
	}
	for _, tc := range cases {
		if got := ClampConcurrency(tc.in); got != tc.want {
			t.Fatalf("ClampConcurrency(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestAudioOptionsSelector(t *testing.T) {
	opts := AudioOptions("140", "m4a", "/out", Tuning{Concurrency: 4, Retries: 10})
	if opts.Format != "140/bestaudio/best" {
		t.Fatalf("unexpected selector: %q", opts.Format)
	}
	if !opts.ExtractAudio || opts.AudioFormat != "m4a" {
		t.Fatalf("expected audio extraction into m4a, got %+v", opts)
	}
	if opts.MergeOutputFormat != "" || opts.RemuxVideo != "" {
		t.Fatalf("unexpected video options in audio build: %+v", opts)
	}
}

func TestVideoOptionsSelector(t *testing.T) {
	opts := VideoOptions("137", "mkv", "/out", Tuning{Concurrency: 4})
	if opts.Format != "137/bestvideo/best" {
		t.Fatalf("unexpected selector: %q", opts.Format)
	}
	if opts.RemuxVideo != "mkv" {
		t.Fatalf("expected remux to mkv, got %q", opts.RemuxVideo)
	}

	noRemux := VideoOptions("137", "", "/out", Tuning{})
	if noRemux.RemuxVideo != "" {
		t.Fatalf("expected no remux step, got %q", noRemux.RemuxVideo)
	}
}

func TestMergeOptionsSelector(t *testing.T) {
	opts := MergeOptions("137", "140", "mp4", "/out", Tuning{Concurrency: 100})
	if opts.Format != "137+140/bestvideo+bestaudio/best" {
		t.Fatalf("unexpected selector: %q", opts.Format)
	}
	if opts.MergeOutputFormat != "mp4" {
		t.Fatalf("expected merge container mp4, got %q", opts.MergeOutputFormat)
	}
	if opts.ConcurrentFragments != 16 {
		t.Fatalf("expected clamped concurrency 16, got %d", opts.ConcurrentFragments)
	}
}

func TestBaseOptionsShared(t *testing.T) {
	tuning := Tuning{Concurrency: 10, Retries: 10, FragmentRetries: 10, SocketTimeoutSecs: 30}
	for _, opts := range []struct {
		name string
		got  bool
	}{
		{"audio", AudioOptions("1", "mp3", "/out", tuning).Continue},
		{"video", VideoOptions("1", "", "/out", tuning).Continue},
		{"merge", MergeOptions("1", "2", "mp4", "/out", tuning).Continue},
	} {
		if !opts.got {
			t.Fatalf("%s options missing resumable transfer", opts.name)
		}
	}

	audio := AudioOptions("1", "mp3", "/out", tuning)
	if !audio.RestrictFilenames || !audio.WindowsFilenames {
		t.Fatalf("expected filename sanitization, got %+v", audio)
	}
	if audio.OutputTemplate != OutputTemplate || audio.OutputDir != "/out" {
		t.Fatalf("unexpected output naming: %+v", audio)
	}
	if audio.Retries != 10 || audio.FragmentRetries != 10 || audio.SocketTimeoutSecs != 30 {
		t.Fatalf("unexpected retry bounds: %+v", audio)
	}
}
