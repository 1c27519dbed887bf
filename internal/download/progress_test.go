package download

import (
	"testing"

	"converso/internal/services/ytdlp"
)

type recordedEvent struct {
	stage   string
	current int64
	total   int64
	message string
}

type recordingSink struct {
	events []recordedEvent
}

func (r *recordingSink) SendProgress(stage string, current, total int64, message string) error {
	r.events = append(r.events, recordedEvent{stage, current, total, message})
	return nil
}

func TestTranslatorKnownTotal(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 1024, TotalBytes: 4096})
	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 2048, TotalBytes: 4096})

	if len(sink.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(sink.events))
	}
	first := sink.events[0]
	if first.stage != "downloading" || first.current != 1024 || first.total != 4096 {
		t.Fatalf("unexpected first event: %+v", first)
	}
}

func TestTranslatorPrefersExactTotalOverEstimate(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 10, TotalBytes: 0, TotalBytesEstimate: 1000})
	if sink.events[0].total != 1000 {
		t.Fatalf("expected estimated total 1000, got %d", sink.events[0].total)
	}
}

func TestTranslatorUnknownTotalReportsZero(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 500})
	if len(sink.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(sink.events))
	}
	if sink.events[0].total != 0 || sink.events[0].current != 500 {
		t.Fatalf("unexpected event: %+v", sink.events[0])
	}
}

func TestTranslatorFinishedForcesCompletion(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 10, TotalBytes: 100})
	hook(ytdlp.ProgressUpdate{Status: "finished"})

	last := sink.events[len(sink.events)-1]
	if last.current != 100 || last.total != 100 {
		t.Fatalf("expected forced 100/100, got %+v", last)
	}
}

func TestTranslatorIgnoresOtherStatuses(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "error"})
	hook(ytdlp.ProgressUpdate{Status: ""})

	if len(sink.events) != 0 {
		t.Fatalf("expected no events, got %+v", sink.events)
	}
}

func TestTranslatorSkipsRepeatedPercent(t *testing.T) {
	sink := &recordingSink{}
	hook := NewTranslator(sink).Hook()

	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 1000, TotalBytes: 100000})
	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 1001, TotalBytes: 100000})
	hook(ytdlp.ProgressUpdate{Status: "downloading", DownloadedBytes: 2000, TotalBytes: 100000})

	if len(sink.events) != 2 {
		t.Fatalf("expected percent dedup to drop the middle event, got %d", len(sink.events))
	}
}
