package download

import (
	"fmt"

	"converso/internal/fileutil"
	"converso/internal/services/ytdlp"
)

// ProgressSink receives translated progress events. bridge.Bridge satisfies
// it on the worker side.
type ProgressSink interface {
	SendProgress(stage string, current, total int64, message string) error
}

// Translator adapts engine progress callbacks into structured events on a
// sink. State is minimal: the last emitted whole percent, used to skip
// redundant lines for byte-level callback chatter.
type Translator struct {
	sink        ProgressSink
	lastPercent int64
	emitted     bool
}

// NewTranslator returns a Translator writing to sink.
func NewTranslator(sink ProgressSink) *Translator {
	return &Translator{sink: sink, lastPercent: -1}
}

// Hook returns the callback handed to the engine. It runs synchronously on
// the engine call's goroutine and never blocks on acknowledgment.
func (t *Translator) Hook() func(ytdlp.ProgressUpdate) {
	return func(update ytdlp.ProgressUpdate) {
		switch update.Status {
		case "downloading":
			downloaded := int64(update.DownloadedBytes)
			total := int64(update.TotalBytes)
			if total <= 0 {
				total = int64(update.TotalBytesEstimate)
			}
			if total > 0 {
				percent := downloaded * 100 / total
				if t.emitted && percent == t.lastPercent {
					return
				}
				t.lastPercent = percent
				t.emitted = true
				message := fmt.Sprintf("%s of %s", fileutil.FormatSize(downloaded), fileutil.FormatSize(total))
				_ = t.sink.SendProgress("downloading", downloaded, total, message)
				return
			}
			// Unknown total: report bytes with percentage pinned at zero.
			t.lastPercent = 0
			t.emitted = true
			_ = t.sink.SendProgress("downloading", downloaded, 0, fileutil.FormatSize(downloaded)+" downloaded")
		case "finished":
			t.lastPercent = 100
			t.emitted = true
			_ = t.sink.SendProgress("downloading", 100, 100, "Download finished")
		}
	}
}
