package format

import (
	"sort"
	"strings"
)

// Descriptor is one stream variant reported by the retrieval engine. The
// engine marks an absent codec with the sentinel "none" or an empty field.
type Descriptor struct {
	FormatID       string  `json:"format_id"`
	Ext            string  `json:"ext"`
	VCodec         string  `json:"vcodec,omitempty"`
	ACodec         string  `json:"acodec,omitempty"`
	Height         int     `json:"height,omitempty"`
	FPS            float64 `json:"fps,omitempty"`
	TBR            float64 `json:"tbr,omitempty"`
	ABR            float64 `json:"abr,omitempty"`
	ASR            int     `json:"asr,omitempty"`
	Filesize       int64   `json:"filesize,omitempty"`
	FilesizeApprox int64   `json:"filesize_approx,omitempty"`
	FormatNote     string  `json:"format_note,omitempty"`
}

// Kind names a sort family for Sort.
type Kind string

const (
	KindAudio       Kind = "audio"
	KindVideo       Kind = "video"
	KindProgressive Kind = "progressive"
)

// codecLadder orders video codec families from most to least preferred.
// Matching is a case-insensitive prefix test against the codec string.
var codecLadder = []string{"av01", "vp9", "avc1", "h264"}

// HasAudio reports whether the descriptor carries a real audio codec.
func (d Descriptor) HasAudio() bool {
	return codecPresent(d.ACodec)
}

// HasVideo reports whether the descriptor carries a real video codec.
func (d Descriptor) HasVideo() bool {
	return codecPresent(d.VCodec)
}

// Size returns the exact filesize when known, falling back to the engine's
// estimate, and 0 when neither is available.
func (d Descriptor) Size() int64 {
	if d.Filesize > 0 {
		return d.Filesize
	}
	return d.FilesizeApprox
}

func codecPresent(codec string) bool {
	codec = strings.TrimSpace(codec)
	return codec != "" && !strings.EqualFold(codec, "none")
}

// Categorize partitions descriptors by codec presence. Descriptors with
// neither codec are dropped. Relative input order is preserved within each
// output slice.
func Categorize(formats []Descriptor) (audioOnly, videoOnly, progressive []Descriptor) {
	for _, f := range formats {
		switch {
		case f.HasAudio() && !f.HasVideo():
			audioOnly = append(audioOnly, f)
		case f.HasVideo() && !f.HasAudio():
			videoOnly = append(videoOnly, f)
		case f.HasVideo() && f.HasAudio():
			progressive = append(progressive, f)
		}
	}
	return audioOnly, videoOnly, progressive
}

// Sort returns a copy of formats in descending quality order for the given
// kind. The sort is stable: descriptors with equal keys keep their relative
// input order, which downstream index-based selection relies on.
func Sort(formats []Descriptor, kind Kind) []Descriptor {
	sorted := append([]Descriptor(nil), formats...)
	less := videoLess
	if kind == KindAudio {
		less = audioLess
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		// Descending order: i sorts first when it outranks j.
		return less(sorted[j], sorted[i])
	})
	return sorted
}

// audioLess ranks by (bitrate, sample rate).
func audioLess(a, b Descriptor) bool {
	if a.ABR != b.ABR {
		return a.ABR < b.ABR
	}
	return a.ASR < b.ASR
}

// videoLess ranks by (height, fps, total bitrate).
func videoLess(a, b Descriptor) bool {
	if a.Height != b.Height {
		return a.Height < b.Height
	}
	if a.FPS != b.FPS {
		return a.FPS < b.FPS
	}
	return a.TBR < b.TBR
}

// BestVideo selects the strongest video-only descriptor, preferring codec
// families earlier in the ladder over raw quality. Within the first ladder
// tier that has candidates, the maximum by the video sort key wins; if no
// tier matches, the overall maximum is returned. Returns nil when there are
// no video-only descriptors.
func BestVideo(formats []Descriptor) *Descriptor {
	_, videoOnly, _ := Categorize(formats)
	if len(videoOnly) == 0 {
		return nil
	}
	for _, codec := range codecLadder {
		var candidates []Descriptor
		for _, f := range videoOnly {
			if strings.HasPrefix(strings.ToLower(f.VCodec), codec) {
				candidates = append(candidates, f)
			}
		}
		if len(candidates) > 0 {
			return maxBy(candidates, videoLess)
		}
	}
	return maxBy(videoOnly, videoLess)
}

// BestAudio selects the audio-only descriptor with the highest
// (bitrate, sample rate). Returns nil when there are none.
func BestAudio(formats []Descriptor) *Descriptor {
	audioOnly, _, _ := Categorize(formats)
	if len(audioOnly) == 0 {
		return nil
	}
	return maxBy(audioOnly, audioLess)
}

// maxBy returns the first maximal element, so earlier descriptors win ties.
func maxBy(formats []Descriptor, less func(a, b Descriptor) bool) *Descriptor {
	best := formats[0]
	for _, f := range formats[1:] {
		if less(best, f) {
			best = f
		}
	}
	return &best
}

// SuggestContainer proposes an output container for the descriptor. Audio
// suggestions map codec hints onto opus, m4a, or mp3; video suggestions pass
// through known containers and default to mp4.
func SuggestContainer(d Descriptor, forAudio bool) string {
	ext := strings.ToLower(strings.TrimSpace(d.Ext))
	if forAudio {
		acodec := strings.ToLower(strings.TrimSpace(d.ACodec))
		if strings.Contains(acodec, "opus") || ext == "webm" {
			return "opus"
		}
		if ext == "m4a" || strings.Contains(acodec, "mp4a") {
			return "m4a"
		}
		return "mp3"
	}
	switch ext {
	case "mp4", "webm", "mkv":
		return ext
	}
	return "mp4"
}
