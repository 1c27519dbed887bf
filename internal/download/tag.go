package download

import (
	"strings"

	"github.com/bogem/id3v2"

	"converso/internal/services/ytdlp"
)

// tagAudioFile writes probed metadata into an extracted mp3. Best effort;
// the download result does not depend on it.
func tagAudioFile(path string, info *ytdlp.Info) error {
	tag, err := id3v2.Open(path, id3v2.Options{Parse: true})
	if err != nil {
		return err
	}
	defer tag.Close()

	if title := strings.TrimSpace(info.Title); title != "" {
		tag.SetTitle(title)
	}
	if uploader := strings.TrimSpace(info.Uploader); uploader != "" {
		tag.SetArtist(uploader)
	}
	if date := strings.TrimSpace(info.UploadDate); len(date) >= 4 {
		tag.AddTextFrame("TYER", id3v2.EncodingUTF8, date[:4])
	}
	return tag.Save()
}
