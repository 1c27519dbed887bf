// Package ytdlp wraps the external yt-dlp binary behind a narrow
// options-plus-callback client. Downloads stream machine-readable progress
// lines that are surfaced through a callback; metadata probes parse the
// engine's JSON dump.
package ytdlp
