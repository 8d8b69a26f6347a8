package cues

import (
	"io"
	"path"
	"strings"
	"time"
)

const vttHeader = "WEBVTT"

// Timestamp formats a second count as HH:MM:SS.mmm. The value is read as an
// offset from the Unix epoch, so hours wrap after 24.
func Timestamp(seconds int) string {
	return time.Unix(int64(seconds), 0).UTC().Format("15:04:05.000")
}

// VTT renders the thumbnails as a WebVTT document.
func VTT(thumbs []Thumbnail, l Layout) string {
	var b strings.Builder
	b.WriteString(vttHeader)
	for _, t := range thumbs {
		b.WriteString("\n\n")
		b.WriteString(Timestamp(t.Start))
		b.WriteString(" --> ")
		b.WriteString(Timestamp(t.End))
		b.WriteString("\n")
		b.WriteString(ImageRef(t, l))
	}
	return b.String()
}

// WriteVTT writes the WebVTT document to w.
func WriteVTT(w io.Writer, thumbs []Thumbnail, l Layout) error {
	_, err := io.WriteString(w, VTT(thumbs, l))
	return err
}

// RebaseImageRefs points every sprite reference of a WebVTT document at dir,
// keeping the sheet name and fragment. Other lines are left untouched.
func RebaseImageRefs(vtt string, dir string) string {
	lines := strings.Split(vtt, "\n")
	for i, line := range lines {
		hash := strings.Index(line, "#xywh=")
		if hash < 0 {
			continue
		}
		lines[i] = path.Join(dir, path.Base(line[:hash])) + line[hash:]
	}
	return strings.Join(lines, "\n")
}
