package metadata

import (
	"github.com/jaym/spritegen/cues"
)

type VideoMetadata struct {
	// Name identifies the video, usually the base name of the input file.
	Name string `json:"name"`
	// Duration is the probed duration in seconds.
	Duration int             `json:"duration"`
	VTTKey   string          `json:"vtt_key"`
	JSONKey  string          `json:"json_key"`
	Thumbs   []ThumbMetadata `json:"thumbs"`
}

type ThumbMetadata struct {
	File  int    `json:"file"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Text  string `json:"text"`
}

// NewVideoMetadata collects the cues of one pipeline run.
func NewVideoMetadata(name string, duration int, thumbs []cues.Thumbnail, l cues.Layout) VideoMetadata {
	meta := VideoMetadata{
		Name:     name,
		Duration: duration,
		Thumbs:   make([]ThumbMetadata, 0, len(thumbs)),
	}
	for _, t := range thumbs {
		meta.Thumbs = append(meta.Thumbs, ThumbMetadata{
			File:  t.File,
			Start: t.Start,
			End:   t.End,
			X:     t.StartX,
			Y:     t.StartY,
			Text:  cues.ImageRef(t, l),
		})
	}
	return meta
}
