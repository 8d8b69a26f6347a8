package cues

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONCue is the machine readable projection of a thumbnail.
type JSONCue struct {
	StartTime int    `json:"startTime"`
	EndTime   int    `json:"endTime"`
	Text      string `json:"text"`
}

func JSONCues(thumbs []Thumbnail, l Layout) []JSONCue {
	out := make([]JSONCue, 0, len(thumbs))
	for _, t := range thumbs {
		out = append(out, JSONCue{
			StartTime: t.Start,
			EndTime:   t.End,
			Text:      ImageRef(t, l),
		})
	}
	return out
}

// WriteJSON writes the cues as a compact JSON array without a trailing
// newline.
func WriteJSON(w io.Writer, thumbs []Thumbnail, l Layout) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(JSONCues(thumbs, l)); err != nil {
		return err
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// ReadJSON decodes a cue array written by WriteJSON.
func ReadJSON(r io.Reader) ([]JSONCue, error) {
	out := []JSONCue{}
	if err := json.NewDecoder(r).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
