package cues

import (
	"fmt"
	"io"
	"time"

	"github.com/asticode/go-astisub"
)

// ReadVTT parses a WebVTT cue file back into cues.
func ReadVTT(r io.Reader) ([]JSONCue, error) {
	subs, err := astisub.ReadFromWebVTT(r)
	if err != nil {
		return nil, fmt.Errorf("error parsing webvtt: %w", err)
	}

	out := make([]JSONCue, 0, len(subs.Items))
	for _, item := range subs.Items {
		out = append(out, JSONCue{
			StartTime: int(item.StartAt / time.Second),
			EndTime:   int(item.EndAt / time.Second),
			Text:      item.String(),
		})
	}
	return out, nil
}

// Mismatch describes the first difference between two cue lists.
type Mismatch struct {
	Index int
	Left  *JSONCue
	Right *JSONCue
}

func (m *Mismatch) Error() string {
	switch {
	case m.Left == nil:
		return fmt.Sprintf("cue %d: missing on the left side", m.Index)
	case m.Right == nil:
		return fmt.Sprintf("cue %d: missing on the right side", m.Index)
	}
	return fmt.Sprintf("cue %d: %+v != %+v", m.Index, *m.Left, *m.Right)
}

// Compare checks that both lists hold the same cues in the same order.
func Compare(left []JSONCue, right []JSONCue) error {
	n := max(len(left), len(right))
	for i := 0; i < n; i++ {
		m := &Mismatch{Index: i}
		if i < len(left) {
			m.Left = &left[i]
		}
		if i < len(right) {
			m.Right = &right[i]
		}
		if m.Left == nil || m.Right == nil || *m.Left != *m.Right {
			return m
		}
	}
	return nil
}
