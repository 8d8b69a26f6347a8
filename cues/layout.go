// Package cues computes the sprite sheet layout of scrubbing thumbnails and
// serializes it as WebVTT and JSON cue files.
package cues

import (
	"errors"
	"fmt"
)

// Layout describes how thumbnails are sampled and tiled into sprite sheets.
type Layout struct {
	// ThumbWidth is the width of a single thumbnail in pixels
	ThumbWidth int
	// ThumbHeight is the height of a single thumbnail in pixels
	ThumbHeight int
	// Interval is the time between two thumbnails in seconds
	Interval int
	// Rows is the number of thumbnail rows in a sprite sheet
	Rows int
	// Cols is the number of thumbnail columns in a sprite sheet
	Cols int
	// SpriteDir is the directory prefix used in image references
	SpriteDir string
}

var ErrInvalidLayout = errors.New("invalid layout")

// Validate reports whether every dimension of the layout is positive.
func (l Layout) Validate() error {
	for _, f := range []struct {
		name  string
		value int
	}{
		{"thumb width", l.ThumbWidth},
		{"thumb height", l.ThumbHeight},
		{"interval", l.Interval},
		{"rows", l.Rows},
		{"cols", l.Cols},
	} {
		if f.value <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidLayout, f.name, f.value)
		}
	}
	return nil
}

// PerSprite is the number of thumbnails a full sprite sheet holds.
func (l Layout) PerSprite() int {
	return l.Rows * l.Cols
}

// SheetSize is the pixel size of a full sprite sheet.
func (l Layout) SheetSize() (width int, height int) {
	return l.Cols * l.ThumbWidth, l.Rows * l.ThumbHeight
}

// ThumbnailCount returns how many whole intervals fit in duration.
func ThumbnailCount(duration int, interval int) int {
	if duration <= 0 || interval <= 0 {
		return 0
	}
	return duration / interval
}

// SpriteCount returns how many sprite sheets are needed for count thumbnails.
func SpriteCount(count int, perSprite int) int {
	if count <= 0 || perSprite <= 0 {
		return 0
	}
	return (count + perSprite - 1) / perSprite
}
