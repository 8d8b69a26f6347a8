package cues

import (
	"fmt"
	"path"
	"strings"
)

// Thumbnail is the scrubbing metadata of one sampled frame.
type Thumbnail struct {
	// Start of the time range in seconds
	Start int `json:"start"`
	// End of the time range in seconds
	End int `json:"end"`
	// File is the 1-based index of the sprite sheet holding the thumbnail
	File int `json:"file"`
	// StartX is the horizontal pixel offset inside the sprite sheet
	StartX int `json:"startX"`
	// StartY is the vertical pixel offset inside the sprite sheet
	StartY int `json:"startY"`
}

// Generate lays out the thumbnails of a video lasting duration seconds.
// Sheets are filled row-major and a new sheet starts only once the grid of
// the previous one is full.
func Generate(duration int, l Layout) []Thumbnail {
	count := ThumbnailCount(duration, l.Interval)
	perSprite := l.PerSprite()
	spriteCount := SpriteCount(count, perSprite)

	thumbs := make([]Thumbnail, 0, count)
	for sprite := 0; sprite < spriteCount; sprite++ {
		ts := sprite * perSprite * l.Interval
	grid:
		for row := 0; row < l.Rows; row++ {
			for col := 0; col < l.Cols; col++ {
				if len(thumbs) == count {
					break grid
				}
				thumbs = append(thumbs, Thumbnail{
					Start:  ts,
					End:    ts + l.Interval,
					File:   sprite + 1,
					StartX: col * l.ThumbWidth,
					StartY: row * l.ThumbHeight,
				})
				ts += l.Interval
			}
		}
	}
	return thumbs
}

// SpriteName is the file name of the 1-based sprite sheet n.
func SpriteName(n int) string {
	return fmt.Sprintf("%03d.jpg", n)
}

// ImageRef returns the media fragment reference of a thumbnail, e.g.
// sprites/001.jpg#xywh=0,0,320,180
func ImageRef(t Thumbnail, l Layout) string {
	name := SpriteName(t.File)
	if dir := strings.TrimSuffix(l.SpriteDir, "/"); dir != "" {
		name = path.Join(dir, name)
	}
	return fmt.Sprintf("%s#xywh=%d,%d,%d,%d", name, t.StartX, t.StartY, l.ThumbWidth, l.ThumbHeight)
}
