package processor

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/jaym/spritegen/cues"
)

// LayoutReport summarizes what the external tools wrote to disk.
type LayoutReport struct {
	Frames  int `json:"frames"`
	Sprites int `json:"sprites"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// VerifyLayout checks the frames and sprite sheets on disk against the
// layout the cues were computed from. Missing frames or sheets and a first
// sheet of the wrong size are errors; surplus files only warrant a warning
// since ffmpeg may emit a frame for a trailing partial interval.
func VerifyLayout(frameDir string, spriteDir string, count int, l cues.Layout) (*LayoutReport, error) {
	frames, err := filepath.Glob(filepath.Join(frameDir, FrameGlob))
	if err != nil {
		return nil, fmt.Errorf("error listing frames: %w", err)
	}
	sprites, err := filepath.Glob(filepath.Join(spriteDir, SpriteGlob))
	if err != nil {
		return nil, fmt.Errorf("error listing sprites: %w", err)
	}
	sort.Strings(sprites)

	report := &LayoutReport{Frames: len(frames), Sprites: len(sprites)}
	wantSprites := cues.SpriteCount(count, l.PerSprite())

	if report.Frames < count {
		return report, fmt.Errorf("%w: expected %d frames, found %d", ErrLayoutMismatch, count, report.Frames)
	}
	if report.Sprites < wantSprites {
		return report, fmt.Errorf("%w: expected %d sprite sheets, found %d", ErrLayoutMismatch, wantSprites, report.Sprites)
	}
	if report.Frames > count {
		log.Warn().Int("expected", count).Int("found", report.Frames).Msg("extra frames extracted")
	}
	if report.Sprites > wantSprites {
		log.Warn().Int("expected", wantSprites).Int("found", report.Sprites).Msg("extra sprite sheets written")
	}
	if len(sprites) == 0 {
		return report, nil
	}

	img, err := imaging.Open(sprites[0])
	if err != nil {
		return report, fmt.Errorf("error decoding sprite %s: %w", sprites[0], err)
	}
	report.Width = img.Bounds().Dx()
	report.Height = img.Bounds().Dy()

	wantWidth, wantHeight := l.SheetSize()
	if report.Width != wantWidth || report.Height != wantHeight {
		return report, fmt.Errorf("%w: sprite %s is %dx%d, expected %dx%d",
			ErrLayoutMismatch, filepath.Base(sprites[0]), report.Width, report.Height, wantWidth, wantHeight)
	}
	return report, nil
}
