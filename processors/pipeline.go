package processor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/jaym/spritegen/cues"
)

type PipelineConfig struct {
	Layout cues.Layout
	// FrameDir holds the extracted frames
	FrameDir string
	// SpriteDir holds the sprite sheets
	SpriteDir string
	// VTTPath is where the WebVTT cue file is written
	VTTPath string
	// JSONPath is where the JSON cue file is written
	JSONPath string
	// VerifyLayout checks the tool output against the computed layout
	VerifyLayout bool
}

// Pipeline runs probe, extraction, tiling and cue generation in order.
type Pipeline struct {
	config    PipelineConfig
	probe     MediaProbe
	extractor FrameExtractor
	tiler     ImageTiler
}

func NewPipeline(cfg PipelineConfig, probe MediaProbe, extractor FrameExtractor, tiler ImageTiler) *Pipeline {
	return &Pipeline{
		config:    cfg,
		probe:     probe,
		extractor: extractor,
		tiler:     tiler,
	}
}

// Result is what a successful run produced.
type Result struct {
	Duration   int              `json:"duration"`
	Thumbnails []cues.Thumbnail `json:"thumbnails"`
	Layout     *LayoutReport    `json:"layout,omitempty"`
	VTTPath    string           `json:"vtt_path"`
	JSONPath   string           `json:"json_path"`
}

// Run processes inputPath. The first failing stage aborts the run.
func (p *Pipeline) Run(ctx context.Context, inputPath string) (*Result, error) {
	l := p.config.Layout
	if err := l.Validate(); err != nil {
		return nil, err
	}

	duration, err := p.probe.Duration(ctx, inputPath)
	if err != nil {
		return nil, fmt.Errorf("error probing video duration: %w", err)
	}
	log.Info().Str("input", inputPath).Int("duration", duration).Msg("video duration (s)")

	log.Info().Msg("generating thumbnails, this will take a few minutes")
	if err := p.extractor.Extract(ctx, inputPath); err != nil {
		return nil, fmt.Errorf("error extracting frames: %w", err)
	}

	log.Info().Msg("generating thumbnail sprites")
	if err := p.tiler.Tile(ctx); err != nil {
		return nil, fmt.Errorf("error tiling sprites: %w", err)
	}

	thumbs := cues.Generate(duration, l)
	log.Info().
		Int("thumbs", len(thumbs)).
		Int("perSprite", l.PerSprite()).
		Int("sprites", cues.SpriteCount(len(thumbs), l.PerSprite())).
		Msg("computed thumbnail layout")

	result := &Result{
		Duration:   duration,
		Thumbnails: thumbs,
		VTTPath:    p.config.VTTPath,
		JSONPath:   p.config.JSONPath,
	}

	if p.config.VerifyLayout {
		report, err := VerifyLayout(p.config.FrameDir, p.config.SpriteDir, len(thumbs), l)
		if err != nil {
			return nil, err
		}
		result.Layout = report
	}

	log.Info().Msg("generating thumbnails VTT and JSON files")
	err = writeFile(p.config.VTTPath, func(w io.Writer) error {
		return cues.WriteVTT(w, thumbs, l)
	})
	if err != nil {
		return nil, err
	}
	err = writeFile(p.config.JSONPath, func(w io.Writer) error {
		return cues.WriteJSON(w, thumbs, l)
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("vtt", p.config.VTTPath).Str("json", p.config.JSONPath).Msg("done")
	return result, nil
}

func writeFile(name string, write func(io.Writer) error) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("error creating %s: %w", name, err)
	}
	defer f.Close()

	if err := write(f); err != nil {
		return fmt.Errorf("error writing %s: %w", name, err)
	}
	return f.Close()
}
