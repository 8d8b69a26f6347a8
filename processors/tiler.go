package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

const (
	DefaultRows    = 10
	DefaultCols    = 10
	DefaultQuality = 2

	// SpritePattern is the ffmpeg output pattern of the sprite sheets
	SpritePattern = "%03d.jpg"
	// SpriteGlob matches the files written with SpritePattern
	SpriteGlob = "*.jpg"
)

// Tiler packs frames into sprite sheets with ffmpeg's tile filter.
type Tiler struct {
	ffmpegPath string
	rows       int
	cols       int
	quality    int
	inputDir   string
	outputDir  string
}

type TilerConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	Rows       int    `mapstructure:"rows"`
	Cols       int    `mapstructure:"cols"`
	// Quality is the jpeg qscale of the sheets, 2 is near lossless
	Quality   int    `mapstructure:"quality"`
	InputDir  string `mapstructure:"input_dir"`
	OutputDir string `mapstructure:"output_dir"`
}

func NewTiler(cfg TilerConfig) *Tiler {
	t := &Tiler{
		ffmpegPath: DefaultFFmpegPath,
		rows:       DefaultRows,
		cols:       DefaultCols,
		quality:    DefaultQuality,
		inputDir:   "thumbs",
		outputDir:  "sprites",
	}
	if cfg.FFmpegPath != "" {
		t.ffmpegPath = cfg.FFmpegPath
	}
	if cfg.Rows > 0 {
		t.rows = cfg.Rows
	}
	if cfg.Cols > 0 {
		t.cols = cfg.Cols
	}
	if cfg.Quality > 0 {
		t.quality = cfg.Quality
	}
	if cfg.InputDir != "" {
		t.inputDir = cfg.InputDir
	}
	if cfg.OutputDir != "" {
		t.outputDir = cfg.OutputDir
	}
	return t
}

func (t *Tiler) args() []string {
	// tile takes columns first
	return ffmpeg_go.Input(filepath.Join(t.inputDir, FramePattern)).
		Filter("tile", ffmpeg_go.Args{fmt.Sprintf("%dx%d", t.cols, t.rows)}).
		Output(
			filepath.Join(t.outputDir, SpritePattern),
			ffmpeg_go.KwArgs{
				"q:v": fmt.Sprintf("%d", t.quality),
			},
		).
		OverWriteOutput().
		GetArgs()
}

// Tile writes the sprite sheets, numbered from 001, into a clean output
// directory.
func (t *Tiler) Tile(ctx context.Context) error {
	if err := resetDir(t.outputDir); err != nil {
		return err
	}

	args := t.args()
	log.Debug().Str("tool", t.ffmpegPath).Strs("args", args).Msg("tiling sprites")
	if _, err := runTool(ctx, t.ffmpegPath, args); err != nil {
		return err
	}
	return nil
}
