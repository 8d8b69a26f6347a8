package processor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"
	ffmpeg_go "github.com/u2takey/ffmpeg-go"
)

const (
	DefaultFFmpegPath = "ffmpeg"
	DefaultInterval   = 10
	DefaultWidth      = 320
	DefaultHeight     = 180
	DefaultHWAccel    = "auto"

	// FramePattern is the ffmpeg output pattern of the extracted frames
	FramePattern = "%04d.png"
	// FrameGlob matches the files written with FramePattern
	FrameGlob = "*.png"
)

type Thumbnailer struct {
	ffmpegPath string
	// interval is the time between two frames in seconds
	interval int
	// width is the width of the thumbnail
	width int
	// height is the height of the thumbnail
	height int
	// hwaccel is passed to ffmpeg as -hwaccel when set
	hwaccel string
	// outputDir receives the numbered frames
	outputDir string
}

type ThumbnailerConfig struct {
	FFmpegPath string `mapstructure:"ffmpeg_path"`
	// Interval is the time between two frames in seconds
	Interval int `mapstructure:"interval"`
	// Width is the width of the thumbnail
	Width int `mapstructure:"width"`
	// Height is the height of the thumbnail
	Height int `mapstructure:"height"`
	// HWAccel is the ffmpeg hardware decoder, empty to decode in software
	HWAccel string `mapstructure:"hwaccel"`
	// OutputDir is the directory the frames are written to
	OutputDir string `mapstructure:"output_dir"`
}

// NewThumbnailer creates a new Thumbnailer instance
func NewThumbnailer(cfg ThumbnailerConfig) *Thumbnailer {
	t := &Thumbnailer{
		ffmpegPath: DefaultFFmpegPath,
		interval:   DefaultInterval,
		width:      DefaultWidth,
		height:     DefaultHeight,
		hwaccel:    cfg.HWAccel,
		outputDir:  "thumbs",
	}
	if cfg.FFmpegPath != "" {
		t.ffmpegPath = cfg.FFmpegPath
	}
	if cfg.Interval > 0 {
		t.interval = cfg.Interval
	}
	if cfg.Width > 0 {
		t.width = cfg.Width
	}
	if cfg.Height > 0 {
		t.height = cfg.Height
	}
	if cfg.OutputDir != "" {
		t.outputDir = cfg.OutputDir
	}
	return t
}

func (t *Thumbnailer) args(inputPath string) []string {
	inputArgs := ffmpeg_go.KwArgs{}
	if t.hwaccel != "" {
		inputArgs["hwaccel"] = t.hwaccel
	}
	return ffmpeg_go.Input(inputPath, inputArgs).
		Filter("fps", ffmpeg_go.Args{fmt.Sprintf("1/%d", t.interval)}).
		Output(
			filepath.Join(t.outputDir, FramePattern),
			ffmpeg_go.KwArgs{
				"s": fmt.Sprintf("%dx%d", t.width, t.height),
			},
		).
		OverWriteOutput().
		GetArgs()
}

// Extract samples one frame every interval seconds from inputPath. Frames
// left over from a previous run are removed first.
func (t *Thumbnailer) Extract(ctx context.Context, inputPath string) error {
	if err := resetDir(t.outputDir); err != nil {
		return err
	}

	args := t.args(inputPath)
	log.Debug().Str("tool", t.ffmpegPath).Strs("args", args).Msg("extracting frames")
	if _, err := runTool(ctx, t.ffmpegPath, args); err != nil {
		return err
	}
	return nil
}
