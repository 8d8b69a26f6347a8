package spritegen

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/jaym/spritegen/cues"
	"github.com/jaym/spritegen/objstore"
	processor "github.com/jaym/spritegen/processors"
)

const envPrefix = "SPRITEGEN"

type LayoutConfig struct {
	// ThumbWidth is the width of a single thumbnail in pixels
	ThumbWidth int `mapstructure:"thumb_width"`
	// ThumbHeight is the height of a single thumbnail in pixels
	ThumbHeight int `mapstructure:"thumb_height"`
	// Interval is the time between two thumbnails in seconds
	Interval int `mapstructure:"interval"`
	Rows     int `mapstructure:"rows"`
	Cols     int `mapstructure:"cols"`
}

type PathsConfig struct {
	ThumbsDir  string `mapstructure:"thumbs_dir"`
	SpritesDir string `mapstructure:"sprites_dir"`
	VTT        string `mapstructure:"vtt"`
	JSON       string `mapstructure:"json"`
	// IndexDB enables the SQLite cue index when set
	IndexDB string `mapstructure:"index_db"`
}

type ToolsConfig struct {
	FFmpegPath  string `mapstructure:"ffmpeg_path"`
	FFprobePath string `mapstructure:"ffprobe_path"`
	HWAccel     string `mapstructure:"hwaccel"`
	Quality     int    `mapstructure:"quality"`
}

type ServerConfig struct {
	Listen string `mapstructure:"listen"`
	Title  string `mapstructure:"title"`
	Video  string `mapstructure:"video"`
}

type Config struct {
	Layout       LayoutConfig         `mapstructure:"layout"`
	Paths        PathsConfig          `mapstructure:"paths"`
	Tools        ToolsConfig          `mapstructure:"tools"`
	VerifyLayout bool                 `mapstructure:"verify_layout"`
	Server       ServerConfig         `mapstructure:"server"`
	Publish      objstore.MinioConfig `mapstructure:"publish"`
	LogLevel     string               `mapstructure:"log_level"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("layout.thumb_width", processor.DefaultWidth)
	v.SetDefault("layout.thumb_height", processor.DefaultHeight)
	v.SetDefault("layout.interval", processor.DefaultInterval)
	v.SetDefault("layout.rows", processor.DefaultRows)
	v.SetDefault("layout.cols", processor.DefaultCols)

	v.SetDefault("paths.thumbs_dir", "thumbs")
	v.SetDefault("paths.sprites_dir", "sprites")
	v.SetDefault("paths.vtt", "thumbnails.vtt")
	v.SetDefault("paths.json", "thumbnails.json")
	v.SetDefault("paths.index_db", "")

	v.SetDefault("tools.ffmpeg_path", processor.DefaultFFmpegPath)
	v.SetDefault("tools.ffprobe_path", processor.DefaultFFprobePath)
	v.SetDefault("tools.hwaccel", processor.DefaultHWAccel)
	v.SetDefault("tools.quality", processor.DefaultQuality)

	v.SetDefault("verify_layout", true)

	v.SetDefault("server.listen", ":8991")
	v.SetDefault("server.title", "Sprite Fight")
	v.SetDefault("server.video", "https://files.vidstack.io/sprite-fight/hls/stream.m3u8")

	v.SetDefault("publish.endpoint", "")
	v.SetDefault("publish.access_key", "")
	v.SetDefault("publish.secret_key", "")
	v.SetDefault("publish.use_ssl", false)
	v.SetDefault("publish.bucket", "")
	v.SetDefault("publish.prefix", "")

	v.SetDefault("log_level", "info")
}

func setupEnv(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

func LoadConfig() (*Config, error) {
	var config Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return nil, err
	}
	return &config, nil
}

// CueLayout is the layout the cue files are computed with.
func (c *Config) CueLayout() cues.Layout {
	return cues.Layout{
		ThumbWidth:  c.Layout.ThumbWidth,
		ThumbHeight: c.Layout.ThumbHeight,
		Interval:    c.Layout.Interval,
		Rows:        c.Layout.Rows,
		Cols:        c.Layout.Cols,
		SpriteDir:   c.Paths.SpritesDir,
	}
}

func (c *Config) PipelineConfig() processor.PipelineConfig {
	return processor.PipelineConfig{
		Layout:       c.CueLayout(),
		FrameDir:     c.Paths.ThumbsDir,
		SpriteDir:    c.Paths.SpritesDir,
		VTTPath:      c.Paths.VTT,
		JSONPath:     c.Paths.JSON,
		VerifyLayout: c.VerifyLayout,
	}
}

func (c *Config) ThumbnailerConfig() processor.ThumbnailerConfig {
	return processor.ThumbnailerConfig{
		FFmpegPath: c.Tools.FFmpegPath,
		Interval:   c.Layout.Interval,
		Width:      c.Layout.ThumbWidth,
		Height:     c.Layout.ThumbHeight,
		HWAccel:    c.Tools.HWAccel,
		OutputDir:  c.Paths.ThumbsDir,
	}
}

func (c *Config) TilerConfig() processor.TilerConfig {
	return processor.TilerConfig{
		FFmpegPath: c.Tools.FFmpegPath,
		Rows:       c.Layout.Rows,
		Cols:       c.Layout.Cols,
		Quality:    c.Tools.Quality,
		InputDir:   c.Paths.ThumbsDir,
		OutputDir:  c.Paths.SpritesDir,
	}
}
