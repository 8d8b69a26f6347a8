package spritegen

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var ErrMissingInput = errors.New("please provide path to input file")

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "spritegen input_file",
	Short: "Generate thumbnail sprite sheets and cue files for video scrubbing",
	Args:  inputArg,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		return setupLogging(viper.GetString("log_level"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		generateCmd.Run(cmd, args)
	},
	SilenceUsage: true,
}

// inputArg accepts exactly one positional argument, the input video.
func inputArg(cmd *cobra.Command, args []string) error {
	switch {
	case len(args) == 0:
		return ErrMissingInput
	case len(args) > 1:
		return fmt.Errorf("accepts 1 arg, received %d", len(args))
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func initConfig() error {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	return nil
}

func setupLogging(level string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zerolog.SetGlobalLevel(lvl)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	return nil
}

func bindFlag(key string, cmd *cobra.Command, name string) {
	flag := cmd.Flags().Lookup(name)
	if flag == nil {
		flag = cmd.PersistentFlags().Lookup(name)
	}
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func init() {
	setDefaults(viper.GetViper())
	setupEnv(viper.GetViper())

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (yaml, toml or json)")
	flags.String("log-level", "info", "log level")

	flags.Int("thumb-width", 320, "Width of a thumbnail")
	flags.Int("thumb-height", 180, "Height of a thumbnail")
	flags.Int("interval", 10, "Seconds between two thumbnails")
	flags.Int("rows", 10, "Thumbnail rows per sprite sheet")
	flags.Int("cols", 10, "Thumbnail columns per sprite sheet")

	flags.String("thumbs-dir", "thumbs", "Directory for the extracted frames")
	flags.String("sprites-dir", "sprites", "Directory for the sprite sheets")
	flags.String("vtt", "thumbnails.vtt", "Path of the WebVTT cue file")
	flags.String("json", "thumbnails.json", "Path of the JSON cue file")
	flags.String("index-db", "", "Path of the SQLite cue index, disabled when empty")

	flags.String("hwaccel", "auto", "ffmpeg hardware decoder, empty to disable")

	for key, name := range map[string]string{
		"log_level":           "log-level",
		"layout.thumb_width":  "thumb-width",
		"layout.thumb_height": "thumb-height",
		"layout.interval":     "interval",
		"layout.rows":         "rows",
		"layout.cols":         "cols",
		"paths.thumbs_dir":    "thumbs-dir",
		"paths.sprites_dir":   "sprites-dir",
		"paths.vtt":           "vtt",
		"paths.json":          "json",
		"paths.index_db":      "index-db",
		"tools.hwaccel":       "hwaccel",
	} {
		bindFlag(key, rootCmd, name)
	}
}
