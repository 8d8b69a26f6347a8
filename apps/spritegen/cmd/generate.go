package spritegen

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaym/spritegen/metadata"
	"github.com/jaym/spritegen/objstore"
	processor "github.com/jaym/spritegen/processors"
)

var generateCmd = &cobra.Command{
	Use:   "generate input_file",
	Short: "Extract frames, tile them into sprite sheets and write the cue files",
	Args:  inputArg,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig()
		cobra.CheckErr(err)

		result, err := runGenerate(cmd.Context(), cfg, args[0])
		cobra.CheckErr(err)

		if printResult, _ := cmd.Flags().GetBool("print"); printResult {
			// Pretty print the result as json
			o, _ := json.MarshalIndent(result, "", "  ")
			cmd.Println(string(o))
		}
	},
}

func runGenerate(ctx context.Context, cfg *Config, input string) (*processor.Result, error) {
	p := processor.NewPipeline(
		cfg.PipelineConfig(),
		processor.NewDurationProber(cfg.Tools.FFprobePath),
		processor.NewThumbnailer(cfg.ThumbnailerConfig()),
		processor.NewTiler(cfg.TilerConfig()),
	)

	result, err := p.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	if cfg.Paths.IndexDB != "" {
		if err := writeIndex(cfg, filepath.Base(input), result); err != nil {
			return nil, fmt.Errorf("error writing cue index: %w", err)
		}
	}

	if cfg.Publish.Endpoint != "" {
		if err := publish(ctx, cfg); err != nil {
			return nil, fmt.Errorf("error publishing: %w", err)
		}
	}

	return result, nil
}

func writeIndex(cfg *Config, name string, result *processor.Result) error {
	b, err := metadata.NewDatabaseBuilder(cfg.Paths.IndexDB)
	if err != nil {
		return err
	}

	meta := metadata.NewVideoMetadata(name, result.Duration, result.Thumbnails, cfg.CueLayout())
	meta.VTTKey = filepath.ToSlash(cfg.Paths.VTT)
	meta.JSONKey = filepath.ToSlash(cfg.Paths.JSON)
	if err := b.AddVideoMetadata(meta); err != nil {
		b.Abort() // nolint: errcheck
		return err
	}
	if err := b.Build(); err != nil {
		return err
	}

	log.Info().Str("path", cfg.Paths.IndexDB).Int("cues", len(meta.Thumbs)).Msg("wrote cue index")
	return nil
}

// deliverables lists the sprite sheets and both cue files with their object
// keys: the sprite directory name plus the sheet name, and the cue file names.
func deliverables(cfg *Config) ([]objstore.Upload, error) {
	sheets, err := filepath.Glob(filepath.Join(cfg.Paths.SpritesDir, processor.SpriteGlob))
	if err != nil {
		return nil, err
	}

	dir := filepath.Base(cfg.Paths.SpritesDir)
	uploads := make([]objstore.Upload, 0, len(sheets)+2)
	for _, sheet := range sheets {
		uploads = append(uploads, objstore.Upload{Key: path.Join(dir, filepath.Base(sheet)), Path: sheet})
	}
	uploads = append(uploads,
		objstore.Upload{Key: filepath.Base(cfg.Paths.VTT), Path: cfg.Paths.VTT},
		objstore.Upload{Key: filepath.Base(cfg.Paths.JSON), Path: cfg.Paths.JSON},
	)
	return uploads, nil
}

func publish(ctx context.Context, cfg *Config) error {
	w, err := objstore.NewMinioWriter(cfg.Publish)
	if err != nil {
		return err
	}
	if err := w.EnsureBucket(ctx); err != nil {
		return err
	}

	uploads, err := deliverables(cfg)
	if err != nil {
		return err
	}
	keys, err := objstore.Publish(ctx, w, cfg.Publish.Prefix, uploads)
	if err != nil {
		return err
	}

	log.Info().Str("bucket", cfg.Publish.Bucket).Int("objects", len(keys)).Msg("published deliverables")
	return nil
}

func init() {
	generateCmd.Flags().Bool("print", false, "Print the computed thumbnails as json")
	rootCmd.Flags().Bool("print", false, "Print the computed thumbnails as json")
	rootCmd.AddCommand(generateCmd)
}
