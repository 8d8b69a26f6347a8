package spritegen

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jaym/spritegen/cues"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that the VTT and JSON cue files describe the same cues",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := LoadConfig()
		cobra.CheckErr(err)

		n, err := verifyCueFiles(cfg.Paths.VTT, cfg.Paths.JSON)
		cobra.CheckErr(err)
		log.Info().Int("cues", n).Msg("cue files match")
	},
}

// verifyCueFiles returns the number of cues when both files agree.
func verifyCueFiles(vttPath string, jsonPath string) (int, error) {
	vttFile, err := os.Open(vttPath)
	if err != nil {
		return 0, err
	}
	defer vttFile.Close()

	fromVTT, err := cues.ReadVTT(vttFile)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", vttPath, err)
	}

	jsonFile, err := os.Open(jsonPath)
	if err != nil {
		return 0, err
	}
	defer jsonFile.Close()

	fromJSON, err := cues.ReadJSON(jsonFile)
	if err != nil {
		return 0, fmt.Errorf("error reading %s: %w", jsonPath, err)
	}

	if err := cues.Compare(fromVTT, fromJSON); err != nil {
		return 0, err
	}
	return len(fromVTT), nil
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
