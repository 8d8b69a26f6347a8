package processor

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
)

const DefaultFFprobePath = "ffprobe"

// DurationProber asks ffprobe for the container duration of a file.
type DurationProber struct {
	ffprobePath string
}

// NewDurationProber creates a prober running the given ffprobe binary.
func NewDurationProber(ffprobePath string) *DurationProber {
	if ffprobePath == "" {
		ffprobePath = DefaultFFprobePath
	}
	return &DurationProber{ffprobePath: ffprobePath}
}

func probeArgs(inputPath string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		inputPath,
	}
}

// Duration returns the duration of inputPath in seconds, rounded up so the
// last partial second is still covered.
func (p *DurationProber) Duration(ctx context.Context, inputPath string) (int, error) {
	output, err := runTool(ctx, p.ffprobePath, probeArgs(inputPath))
	if err != nil {
		return 0, err
	}
	return parseDuration(string(output))
}

func parseDuration(output string) (int, error) {
	s := strings.TrimSpace(output)
	duration, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0, &ParseError{
			Msg:           fmt.Sprintf("error parsing duration %q", s),
			ffprobeOutput: output,
			Err:           err,
		}
	}
	return int(math.Ceil(duration)), nil
}
