package processor

import (
	"bytes"
	"context"
	"os/exec"
)

// runTool runs an external binary to completion and returns its stdout.
func runTool(ctx context.Context, tool string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, &ToolError{
			Tool:   tool,
			Args:   args,
			Output: stderr.String(),
			Err:    err,
		}
	}
	return output, nil
}
