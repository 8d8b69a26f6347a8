package processor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrLayoutMismatch is returned when the files written by the external tools
// do not match the computed sprite layout.
var ErrLayoutMismatch = errors.New("sprite layout mismatch")

// ToolError is returned when an external tool exits with an error.
type ToolError struct {
	Tool   string
	Args   []string
	Output string
	Err    error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("error running %s: %v", e.Tool, e.Err)
}

func (e *ToolError) Unwrap() error {
	return e.Err
}

// VerboseError includes the command line and whatever the tool printed.
func (e *ToolError) VerboseError() string {
	return fmt.Sprintf("%s\n\nCommand: %s %s\nOutput:\n%s", e.Error(), e.Tool, strings.Join(e.Args, " "), e.Output)
}

// ParseError is returned when the duration printed by ffprobe is not a number.
type ParseError struct {
	Msg           string
	ffprobeOutput string
	Err           error
}

func (e *ParseError) Error() string {
	return e.Msg
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) VerboseError() string {
	return fmt.Sprintf("%s\n\nFFProbe Output:\n%s", e.Msg, e.ffprobeOutput)
}
