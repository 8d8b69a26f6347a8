package processor

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

// writeScript installs an executable shell script standing in for ffmpeg or
// ffprobe.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts are not supported on windows")
	}
	p := filepath.Join(t.TempDir(), "tool.sh")
	require.NoError(t, os.WriteFile(p, []byte("#!/bin/sh\n"+body), 0755))
	return p
}

func writeFrames(t *testing.T, dir string, n int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for i := 1; i <= n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("%04d.png", i)), nil, 0644))
	}
}

func writeSprites(t *testing.T, dir string, n int, width int, height int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	for i := 1; i <= n; i++ {
		img := imaging.New(width, height, color.Black)
		require.NoError(t, imaging.Save(img, filepath.Join(dir, fmt.Sprintf("%03d.jpg", i))))
	}
}
