package metadata

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jaym/spritegen/cues"
)

func buildTestDatabase(t *testing.T) string {
	t.Helper()
	l := cues.Layout{ThumbWidth: 320, ThumbHeight: 180, Interval: 10, Rows: 10, Cols: 10, SpriteDir: "sprites"}
	meta := NewVideoMetadata("movie.mp4", 1005, cues.Generate(1005, l), l)
	meta.VTTKey = "thumbnails.vtt"
	meta.JSONKey = "thumbnails.json"

	dbPath := filepath.Join(t.TempDir(), "cues.db")
	b, err := NewDatabaseBuilder(dbPath)
	require.NoError(t, err)
	require.NoError(t, b.AddVideoMetadata(meta))
	require.NoError(t, b.Build())
	return dbPath
}

func TestNewVideoMetadata(t *testing.T) {
	l := cues.Layout{ThumbWidth: 320, ThumbHeight: 180, Interval: 10, Rows: 10, Cols: 10, SpriteDir: "sprites"}
	meta := NewVideoMetadata("a.mp4", 100, cues.Generate(100, l), l)
	require.Len(t, meta.Thumbs, 10)
	assert.Equal(t, ThumbMetadata{
		File:  1,
		Start: 90,
		End:   100,
		X:     2880,
		Y:     0,
		Text:  "sprites/001.jpg#xywh=2880,0,320,180",
	}, meta.Thumbs[9])
}

func TestDatabaseRoundTrip(t *testing.T) {
	dbPath := buildTestDatabase(t)
	assert.NoFileExists(t, dbPath+".tmp")

	db, err := OpenDatabase(dbPath)
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	videos, err := db.ListVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, "movie.mp4", videos[0].Name)
	assert.Equal(t, 1005, videos[0].Duration)
	assert.Equal(t, "thumbnails.vtt", videos[0].VTTKey)

	all, err := db.ListCues(ctx, "movie.mp4")
	require.NoError(t, err)
	assert.Len(t, all, 100)
	assert.Equal(t, 990, all[99].Start)

	cue, err := db.CueAt(ctx, "movie.mp4", 125)
	require.NoError(t, err)
	assert.Equal(t, &ThumbMetadata{File: 1, Start: 120, End: 130, X: 640, Y: 180, Text: "sprites/001.jpg#xywh=640,180,320,180"}, cue)

	cue, err = db.CueAt(ctx, "movie.mp4", 130)
	require.NoError(t, err)
	assert.Equal(t, 130, cue.Start)
}

func TestDatabaseCueNotFound(t *testing.T) {
	db, err := OpenDatabase(buildTestDatabase(t))
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	_, err = db.CueAt(ctx, "movie.mp4", 1000)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = db.CueAt(ctx, "other.mp4", 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDatabaseBuilderReplacesLeftovers(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cues.db")
	require.NoError(t, os.WriteFile(dbPath+".tmp", []byte("garbage"), 0644))

	b, err := NewDatabaseBuilder(dbPath)
	require.NoError(t, err)
	require.NoError(t, b.AddVideoMetadata(VideoMetadata{Name: "x.mp4"}))
	require.NoError(t, b.Build())
	assert.FileExists(t, dbPath)
}

func TestDatabaseBuilderAbort(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "cues.db")
	b, err := NewDatabaseBuilder(dbPath)
	require.NoError(t, err)
	require.NoError(t, b.Abort())
	assert.NoFileExists(t, dbPath)
	assert.NoFileExists(t, dbPath+".tmp")
}
