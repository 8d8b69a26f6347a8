package cues

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultLayout() Layout {
	return Layout{
		ThumbWidth:  320,
		ThumbHeight: 180,
		Interval:    10,
		Rows:        10,
		Cols:        10,
		SpriteDir:   "sprites",
	}
}

func TestThumbnailCount(t *testing.T) {
	tests := []struct {
		duration int
		interval int
		want     int
	}{
		{duration: 95, interval: 10, want: 9},
		{duration: 100, interval: 10, want: 10},
		{duration: 9, interval: 10, want: 0},
		{duration: 0, interval: 10, want: 0},
		{duration: 100, interval: 0, want: 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ThumbnailCount(tt.duration, tt.interval), "duration=%d interval=%d", tt.duration, tt.interval)
	}
}

func TestSpriteCount(t *testing.T) {
	assert.Equal(t, 3, SpriteCount(205, 100))
	assert.Equal(t, 1, SpriteCount(100, 100))
	assert.Equal(t, 2, SpriteCount(101, 100))
	assert.Equal(t, 0, SpriteCount(0, 100))
}

func TestGenerateEndToEnd(t *testing.T) {
	thumbs := Generate(100, defaultLayout())
	require.Len(t, thumbs, 10)
	assert.Equal(t, Thumbnail{Start: 0, End: 10, File: 1, StartX: 0, StartY: 0}, thumbs[0])
	assert.Equal(t, Thumbnail{Start: 90, End: 100, File: 1, StartX: 2880, StartY: 0}, thumbs[9])
}

func TestGenerateMultipleSheets(t *testing.T) {
	l := defaultLayout()
	thumbs := Generate(2055, l)
	require.Len(t, thumbs, 205)

	perFile := map[int]int{}
	for i, th := range thumbs {
		perFile[th.File]++
		assert.Equal(t, i*l.Interval, th.Start)
		assert.Equal(t, th.Start+l.Interval, th.End)

		k := i % l.PerSprite()
		assert.Equal(t, (k%l.Cols)*l.ThumbWidth, th.StartX, "thumb %d", i)
		assert.Equal(t, (k/l.Cols)*l.ThumbHeight, th.StartY, "thumb %d", i)
	}
	assert.Equal(t, map[int]int{1: 100, 2: 100, 3: 5}, perFile)
	assert.Equal(t, Thumbnail{Start: 2000, End: 2010, File: 3, StartX: 0, StartY: 0}, thumbs[200])
}

func TestGenerateNonSquareGrid(t *testing.T) {
	l := Layout{ThumbWidth: 100, ThumbHeight: 50, Interval: 5, Rows: 2, Cols: 3, SpriteDir: "s"}
	thumbs := Generate(40, l)
	require.Len(t, thumbs, 8)
	assert.Equal(t, Thumbnail{Start: 15, End: 20, File: 1, StartX: 0, StartY: 50}, thumbs[3])
	assert.Equal(t, Thumbnail{Start: 25, End: 30, File: 1, StartX: 200, StartY: 50}, thumbs[5])
	assert.Equal(t, Thumbnail{Start: 35, End: 40, File: 2, StartX: 100, StartY: 0}, thumbs[7])
}

func TestGenerateEmpty(t *testing.T) {
	thumbs := Generate(5, defaultLayout())
	assert.Empty(t, thumbs)
	assert.Equal(t, "WEBVTT", VTT(thumbs, defaultLayout()))

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, thumbs, defaultLayout()))
	assert.Equal(t, "[]", buf.String())
}

func TestTimestamp(t *testing.T) {
	assert.Equal(t, "00:00:00.000", Timestamp(0))
	assert.Equal(t, "00:00:10.000", Timestamp(10))
	assert.Equal(t, "01:01:01.000", Timestamp(3661))
	assert.Equal(t, "23:59:59.000", Timestamp(86399))
	assert.Equal(t, "00:00:00.000", Timestamp(86400))
}

func TestImageRef(t *testing.T) {
	l := defaultLayout()
	th := Thumbnail{File: 12, StartX: 640, StartY: 360}
	assert.Equal(t, "sprites/012.jpg#xywh=640,360,320,180", ImageRef(th, l))

	l.SpriteDir = "out/sprites/"
	assert.Equal(t, "out/sprites/012.jpg#xywh=640,360,320,180", ImageRef(th, l))

	l.SpriteDir = ""
	assert.Equal(t, "012.jpg#xywh=640,360,320,180", ImageRef(th, l))
}

func TestVTT(t *testing.T) {
	l := defaultLayout()
	l.Cols = 1
	expected := `WEBVTT

00:00:00.000 --> 00:00:10.000
sprites/001.jpg#xywh=0,0,320,180

00:00:10.000 --> 00:00:20.000
sprites/001.jpg#xywh=0,180,320,180`

	assert.Equal(t, expected, VTT(Generate(25, l), l))
}

func TestJSON(t *testing.T) {
	l := defaultLayout()
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, Generate(20, l), l))
	assert.Equal(t,
		`[{"startTime":0,"endTime":10,"text":"sprites/001.jpg#xywh=0,0,320,180"},{"startTime":10,"endTime":20,"text":"sprites/001.jpg#xywh=320,0,320,180"}]`,
		buf.String())
}

func TestVTTAndJSONDescribeTheSameCues(t *testing.T) {
	l := defaultLayout()
	thumbs := Generate(4321, l)

	var jsonBuf bytes.Buffer
	require.NoError(t, WriteJSON(&jsonBuf, thumbs, l))
	fromJSON, err := ReadJSON(&jsonBuf)
	require.NoError(t, err)

	var vttBuf bytes.Buffer
	require.NoError(t, WriteVTT(&vttBuf, thumbs, l))
	assert.Equal(t, len(thumbs), strings.Count(vttBuf.String(), " --> "))
	fromVTT, err := ReadVTT(&vttBuf)
	require.NoError(t, err)

	require.Len(t, fromJSON, len(thumbs))
	require.NoError(t, Compare(fromJSON, fromVTT))
}

func TestCompare(t *testing.T) {
	a := []JSONCue{{StartTime: 0, EndTime: 10, Text: "a"}, {StartTime: 10, EndTime: 20, Text: "b"}}

	assert.NoError(t, Compare(a, a))

	var m *Mismatch
	err := Compare(a, a[:1])
	require.ErrorAs(t, err, &m)
	assert.Equal(t, 1, m.Index)
	assert.Nil(t, m.Right)

	b := []JSONCue{a[0], {StartTime: 10, EndTime: 20, Text: "c"}}
	err = Compare(a, b)
	require.ErrorAs(t, err, &m)
	assert.Equal(t, 1, m.Index)
}

func TestLayoutValidate(t *testing.T) {
	assert.NoError(t, defaultLayout().Validate())

	l := defaultLayout()
	l.Rows = 0
	assert.ErrorIs(t, l.Validate(), ErrInvalidLayout)
}

func TestLayoutValidateReportsFirstInvalidField(t *testing.T) {
	l := defaultLayout()
	l.ThumbHeight = 0
	l.Rows = -1
	l.Cols = 0
	for i := 0; i < 20; i++ {
		assert.EqualError(t, l.Validate(), "invalid layout: thumb height must be positive, got 0")
	}
}

func TestRebaseImageRefs(t *testing.T) {
	l := defaultLayout()
	l.SpriteDir = "/tmp/out/my sprites"
	l.Rows, l.Cols = 1, 2
	vtt := VTT(Generate(30, l), l)

	assert.Equal(t, "WEBVTT\n\n"+
		"00:00:00.000 --> 00:00:10.000\n/sprites/001.jpg#xywh=0,0,320,180\n\n"+
		"00:00:10.000 --> 00:00:20.000\n/sprites/001.jpg#xywh=320,0,320,180\n\n"+
		"00:00:20.000 --> 00:00:30.000\n/sprites/002.jpg#xywh=0,0,320,180",
		RebaseImageRefs(vtt, "/sprites"))

	bare := l
	bare.SpriteDir = ""
	l.SpriteDir = "sprites"
	assert.Equal(t, VTT(Generate(30, l), l), RebaseImageRefs(VTT(Generate(30, bare), bare), "sprites"))
}
