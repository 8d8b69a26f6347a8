package processor

import "context"

// MediaProbe reports the duration of a media file in whole seconds.
type MediaProbe interface {
	Duration(ctx context.Context, inputPath string) (int, error)
}

// FrameExtractor writes one frame per sampling interval into its frame
// directory.
type FrameExtractor interface {
	Extract(ctx context.Context, inputPath string) error
}

// ImageTiler packs the extracted frames into sprite sheets.
type ImageTiler interface {
	Tile(ctx context.Context) error
}
