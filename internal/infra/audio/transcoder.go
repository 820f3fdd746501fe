package audio

import (
	"context"
	"fmt"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// Transcoder re-encodes stored audio through ffmpeg.
type Transcoder struct{}

func NewTranscoder() *Transcoder {
	return &Transcoder{}
}

// ToWAV converts srcPath into a WAV file at the given sample rate,
// overwriting dstPath if it already exists.
func (t *Transcoder) ToWAV(ctx context.Context, srcPath, dstPath string, sampleRate int) error {
	if sampleRate <= 0 {
		return fmt.Errorf("invalid sample rate: %d", sampleRate)
	}

	err := ffmpeg.Input(srcPath).
		Output(dstPath, ffmpeg.KwArgs{"ar": sampleRate}).
		OverWriteOutput().
		Silent(true).
		Run()
	if err != nil {
		return fmt.Errorf("transcode %s to wav: %w", srcPath, err)
	}

	_ = ctx
	return nil
}
