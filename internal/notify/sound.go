package notify

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/flac"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/vorbis"
	"github.com/gopxl/beep/v2/wav"

	"github.com/ayoisaiah/guardian/internal/apperr"
)

var errInvalidSoundFormat = &apperr.Error{
	Message: "invalid sound file format: %s",
}

// bufferSize is the number of speaker buffers per second.
const bufferSize = 10

// decodeSound opens the sound file at path and returns a stream positioned
// at its start.
func decodeSound(path string) (beep.StreamSeekCloser, beep.Format, error) {
	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, format, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".ogg":
		stream, format, err = vorbis.Decode(f)
	case ".mp3":
		stream, format, err = mp3.Decode(f)
	case ".flac":
		stream, format, err = flac.Decode(f)
	case ".wav":
		stream, format, err = wav.Decode(f)
	default:
		_ = f.Close()
		return nil, format, errInvalidSoundFormat.Fmt(path)
	}

	if err != nil {
		_ = f.Close()
		return nil, format, err
	}

	return stream, format, nil
}

// playSound plays the file at path once and returns when playback ends.
func playSound(path string) error {
	stream, format, err := decodeSound(path)
	if err != nil {
		return err
	}

	defer stream.Close()

	err = speaker.Init(
		format.SampleRate,
		format.SampleRate.N(time.Second/bufferSize),
	)
	if err != nil {
		return err
	}

	defer speaker.Close()

	done := make(chan struct{})

	speaker.Play(beep.Seq(stream, beep.Callback(func() {
		close(done)
	})))

	<-done

	speaker.Clear()

	return nil
}
