package spectrum

import (
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/pkg/errors"
)

// Signal is a mono signal with samples in [-1, 1].
type Signal struct {
	SampleRate int
	Samples    []float32
}

// LoadWAV reads a PCM WAV file and mixes it down to mono.
func LoadWAV(path string) (Signal, error) {
	f, err := os.Open(path)
	if err != nil {
		return Signal{}, errors.Wrap(err, "failed to open wav file")
	}
	defer f.Close()

	return DecodeWAV(f)
}

// DecodeWAV decodes a PCM WAV stream and mixes it down to mono.
func DecodeWAV(r io.ReadSeeker) (Signal, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return Signal{}, errors.New("not a valid wav file")
	}

	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Signal{}, errors.Wrap(err, "failed to decode wav data")
	}

	depth := int(d.BitDepth)
	if depth == 0 {
		depth = buf.SourceBitDepth
	}
	if depth < 8 || depth > 32 {
		return Signal{}, errors.Errorf("unsupported bit depth %d", depth)
	}

	return Signal{
		SampleRate: int(d.SampleRate),
		Samples:    mono(buf, depth),
	}, nil
}

// mono averages the channels of buf and scales by the bit depth.
func mono(buf *audio.IntBuffer, depth int) []float32 {
	chans := 1
	if buf.Format != nil && buf.Format.NumChannels > 0 {
		chans = buf.Format.NumChannels
	}

	scale := 1.0 / float64(int64(1)<<(depth-1))
	// 8-bit wav is unsigned
	offset := 0
	if depth == 8 {
		offset = 128
	}

	out := make([]float32, len(buf.Data)/chans)
	for i := range out {
		sum := 0
		for c := 0; c < chans; c++ {
			sum += buf.Data[i*chans+c] - offset
		}
		out[i] = float32(float64(sum) / float64(chans) * scale)
	}

	return out
}
