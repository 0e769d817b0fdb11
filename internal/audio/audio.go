package audio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/cwbudde/wav"
	goaudio "github.com/go-audio/audio"

	"fleursexport/internal/dataset"
	"fleursexport/internal/fileutil"
)

// Format selects how waveforms are written to disk.
type Format string

const (
	// FormatWAV writes RIFF/WAVE PCM 16-bit.
	FormatWAV Format = "wav"
	// FormatRaw writes headerless little-endian float32 samples.
	FormatRaw Format = "raw"
)

const (
	pcmBitDepth    = 16
	wavFormatPCM   = 1
	defaultRateHz  = 16000
	float32ByteLen = 4
)

// ErrNotPCM is returned when a WAV input uses a non-PCM encoding.
var ErrNotPCM = errors.New("audio: only PCM wav input is supported")

// ParseFormat converts a config value into a Format.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatWAV, "":
		return FormatWAV, nil
	case FormatRaw:
		return FormatRaw, nil
	default:
		return "", fmt.Errorf("audio: unsupported format %q", value)
	}
}

// RawBytes returns the waveform as consecutive little-endian float32 values.
func RawBytes(w dataset.Waveform) []byte {
	buf := make([]byte, len(w.Samples)*float32ByteLen)
	for i, s := range w.Samples {
		binary.LittleEndian.PutUint32(buf[i*float32ByteLen:], math.Float32bits(s))
	}
	return buf
}

// WriteFile persists w at path in the requested format, replacing any
// existing file.
func WriteFile(path string, w dataset.Waveform, format Format) error {
	switch format {
	case FormatRaw:
		return fileutil.WriteFile(path, RawBytes(w))
	case FormatWAV, "":
		return writeWAV(path, w)
	default:
		return fmt.Errorf("audio: unsupported format %q", format)
	}
}

func writeWAV(path string, w dataset.Waveform) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := EncodeWAV(out, w); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

// EncodeWAV writes w as a RIFF/WAVE PCM16 stream. Samples outside [-1, 1]
// are clamped.
func EncodeWAV(out io.WriteSeeker, w dataset.Waveform) error {
	rate := w.SampleRate
	if rate <= 0 {
		rate = defaultRateHz
	}
	channels := w.Channels
	if channels <= 0 {
		channels = 1
	}

	enc := wav.NewEncoder(out, rate, pcmBitDepth, channels, wavFormatPCM)
	if len(w.Samples) > 0 {
		buf := &goaudio.Float32Buffer{
			Format:         &goaudio.Format{NumChannels: channels, SampleRate: rate},
			Data:           make([]float32, len(w.Samples)),
			SourceBitDepth: pcmBitDepth,
		}
		for i, s := range w.Samples {
			buf.Data[i] = clampSample(s)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("audio: encode wav: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finalize wav: %w", err)
	}
	return nil
}

// clampSample maps s into [-1, 1]; NaN becomes silence.
func clampSample(s float32) float32 {
	v := float64(s)
	if math.IsNaN(v) {
		return 0
	}
	return float32(math.Max(-1, math.Min(1, v)))
}

// DecodeWAV reads a RIFF/WAVE PCM stream into a normalized waveform.
func DecodeWAV(r io.ReadSeeker) (dataset.Waveform, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		if err := dec.Err(); err != nil {
			return dataset.Waveform{}, fmt.Errorf("audio: input is not a readable WAV file: %w", err)
		}
		return dataset.Waveform{}, errors.New("audio: input is not a readable WAV file")
	}
	if dec.WavAudioFormat != wavFormatPCM {
		return dataset.Waveform{}, fmt.Errorf("%w (format tag %d)", ErrNotPCM, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return dataset.Waveform{}, fmt.Errorf("audio: decode wav: %w", err)
	}

	// The decoder already normalizes integer PCM into [-1, 1].
	samples := make([]float32, len(buf.Data))
	copy(samples, buf.Data)

	return dataset.Waveform{
		Samples:    samples,
		SampleRate: int(dec.SampleRate),
		Channels:   int(dec.NumChans),
	}, nil
}
