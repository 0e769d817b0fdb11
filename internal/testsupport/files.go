package testsupport

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleursexport/internal/audio"
	"fleursexport/internal/dataset"
)

// WriteWAV encodes w as a PCM16 WAV file at path, creating parent directories.
func WriteWAV(t testing.TB, path string, w dataset.Waveform) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := audio.WriteFile(path, w, audio.FormatWAV); err != nil {
		t.Fatalf("write wav %s: %v", path, err)
	}
}

// WAVBytes returns w encoded as a PCM16 WAV file.
func WAVBytes(t testing.TB, w dataset.Waveform) []byte {
	t.Helper()

	path := filepath.Join(t.TempDir(), "clip.wav")
	WriteWAV(t, path, w)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return data
}

// WriteMirror lays out a FLEURS-style local mirror for lang with n rows:
// root/lang/split.tsv plus root/lang/audio/split/<id>.wav. Row i has id
// 1000+i and transcript "<lang> utterance i".
func WriteMirror(t testing.TB, root, lang, split string, n int) {
	t.Helper()

	dir := filepath.Join(root, lang)
	var b strings.Builder
	for i := 0; i < n; i++ {
		id := 1000 + i
		file := fmt.Sprintf("%d.wav", id)
		text := fmt.Sprintf("%s utterance %d", lang, i)
		fmt.Fprintf(&b, "%d\t%s\t%s\t%s\t%s\t%d\tFEMALE\n", id, file, text, strings.ToLower(text), text, 200+i)
		WriteWAV(t, filepath.Join(dir, "audio", split, file), Utterance(lang, text, 200+i).Audio)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, split+".tsv"), []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
}

// PCM16WAV lays out a mono PCM16 RIFF/WAVE file byte by byte, independent of
// the audio package, so decoders can be checked against known amplitudes.
func PCM16WAV(rate int, samples ...int16) []byte {
	const headerLen = 44
	dataLen := uint32(len(samples) * 2)
	var b bytes.Buffer
	b.Grow(headerLen + int(dataLen))
	le := func(v any) { _ = binary.Write(&b, binary.LittleEndian, v) }

	b.WriteString("RIFF")
	le(uint32(headerLen - 8 + dataLen))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	le(uint32(16))       // chunk size
	le(uint16(1))        // PCM
	le(uint16(1))        // channels
	le(uint32(rate))     // sample rate
	le(uint32(rate * 2)) // byte rate
	le(uint16(2))        // block align
	le(uint16(16))       // bits per sample
	b.WriteString("data")
	le(dataLen)
	le(samples)
	return b.Bytes()
}

// WriteFixtureMirror lays out a one-row mirror for lang whose audio file is
// the given PCM16 samples at 16 kHz.
func WriteFixtureMirror(t testing.TB, root, lang, split string, samples ...int16) {
	t.Helper()

	dir := filepath.Join(root, lang)
	audioDir := filepath.Join(dir, "audio", split)
	if err := os.MkdirAll(audioDir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", audioDir, err)
	}
	if err := os.WriteFile(filepath.Join(audioDir, "1.wav"), PCM16WAV(16000, samples...), 0o644); err != nil {
		t.Fatalf("write fixture wav: %v", err)
	}
	row := fmt.Sprintf("1\t1.wav\t%s fixture\t%s fixture\tw\t%d\tMALE\n", lang, lang, len(samples))
	if err := os.WriteFile(filepath.Join(dir, split+".tsv"), []byte(row), 0o644); err != nil {
		t.Fatalf("write tsv: %v", err)
	}
}
