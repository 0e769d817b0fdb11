package localdir_test

import (
	"context"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fleursexport/internal/dataset"
	"fleursexport/internal/dataset/localdir"
	"fleursexport/internal/testsupport"
)

func writeMirror(t *testing.T, root, lang string, rows [][]string) {
	t.Helper()
	dir := filepath.Join(root, lang)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	var b strings.Builder
	for i, row := range rows {
		b.WriteString(strings.Join(row, "\t"))
		b.WriteString("\n")
		testsupport.WriteWAV(t, filepath.Join(dir, "audio", "test", row[1]), testsupport.Utterance(lang, row[2], 100+i).Audio)
	}
	if err := os.WriteFile(filepath.Join(dir, "test.tsv"), []byte(b.String()), 0o644); err != nil {
		t.Fatal(err)
	}
}

func fleursRow(id, file, raw, norm string) []string {
	return []string{id, file, raw, norm, "w o r d s", "12345", "FEMALE"}
}

func TestOpenSameLanguageReadsTSVAndAudio(t *testing.T) {
	root := t.TempDir()
	writeMirror(t, root, "hi_in", [][]string{
		fleursRow("1", "a.wav", `वह "कहता" है`, "vah kahta hai"),
		fleursRow("2", "b.wav", "", "normalized only"),
	})
	b, err := localdir.New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := b.Open(context.Background(), dataset.Request{
		SourceLang: "hi_in", TargetLang: "hi_in", Split: "test",
		IncludeSourceAudio: true, IncludeTargetAudio: true,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer stream.Close()

	first, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first.Source().Text() != `वह "कहता" है` {
		t.Fatalf("unexpected transcript %q", first.Source().Text())
	}
	if n := len(first.Target().Waveform().Samples); n != 100 {
		t.Fatalf("unexpected sample count %d", n)
	}
	second, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if second.Target().Text() != "normalized only" {
		t.Fatalf("expected transcription fallback, got %q", second.Target().Text())
	}
	if _, err := stream.Next(context.Background()); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}

func TestOpenCrossLanguage(t *testing.T) {
	root := t.TempDir()
	writeMirror(t, root, "hi_in", [][]string{
		fleursRow("1", "a.wav", "hi one", "hi one"),
		fleursRow("2", "b.wav", "hi two", "hi two"),
	})
	writeMirror(t, root, "ta_in", [][]string{
		fleursRow("2", "x.wav", "ta two", "ta two"),
	})
	b, err := localdir.New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := b.Open(context.Background(), dataset.Request{SourceLang: "hi_in", TargetLang: "ta_in", Split: "test", IncludeTargetAudio: true})
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()
	sample, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if sample.Source().Text() != "hi two" || sample.Target().Text() != "ta two" {
		t.Fatalf("unexpected pair %q/%q", sample.Source().Text(), sample.Target().Text())
	}
	if len(sample.Source().Waveform().Samples) != 0 || len(sample.Target().Waveform().Samples) == 0 {
		t.Fatal("only target audio should be loaded")
	}
}

func TestOpenMissingLanguage(t *testing.T) {
	b, err := localdir.New(t.TempDir(), nil)
	if err != nil {
		t.Fatal(err)
	}
	_, err = b.Open(context.Background(), dataset.Request{SourceLang: "hi_in", TargetLang: "hi_in", Split: "test"})
	if !errors.Is(err, dataset.ErrUnknownLanguage) {
		t.Fatalf("expected ErrUnknownLanguage, got %v", err)
	}
}

func TestMissingAudioFails(t *testing.T) {
	root := t.TempDir()
	writeMirror(t, root, "hi_in", [][]string{fleursRow("1", "a.wav", "x", "x")})
	if err := os.Remove(filepath.Join(root, "hi_in", "audio", "test", "a.wav")); err != nil {
		t.Fatal(err)
	}
	b, err := localdir.New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := b.Open(context.Background(), dataset.Request{SourceLang: "hi_in", TargetLang: "hi_in", Split: "test", IncludeSourceAudio: true})
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()
	if _, err := stream.Next(context.Background()); err == nil {
		t.Fatal("expected error for missing audio file")
	}
}

func TestMalformedRow(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "hi_in")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "test.tsv"), []byte("1\tonly-two\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	b, err := localdir.New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := b.Open(context.Background(), dataset.Request{SourceLang: "hi_in", TargetLang: "hi_in", Split: "test"})
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()
	if _, err := stream.Next(context.Background()); err == nil || !strings.Contains(err.Error(), "columns") {
		t.Fatalf("expected column error, got %v", err)
	}
}

func TestNewRequiresDirectory(t *testing.T) {
	if _, err := localdir.New("", nil); err == nil {
		t.Fatal("expected error for empty root")
	}
	if _, err := localdir.New(filepath.Join(t.TempDir(), "missing"), nil); err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestOpenPreservesPCM16Amplitudes(t *testing.T) {
	root := t.TempDir()
	testsupport.WriteFixtureMirror(t, root, "af_za", "test", 16384, -16384, 8192, 0)
	b, err := localdir.New(root, nil)
	if err != nil {
		t.Fatal(err)
	}
	stream, err := b.Open(context.Background(), dataset.Request{
		SourceLang: "af_za", TargetLang: "af_za", Split: "test",
		IncludeSourceAudio: true, IncludeTargetAudio: true,
	})
	if err != nil {
		t.Fatal(err)
	}
	defer stream.Close()
	sample, err := stream.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []float32{0.5, -0.5, 0.25, 0}
	got := sample.Source().Waveform().Samples
	if len(got) != len(want) {
		t.Fatalf("sample count: got %d want %d", len(got), len(want))
	}
	for i := range want {
		if diff := math.Abs(float64(got[i] - want[i])); diff > 1.0/32768 {
			t.Fatalf("sample %d: got %v want %v", i, got[i], want[i])
		}
	}
}
