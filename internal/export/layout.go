package export

import (
	"fmt"
	"path/filepath"
)

const (
	sourceAudioDir = "source_audio"
	targetAudioDir = "target_audio"
	sourceTextDir  = "source_text"
	targetTextDir  = "target_text"
)

// Layout is the output tree for one language.
type Layout struct {
	Root        string
	SourceAudio string
	TargetAudio string
	SourceText  string
	TargetText  string
}

// NewLayout computes the layout for lang under outputRoot.
func NewLayout(outputRoot, lang string) Layout {
	root := filepath.Join(outputRoot, lang)
	return Layout{
		Root:        root,
		SourceAudio: filepath.Join(root, sourceAudioDir),
		TargetAudio: filepath.Join(root, targetAudioDir),
		SourceText:  filepath.Join(root, sourceTextDir),
		TargetText:  filepath.Join(root, targetTextDir),
	}
}

// Dirs lists the five directories of the layout, root first.
func (l Layout) Dirs() []string {
	return []string{l.Root, l.SourceAudio, l.TargetText, l.SourceText, l.TargetAudio}
}

func (l Layout) SourceAudioPath(i int) string {
	return filepath.Join(l.SourceAudio, fmt.Sprintf("source_%d.wav", i))
}

func (l Layout) TargetAudioPath(i int) string {
	return filepath.Join(l.TargetAudio, fmt.Sprintf("target_%d.wav", i))
}

func (l Layout) SourceTextPath(i int) string {
	return filepath.Join(l.SourceText, fmt.Sprintf("source_%d.txt", i))
}

func (l Layout) TargetTextPath(i int) string {
	return filepath.Join(l.TargetText, fmt.Sprintf("target_%d.txt", i))
}
