// Package export writes paired speech-to-speech samples to a per-language
// directory tree.
//
// For each language the Exporter prepares
//
//	<output_root>/<lang>/{source_audio,target_audio,source_text,target_text}
//
// opens a dataset stream scoped to that language as both source and target,
// and writes sample i to source_audio/source_i.wav, target_audio/target_i.wav,
// source_text/source_i.txt, and target_text/target_i.txt until the per-language
// limit is reached or the stream runs dry. Existing files with the same names
// are overwritten; files with higher indices from earlier, larger runs are
// left in place.
//
// Languages run strictly one after another. The first fetch or write error
// aborts the run; output already written stays on disk.
package export
