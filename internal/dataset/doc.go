// Package dataset defines the contract between the exporter and whatever
// fetches paired speech-to-speech samples.
//
// A Builder opens a Stream of Samples for a language pair and split. Each
// Sample carries a source and a target Side with a waveform, transcript, and
// language tag. The exporter depends only on these interfaces; the hfrows and
// localdir subpackages provide concrete adapters.
package dataset
