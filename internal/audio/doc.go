// Package audio persists and loads dataset waveforms.
//
// Two persistence formats exist. FormatRaw writes the waveform's float32
// samples back to back in little-endian order with no header; the files carry
// a .wav name but are not RIFF containers and players will reject them.
// FormatWAV writes a proper RIFF/WAVE PCM16 file with the waveform's sample
// rate and channel count. Decoding always expects a RIFF/WAVE PCM input.
package audio
