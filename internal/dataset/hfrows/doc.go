// Package hfrows streams FLEURS samples from the Hugging Face datasets-server
// rows API.
//
// Pages of up to 100 rows are requested lazily as the stream is consumed.
// Audio cells are downloaded and decoded from WAV only for the sides a
// request asks for. An optional Cache short-circuits page and audio
// downloads on repeated runs.
package hfrows
