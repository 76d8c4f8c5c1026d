// Package encoder compresses captured PCM16 clips for upload to the
// speech backend.
package encoder

const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 4096
)
