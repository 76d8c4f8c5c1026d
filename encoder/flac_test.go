package encoder

import (
	"encoding/binary"
	"math"
	"testing"
)

func genTonePCM(freq float64, durationMs int) []byte {
	n := SampleRate * durationMs / 1000
	buf := make([]byte, n*2)
	for i := 0; i < n; i++ {
		sample := int16(12000 * math.Sin(2*math.Pi*freq*float64(i)/SampleRate))
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(sample))
	}
	return buf
}

func TestEncodeFLAC(t *testing.T) {
	pcm := genTonePCM(440, 500)

	data, err := EncodeFLAC(pcm)
	if err != nil {
		t.Fatalf("EncodeFLAC: %v", err)
	}
	if len(data) < 4 || string(data[:4]) != "fLaC" {
		t.Fatal("output does not start with FLAC magic")
	}
	t.Logf("raw: %d bytes, flac: %d bytes (%.1f%% compression)",
		len(pcm), len(data), (1-float64(len(data))/float64(len(pcm)))*100)
}

func TestEncodeFLACPartialBlock(t *testing.T) {
	// 100ms is well under one BlockSize; the partial block must still
	// be flushed.
	pcm := genTonePCM(200, 100)
	data, err := EncodeFLAC(pcm)
	if err != nil {
		t.Fatalf("EncodeFLAC: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("empty output")
	}
}

func TestFlacEncoderTotalFrames(t *testing.T) {
	enc, err := NewFlac()
	if err != nil {
		t.Fatalf("NewFlac: %v", err)
	}
	block := make([]int16, BlockSize)
	if err := enc.EncodeBlock(block); err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if err := enc.EncodeBlock(block[:100]); err != nil {
		t.Fatalf("EncodeBlock: %v", err)
	}
	if err := enc.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got, want := enc.TotalFrames(), uint64(BlockSize+100); got != want {
		t.Errorf("TotalFrames = %d, want %d", got, want)
	}
}
