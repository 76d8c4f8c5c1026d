// Package audio abstracts microphone capture. The prompter only ever
// needs one mono PCM16 stream; backends are PulseAudio on Linux and
// miniaudio elsewhere, plus a fake fed from canned PCM for tests.
package audio

import "strings"

// WAVHeaderSize is the canonical RIFF header length; the fake backend
// skips it when fed a WAV file.
const WAVHeaderSize = 44

var btKeywords = []string{
	"airpods", "beats", "bose", "jabra", "galaxy buds", "pixel buds",
	"sony wh-", "sony wf-", "wh-1000", "wf-1000",
	"bluetooth", " bt ", " bt)", " bt]",
}

// IsBluetooth guesses from the device name whether a microphone is a
// Bluetooth headset. BT mics trade capture quality for range, so the
// picker flags them.
func IsBluetooth(name string) bool {
	lower := strings.ToLower(name)
	for _, kw := range btKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// DataCallback receives raw little-endian PCM16 frames as they arrive.
type DataCallback func(data []byte, frameCount uint32)

type CaptureConfig struct {
	SampleRate uint32
	Channels   uint32
}

type DeviceInfo struct {
	ID   string // opaque platform-specific identifier
	Name string
}

type Context interface {
	Devices() ([]DeviceInfo, error)
	NewCapture(device *DeviceInfo, config CaptureConfig) (CaptureDevice, error)
	Close()
}

type CaptureDevice interface {
	Start() error
	Stop()
	Close()
	SetCallback(cb DataCallback)
	ClearCallback()
	DeviceName() string
}
