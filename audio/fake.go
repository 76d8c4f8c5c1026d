package audio

import (
	"bytes"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

const (
	fakeFrameSize     = 320 // 20ms at 16kHz
	fakeBytesPerFrame = 2   // 16-bit mono
)

// FakeContext feeds canned PCM to the capture callback, then silence,
// so tests and headless runs exercise the real capture loop without a
// microphone.
type FakeContext struct {
	pcm      []byte
	interval time.Duration
}

// NewFakeContext loads PCM from a file. A RIFF header, when present,
// is skipped. interval is the pacing between chunks; zero means 1ms
// (fast replay for tests).
func NewFakeContext(path string, interval time.Duration) (*FakeContext, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewFakePCMContext(data, interval), nil
}

// NewFakePCMContext wraps in-memory PCM.
func NewFakePCMContext(pcm []byte, interval time.Duration) *FakeContext {
	if bytes.HasPrefix(pcm, []byte("RIFF")) && len(pcm) > WAVHeaderSize {
		pcm = pcm[WAVHeaderSize:]
	}
	if interval <= 0 {
		interval = time.Millisecond
	}
	return &FakeContext{pcm: pcm, interval: interval}
}

func (f *FakeContext) Devices() ([]DeviceInfo, error) {
	return []DeviceInfo{{ID: "fake", Name: "fake"}}, nil
}

func (f *FakeContext) NewCapture(_ *DeviceInfo, _ CaptureConfig) (CaptureDevice, error) {
	return &FakeCapture{pcm: f.pcm, interval: f.interval}, nil
}

func (f *FakeContext) Close() {}

// FakeCapture replays its PCM once per Start, then keeps emitting
// silence until Stop. Start/Stop may be cycled; each Start replays
// from the beginning.
type FakeCapture struct {
	pcm      []byte
	interval time.Duration
	callback atomic.Pointer[DataCallback]

	mu       sync.Mutex
	stopCh   chan struct{}
	feedDone chan struct{}
}

func (f *FakeCapture) SetCallback(cb DataCallback) {
	f.callback.Store(&cb)
}

func (f *FakeCapture) ClearCallback() {
	f.callback.Store(nil)
}

func (f *FakeCapture) DeviceName() string { return "fake" }

func (f *FakeCapture) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.stopCh = make(chan struct{})
	f.feedDone = make(chan struct{})
	stopCh, feedDone := f.stopCh, f.feedDone

	chunkBytes := fakeFrameSize * fakeBytesPerFrame
	silence := make([]byte, chunkBytes)

	go func() {
		defer close(feedDone)
		pos := 0
		for {
			select {
			case <-stopCh:
				return
			case <-time.After(f.interval):
			}
			cb := f.callback.Load()
			if cb == nil {
				continue
			}
			if pos < len(f.pcm) {
				end := min(pos+chunkBytes, len(f.pcm))
				chunk := make([]byte, end-pos)
				copy(chunk, f.pcm[pos:end])
				pos = end
				(*cb)(chunk, uint32(len(chunk)/fakeBytesPerFrame))
			} else {
				(*cb)(silence, fakeFrameSize)
			}
		}
	}()
	return nil
}

func (f *FakeCapture) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.stopCh == nil {
		return
	}
	select {
	case <-f.stopCh:
	default:
		close(f.stopCh)
	}
	<-f.feedDone
	f.stopCh = nil
}

func (f *FakeCapture) Close() {
	f.Stop()
}
