package voice

import (
	"sync"
	"time"

	webrtcvad "github.com/maxhawkins/go-webrtcvad"

	"cue/encoder"
)

const (
	vadMode       = 3
	vadFrameMs    = 20
	vadFrameBytes = encoder.SampleRate * vadFrameMs / 1000 * 2 // 640 bytes
	vadDebounce   = 3                                          // consecutive speech frames to confirm voice
)

// vadProcessor classifies incoming PCM into speech/non-speech frames
// and tracks when speech first started and was last heard.
type vadProcessor struct {
	vad *webrtcvad.VAD

	mu         sync.Mutex
	buf        []byte
	detected   bool
	speechRun  int
	firstVoice time.Time
	lastVoice  time.Time
}

func newVADProcessor() (*vadProcessor, error) {
	v, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	if err := v.SetMode(vadMode); err != nil {
		return nil, err
	}
	return &vadProcessor{vad: v}, nil
}

// Process consumes PCM in arbitrary chunk sizes, classifying every
// complete 20ms frame. Partial frames stay buffered for the next call.
func (p *vadProcessor) Process(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.buf = append(p.buf, data...)
	for len(p.buf) >= vadFrameBytes {
		frame := p.buf[:vadFrameBytes]
		p.buf = p.buf[vadFrameBytes:]

		active, err := p.vad.Process(encoder.SampleRate, frame)
		if err != nil {
			continue
		}
		if !active {
			p.speechRun = 0
			continue
		}
		p.speechRun++
		if p.detected {
			p.lastVoice = time.Now()
		} else if p.speechRun >= vadDebounce {
			p.detected = true
			now := time.Now()
			p.firstVoice = now
			p.lastVoice = now
		}
	}
}

func (p *vadProcessor) VoiceDetected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detected
}

func (p *vadProcessor) FirstVoice() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.firstVoice
}

func (p *vadProcessor) LastVoice() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastVoice
}

func (p *vadProcessor) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf = p.buf[:0]
	p.detected = false
	p.speechRun = 0
	p.firstVoice = time.Time{}
	p.lastVoice = time.Time{}
}
