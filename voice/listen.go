package voice

import (
	"errors"
	"sync"
	"time"
)

var (
	errNoSpeech = errors.New("no speech in capture window")
	errStopped  = errors.New("session stopped")
)

// tickInterval paces the endpointing checks. Every blocking wait in the
// listen loop is bounded by it, so a stop is observed within one tick.
const tickInterval = 100 * time.Millisecond

// listen performs one bounded capture attempt. The clip ends when the
// speaker has been silent for PauseThreshold after saying something, or
// when MaxPhrase of speech has accumulated. errNoSpeech when
// ListenTimeout passes without any detected voice.
func (s *Source) listen() ([]byte, error) {
	if s.vad == nil {
		vp, err := newVADProcessor()
		if err != nil {
			return nil, err
		}
		s.vad = vp
	} else {
		s.vad.Reset()
	}
	vp := s.vad

	var mu sync.Mutex
	var pcm []byte

	s.capture.SetCallback(func(data []byte, _ uint32) {
		mu.Lock()
		pcm = append(pcm, data...)
		mu.Unlock()
		vp.Process(data)
	})
	defer s.capture.ClearCallback()

	if err := s.capture.Start(); err != nil {
		return nil, err
	}
	defer s.capture.Stop()

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-s.sess.Stopped():
			return nil, errStopped
		case now := <-ticker.C:
			if !s.sess.VoiceEnabled() {
				// toggled off mid-capture; discard the clip
				return nil, errNoSpeech
			}
			if !vp.VoiceDetected() {
				if now.Sub(start) >= s.cfg.ListenTimeout {
					return nil, errNoSpeech
				}
				continue
			}
			if now.Sub(vp.LastVoice()) >= s.cfg.PauseThreshold ||
				now.Sub(vp.FirstVoice()) >= s.cfg.MaxPhrase {
				mu.Lock()
				clip := pcm
				pcm = nil
				mu.Unlock()
				return clip, nil
			}
		}
	}
}
