// Package voice turns spoken input into advancement commands. It owns
// the microphone for the lifetime of the session and is the only
// component that talks to the speech backend.
package voice

import (
	"context"
	"errors"
	"time"

	"cue/audio"
	"cue/log"
	"cue/match"
	"cue/prompt"
	"cue/transcriber"
)

type Config struct {
	MinWords       int           // utterance length that counts as "said something"
	MatchThreshold float64       // fraction of expected words required
	RequireMatch   bool          // match against the current unit instead of counting words
	PauseThreshold time.Duration // silence that ends a phrase
	MaxPhrase      time.Duration // hard cap on one phrase
	ListenTimeout  time.Duration // give up waiting for speech after this long
}

func (c Config) withDefaults() Config {
	if c.MinWords <= 0 {
		c.MinWords = 3
	}
	if c.MatchThreshold <= 0 {
		c.MatchThreshold = match.DefaultThreshold
	}
	if c.PauseThreshold <= 0 {
		c.PauseThreshold = time.Second
	}
	if c.MaxPhrase <= 0 {
		c.MaxPhrase = 10 * time.Second
	}
	if c.ListenTimeout <= 0 {
		c.ListenTimeout = 30 * time.Second
	}
	return c
}

// Source is the voice input source. It captures one phrase at a time,
// transcribes it, and pushes Next when the transcript passes the active
// decision rule.
type Source struct {
	sess    *prompt.Session
	capture audio.CaptureDevice
	rec     transcriber.Transcriber
	cfg     Config
	vad     *vadProcessor // built on first listen, reset between attempts
}

func New(sess *prompt.Session, capture audio.CaptureDevice, rec transcriber.Transcriber, cfg Config) *Source {
	return &Source{sess: sess, capture: capture, rec: rec, cfg: cfg.withDefaults()}
}

const (
	idleInterval   = 200 * time.Millisecond
	initialBackoff = time.Second
	maxBackoff     = 5 * time.Second
)

// Run loops until the session stops. Unrecognized clips are dropped as
// background noise. Backend errors back off and retry; they never
// advance the cursor, so a flaky network cannot push the speaker ahead.
func (s *Source) Run() {
	backoff := initialBackoff
	for {
		select {
		case <-s.sess.Stopped():
			return
		default:
		}

		if !s.sess.VoiceEnabled() {
			if !s.sleep(idleInterval) {
				return
			}
			continue
		}

		clip, err := s.listen()
		switch {
		case errors.Is(err, errStopped):
			return
		case errors.Is(err, errNoSpeech):
			continue
		case err != nil:
			log.Errorf("capture error: %v", err)
			if !s.sleep(backoff) {
				return
			}
			backoff = bump(backoff)
			continue
		}

		started := time.Now()
		text, err := s.transcribe(clip)
		latency := time.Since(started)
		switch {
		case errors.Is(err, transcriber.ErrNoSpeech):
			continue
		case err != nil:
			log.Warnf("transcription error: %v", err)
			if !s.sleep(backoff) {
				return
			}
			backoff = bump(backoff)
			continue
		}
		backoff = initialBackoff

		log.Transcript(text)
		s.handleTranscript(text, latency)
	}
}

// handleTranscript applies the decision rule and pushes at most one
// Next. Returns whether a command was pushed.
func (s *Source) handleTranscript(text string, latency time.Duration) bool {
	advance := s.shouldAdvance(text)
	log.Advance(len(match.Words(text)), advance, latency)
	if !advance {
		return false
	}
	return s.sess.Push(prompt.Command{Kind: prompt.Next})
}

func (s *Source) shouldAdvance(text string) bool {
	if s.cfg.RequireMatch {
		expected := s.sess.Expected()
		if expected == "" {
			return false
		}
		return match.IsMatch(text, expected, s.cfg.MatchThreshold)
	}
	return match.WordCountAtLeast(text, s.cfg.MinWords)
}

// transcribe uploads the clip with a context that dies with the session,
// so a Quit is never stuck behind a slow backend call.
func (s *Source) transcribe(clip []byte) (string, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		select {
		case <-s.sess.Stopped():
			cancel()
		case <-ctx.Done():
		}
	}()
	return s.rec.Transcribe(ctx, clip)
}

func (s *Source) sleep(d time.Duration) bool {
	select {
	case <-s.sess.Stopped():
		return false
	case <-time.After(d):
		return true
	}
}

func bump(d time.Duration) time.Duration {
	d *= 2
	if d > maxBackoff {
		return maxBackoff
	}
	return d
}
