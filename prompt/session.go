package prompt

import (
	"sync"
	"sync/atomic"
)

// Session is the only state shared between the input sources and the
// engine: the command channel both sources push into, the voice-enabled
// flag, the expected-unit mailbox the voice source matches against, and
// the stop signal every loop watches.
type Session struct {
	cmds     chan Command
	voice    atomic.Bool
	expected atomic.Pointer[string]
	stop     chan struct{}
	stopOnce sync.Once
}

func NewSession(voice bool) *Session {
	s := &Session{
		cmds: make(chan Command, 8),
		stop: make(chan struct{}),
	}
	s.voice.Store(voice)
	empty := ""
	s.expected.Store(&empty)
	return s
}

// Push delivers a command to the engine. Returns false once the session
// has stopped; it never blocks past the stop signal.
func (s *Session) Push(cmd Command) bool {
	select {
	case <-s.stop:
		return false
	case s.cmds <- cmd:
		return true
	}
}

func (s *Session) VoiceEnabled() bool { return s.voice.Load() }

func (s *Session) SetVoiceEnabled(on bool) { s.voice.Store(on) }

// ToggleVoice flips the flag and returns the new value.
func (s *Session) ToggleVoice() bool {
	for {
		cur := s.voice.Load()
		if s.voice.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}

// SetExpected replaces the pending expected unit. Single slot: a stale
// unit is overwritten, never queued.
func (s *Session) SetExpected(unit string) {
	s.expected.Store(&unit)
}

// Expected returns the unit the speaker should currently be reading,
// or "" when there is none (done, or scrolling).
func (s *Session) Expected() string {
	return *s.expected.Load()
}

// Stop fires the shared stop signal. Safe to call more than once; the
// signal is never unset.
func (s *Session) Stop() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *Session) Stopped() <-chan struct{} { return s.stop }
