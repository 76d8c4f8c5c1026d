package prompt

import "testing"

func TestSessionPushAfterStop(t *testing.T) {
	s := NewSession(false)
	if !s.Push(Command{Kind: Next}) {
		t.Fatal("Push before stop failed")
	}
	s.Stop()
	s.Stop() // idempotent
	if s.Push(Command{Kind: Next}) {
		t.Fatal("Push after stop should return false")
	}
	select {
	case <-s.Stopped():
	default:
		t.Fatal("Stopped channel not closed")
	}
}

func TestSessionPushNeverBlocksPastStop(t *testing.T) {
	s := NewSession(false)
	// fill the channel, nobody consuming
	for i := 0; i < 64; i++ {
		go s.Push(Command{Kind: Next})
	}
	s.Stop()
	// a fresh push on a full, stopped session must return
	if s.Push(Command{Kind: Next}) {
		t.Fatal("Push after stop should return false")
	}
}

func TestSessionVoiceToggle(t *testing.T) {
	s := NewSession(true)
	if !s.VoiceEnabled() {
		t.Fatal("voice should start enabled")
	}
	if s.ToggleVoice() {
		t.Fatal("toggle should report disabled")
	}
	if s.VoiceEnabled() {
		t.Fatal("voice still enabled after toggle")
	}
	if !s.ToggleVoice() {
		t.Fatal("toggle should report enabled")
	}
}

func TestSessionExpectedMailbox(t *testing.T) {
	s := NewSession(false)
	if s.Expected() != "" {
		t.Fatalf("initial expected = %q", s.Expected())
	}
	s.SetExpected("first unit")
	s.SetExpected("second unit")
	if s.Expected() != "second unit" {
		t.Fatalf("expected = %q, stale value not overwritten", s.Expected())
	}
}
