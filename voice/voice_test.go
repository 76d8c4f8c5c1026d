package voice

import (
	"errors"
	"testing"
	"time"

	"cue/audio"
	"cue/prompt"
	"cue/transcriber"
)

func fakeCapture(t *testing.T) audio.CaptureDevice {
	t.Helper()
	ctx := audio.NewFakePCMContext(nil, time.Millisecond)
	capture, err := ctx.NewCapture(nil, audio.CaptureConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return capture
}

func TestShouldAdvanceWordCount(t *testing.T) {
	sess := prompt.NewSession(true)
	s := New(sess, nil, nil, Config{MinWords: 3})

	tests := []struct {
		text string
		want bool
	}{
		{"one two three", true},
		{"one two three four", true},
		{"one two", false},
		{"", false},
		{"um...", false},
	}
	for _, tt := range tests {
		if got := s.shouldAdvance(tt.text); got != tt.want {
			t.Errorf("shouldAdvance(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestShouldAdvanceRequireMatch(t *testing.T) {
	sess := prompt.NewSession(true)
	s := New(sess, nil, nil, Config{RequireMatch: true, MatchThreshold: 0.4})

	sess.SetExpected("The quick brown fox jumps over the lazy dog")

	tests := []struct {
		text string
		want bool
	}{
		{"the quick brown fox jumps", true},
		{"the Quick, brown FOX!", true},
		{"completely unrelated words here", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := s.shouldAdvance(tt.text); got != tt.want {
			t.Errorf("shouldAdvance(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}

	// no expected unit means nothing to match against
	sess.SetExpected("")
	if s.shouldAdvance("the quick brown fox jumps") {
		t.Error("shouldAdvance with empty expected unit should be false")
	}
}

func TestHandleTranscript(t *testing.T) {
	sess := prompt.NewSession(true)
	s := New(sess, nil, nil, Config{MinWords: 3})

	if s.handleTranscript("too short", 0) {
		t.Error("short utterance should not push")
	}
	if !s.handleTranscript("long enough to advance", 0) {
		t.Error("long utterance should push Next")
	}

	sess.Stop()
	if s.handleTranscript("long enough to advance", 0) {
		t.Error("push after stop should fail")
	}
}

func TestBump(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{time.Second, 2 * time.Second},
		{2 * time.Second, 4 * time.Second},
		{4 * time.Second, maxBackoff},
		{maxBackoff, maxBackoff},
	}
	for _, tt := range tests {
		if got := bump(tt.in); got != tt.want {
			t.Errorf("bump(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestListenReusesProcessor(t *testing.T) {
	sess := prompt.NewSession(true)
	s := New(sess, fakeCapture(t), transcriber.NewFake(nil), Config{ListenTimeout: 50 * time.Millisecond})

	if _, err := s.listen(); !errors.Is(err, errNoSpeech) {
		t.Fatalf("first listen err = %v, want errNoSpeech", err)
	}
	first := s.vad
	if first == nil {
		t.Fatal("processor not retained after first listen")
	}

	if _, err := s.listen(); !errors.Is(err, errNoSpeech) {
		t.Fatalf("second listen err = %v, want errNoSpeech", err)
	}
	if s.vad != first {
		t.Fatal("processor rebuilt instead of reset between attempts")
	}
	if s.vad.VoiceDetected() {
		t.Fatal("detection state leaked across attempts")
	}
}

func TestRunStopsOnSessionStop(t *testing.T) {
	sess := prompt.NewSession(true)
	s := New(sess, fakeCapture(t), transcriber.NewFake(nil), Config{ListenTimeout: 100 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	time.Sleep(50 * time.Millisecond)
	sess.Stop()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after session stop")
	}
}

func TestRunSilenceNeverTranscribes(t *testing.T) {
	sess := prompt.NewSession(true)
	rec := transcriber.NewFake(nil, "should never be used")
	s := New(sess, fakeCapture(t), rec, Config{ListenTimeout: 100 * time.Millisecond})

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	// several listen windows worth of pure silence
	time.Sleep(400 * time.Millisecond)
	sess.Stop()
	<-done

	if rec.Calls() != 0 {
		t.Fatalf("transcriber called %d times on silence", rec.Calls())
	}
}

func TestRunIdlesWhileVoiceDisabled(t *testing.T) {
	sess := prompt.NewSession(false)
	rec := transcriber.NewFake(nil, "should never be used")
	s := New(sess, fakeCapture(t), rec, Config{})

	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	time.Sleep(300 * time.Millisecond)
	sess.Stop()
	<-done

	if rec.Calls() != 0 {
		t.Fatalf("transcriber called %d times while voice disabled", rec.Calls())
	}
}
