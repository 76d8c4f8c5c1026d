package prompt

import (
	"testing"
	"time"
)

var t0 = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestScrollerStartsPaused(t *testing.T) {
	p := NewScroller(100, 20, 10)

	if !p.Paused() {
		t.Fatal("fresh scroller should be paused")
	}
	p.Step(t0)
	if p.Step(t0.Add(time.Second)) || p.Offset() != 0 {
		t.Fatalf("offset = %v before any command, want 0", p.Offset())
	}

	// the first tap sets the text in motion at the base speed
	p.Apply(Command{Kind: Speed, Dir: 1}, t0.Add(time.Second))
	if p.Paused() || p.View().Multiplier != 1.0 {
		t.Fatalf("after first tap multiplier = %v, want 1", p.View().Multiplier)
	}

	// space from the initial pause also starts at the base speed
	p2 := NewScroller(100, 20, 10)
	p2.Apply(Command{Kind: Next}, t0)
	if p2.Paused() || p2.View().Multiplier != 1.0 {
		t.Fatalf("resume from start multiplier = %v, want 1", p2.View().Multiplier)
	}
}

func TestScrollerStep(t *testing.T) {
	p := NewScroller(100, 20, 10)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0)

	// first call only establishes the time base
	if p.Step(t0) {
		t.Fatal("first Step should not move")
	}
	if !p.Step(t0.Add(time.Second)) {
		t.Fatal("second Step should move")
	}
	if got := p.Offset(); got < 9.99 || got > 10.01 {
		t.Fatalf("offset = %v, want 10", got)
	}

	// half a second more at 1x
	p.Step(t0.Add(1500 * time.Millisecond))
	if got := p.Offset(); got < 14.99 || got > 15.01 {
		t.Fatalf("offset = %v, want 15", got)
	}
}

func TestScrollerClampForward(t *testing.T) {
	p := NewScroller(100, 20, 10)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0)
	p.Step(t0)
	p.Step(t0.Add(time.Hour))

	if got := p.Offset(); got != 120 {
		t.Fatalf("offset = %v, want clamped 120", got)
	}
	if !p.Paused() {
		t.Fatal("hitting the end should stop motion")
	}
	if p.Step(t0.Add(2 * time.Hour)) {
		t.Fatal("Step at the bound should not move")
	}
}

func TestScrollerClampBackward(t *testing.T) {
	p := NewScroller(100, 20, 10)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0)
	p.Step(t0)
	p.Step(t0.Add(2 * time.Second)) // offset 20

	p.Apply(Command{Kind: Speed, Dir: -1}, t0.Add(2*time.Second))
	p.Step(t0.Add(time.Hour))

	if got := p.Offset(); got != 0 {
		t.Fatalf("offset = %v, want clamped 0", got)
	}
	if !p.Paused() {
		t.Fatal("hitting the start should stop motion")
	}
}

func TestScrollerTapLadder(t *testing.T) {
	p := NewScroller(1000, 20, 10)

	taps := []struct {
		at   time.Duration
		want float64
	}{
		{0, 1.0},
		{100 * time.Millisecond, 1.5},
		{200 * time.Millisecond, 2.0},
		{300 * time.Millisecond, 2.0}, // ladder tops out
	}
	for _, tap := range taps {
		p.Apply(Command{Kind: Speed, Dir: 1}, t0.Add(tap.at))
		if p.View().Multiplier != tap.want {
			t.Fatalf("after tap at %v multiplier = %v, want %v",
				tap.at, p.View().Multiplier, tap.want)
		}
	}

	// a tap after the window falls back to the base step
	p.Apply(Command{Kind: Speed, Dir: 1}, t0.Add(time.Second))
	if p.View().Multiplier != 1.0 {
		t.Fatalf("slow tap multiplier = %v, want 1", p.View().Multiplier)
	}
}

func TestScrollerDirectionReversal(t *testing.T) {
	p := NewScroller(1000, 20, 10)

	p.Apply(Command{Kind: Speed, Dir: 1}, t0)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0.Add(100*time.Millisecond))
	if p.View().Multiplier != 1.5 {
		t.Fatalf("multiplier = %v, want 1.5", p.View().Multiplier)
	}

	// reversing resets the ladder even within the tap window
	p.Apply(Command{Kind: Speed, Dir: -1}, t0.Add(150*time.Millisecond))
	v := p.View()
	if v.Direction != -1 || v.Multiplier != 1.0 {
		t.Fatalf("after reversal direction=%d multiplier=%v", v.Direction, v.Multiplier)
	}
}

func TestScrollerPauseResume(t *testing.T) {
	p := NewScroller(1000, 20, 10)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0.Add(100*time.Millisecond)) // 1.5x

	if !p.Apply(Command{Kind: Next}, t0.Add(time.Second)) {
		t.Fatal("pause reported no change")
	}
	if !p.Paused() {
		t.Fatal("not paused after Next")
	}

	p.Step(t0.Add(time.Second))
	if p.Step(t0.Add(2 * time.Second)) {
		t.Fatal("Step while paused should not move")
	}

	p.Apply(Command{Kind: Next}, t0.Add(3*time.Second))
	if p.View().Multiplier != 1.5 {
		t.Fatalf("resume multiplier = %v, want 1.5", p.View().Multiplier)
	}
}

func TestScrollerIgnoresOtherCommands(t *testing.T) {
	p := NewScroller(1000, 20, 10)
	for _, cmd := range []Command{
		{Kind: Prev},
		{Kind: Speed, Dir: 0},
		{Kind: Speed, Dir: 2},
	} {
		if p.Apply(cmd, t0) {
			t.Errorf("%+v should be a no-op", cmd)
		}
	}
}

func TestScrollerProgress(t *testing.T) {
	p := NewScroller(80, 20, 10)
	p.Apply(Command{Kind: Speed, Dir: 1}, t0)
	p.Step(t0)
	p.Step(t0.Add(5 * time.Second)) // offset 50 of limit 100

	v := p.View()
	if v.Progress < 0.49 || v.Progress > 0.51 {
		t.Fatalf("progress = %v, want 0.5", v.Progress)
	}
}
