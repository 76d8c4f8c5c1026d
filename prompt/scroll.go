package prompt

import "time"

// BaseSpeed is the scroll rate in characters per second at 1x.
const BaseSpeed = 15.0

// tapWindow is how quickly a same-direction arrow tap must follow the
// previous one to climb the speed ladder.
const tapWindow = 300 * time.Millisecond

var tapLadder = [...]float64{1.0, 1.5, 2.0}

// Scroller is the continuous advancement policy: a real-valued offset
// over the flattened script, with velocity and direction. It starts
// paused; motion begins on the first Speed tap or resume. The offset is
// clamped to [0, textLen+viewport]; hitting either bound stops motion.
type Scroller struct {
	textLen  int
	viewport int
	base     float64

	offset     float64
	multiplier float64
	direction  int

	lastMult float64 // multiplier restored on resume
	lastTap  time.Time
	tapCount int
	lastStep time.Time
}

func NewScroller(textLen, viewport int, base float64) *Scroller {
	if base <= 0 {
		base = BaseSpeed
	}
	return &Scroller{
		textLen:   textLen,
		viewport:  viewport,
		base:      base,
		direction: 1,
		lastMult:  tapLadder[0],
	}
}

// Step integrates the offset over the time since the previous step and
// reports whether the offset moved. The first call only establishes the
// time base.
func (p *Scroller) Step(now time.Time) bool {
	if p.lastStep.IsZero() {
		p.lastStep = now
		return false
	}
	dt := now.Sub(p.lastStep).Seconds()
	p.lastStep = now
	if p.multiplier == 0 {
		return false
	}
	prev := p.offset
	p.offset += p.base * p.multiplier * float64(p.direction) * dt
	p.clamp()
	return p.offset != prev
}

func (p *Scroller) clamp() {
	limit := float64(p.textLen + p.viewport)
	if p.offset < 0 {
		p.offset = 0
		p.multiplier = 0
	}
	if p.offset > limit {
		p.offset = limit
		p.multiplier = 0
	}
}

// Apply handles one command. Next (space) toggles pause/resume keeping
// the last speed; Speed climbs the tap ladder while taps of the same
// direction land within tapWindow, and a direction reversal resets the
// ladder to its base step. Prev and everything else are no-ops.
func (p *Scroller) Apply(cmd Command, now time.Time) bool {
	switch cmd.Kind {
	case Next:
		if p.multiplier == 0 {
			p.multiplier = p.lastMult
			if p.multiplier == 0 {
				p.multiplier = tapLadder[0]
			}
		} else {
			p.lastMult = p.multiplier
			p.multiplier = 0
		}
		p.tapCount = 0
		return true
	case Speed:
		if cmd.Dir != 1 && cmd.Dir != -1 {
			return false
		}
		if cmd.Dir != p.direction {
			p.direction = cmd.Dir
			p.tapCount = 1
		} else if now.Sub(p.lastTap) < tapWindow {
			p.tapCount++
		} else {
			p.tapCount = 1
		}
		p.lastTap = now
		step := p.tapCount
		if step > len(tapLadder) {
			step = len(tapLadder)
		}
		p.multiplier = tapLadder[step-1]
		p.lastMult = p.multiplier
		return true
	}
	return false
}

func (p *Scroller) Offset() float64 { return p.offset }

func (p *Scroller) Paused() bool { return p.multiplier == 0 }

func (p *Scroller) View() ScrollView {
	limit := float64(p.textLen + p.viewport)
	progress := 0.0
	if limit > 0 {
		progress = p.offset / limit
	}
	return ScrollView{
		Offset:     p.offset,
		Progress:   progress,
		Multiplier: p.multiplier,
		Direction:  p.direction,
		Paused:     p.multiplier == 0,
	}
}
