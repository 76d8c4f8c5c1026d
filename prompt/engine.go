package prompt

import "time"

// StepView is what the presentation layer gets after each discrete
// state change.
type StepView struct {
	Unit  string
	Index int
	Total int
	Done  bool
	Voice bool
}

// ScrollView is the per-tick snapshot of the continuous policy.
type ScrollView struct {
	Offset     float64
	Progress   float64
	Multiplier float64
	Direction  int
	Paused     bool
}

// Sink receives state snapshots from the engine. Implementations must
// return quickly; the terminal UI forwards to its message loop.
type Sink interface {
	Step(StepView)
	Scroll(ScrollView)
}

const (
	stepTick   = 50 * time.Millisecond
	scrollTick = 16 * time.Millisecond
)

// Engine is the sole consumer of the command stream. It blocks only on
// its bounded channel receive, so the stop signal and periodic work are
// observed within one tick.
type Engine struct {
	sess     *Session
	sink     Sink
	step     *Stepper
	scroll   *Scroller
	interval time.Duration
}

func NewStepEngine(sess *Session, sink Sink, policy *Stepper) *Engine {
	return &Engine{sess: sess, sink: sink, step: policy, interval: stepTick}
}

func NewScrollEngine(sess *Session, sink Sink, policy *Scroller) *Engine {
	return &Engine{sess: sess, sink: sink, scroll: policy, interval: scrollTick}
}

// Run consumes commands until Quit or the session stop signal. It always
// fires the stop signal on the way out so the input sources wind down.
func (e *Engine) Run() {
	defer e.sess.Stop()

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	e.publish()
	e.render()
	for {
		select {
		case <-e.sess.Stopped():
			return
		case cmd := <-e.sess.cmds:
			if e.consume(cmd) {
				return
			}
		case now := <-ticker.C:
			if e.scroll != nil && e.scroll.Step(now) {
				e.render()
			}
		}
	}
}

// consume applies one command; true means the engine should exit.
func (e *Engine) consume(cmd Command) bool {
	switch cmd.Kind {
	case Quit:
		if e.step != nil {
			e.step.Apply(cmd)
		}
		return true
	case ToggleVoice:
		// Scrolling is manual-only; the flag stays off there.
		if e.step != nil {
			e.sess.ToggleVoice()
			e.render()
		}
		return false
	}

	var changed bool
	if e.step != nil {
		changed = e.step.Apply(cmd)
	} else {
		changed = e.scroll.Apply(cmd, time.Now())
	}
	if changed {
		e.publish()
		e.render()
	}
	return false
}

// publish refreshes the expected-unit mailbox for the voice source.
func (e *Engine) publish() {
	if e.step != nil {
		e.sess.SetExpected(e.step.Expected())
	}
}

func (e *Engine) render() {
	if e.step != nil {
		v := e.step.View()
		v.Voice = e.sess.VoiceEnabled()
		e.sink.Step(v)
		return
	}
	e.sink.Scroll(e.scroll.View())
}
