package prompt

// StepState tracks where the discrete cursor is in its lifecycle.
type StepState int

const (
	StepActive StepState = iota
	StepDone             // cursor ran past the last unit
	StepExited           // quit; no further commands are applied
)

// Stepper is the discrete advancement policy: an integer cursor over
// the ordered script units. The cursor index satisfies
// 0 <= index <= len(units); index == len(units) means done.
type Stepper struct {
	units []string
	index int
	state StepState
}

func NewStepper(units []string) *Stepper {
	return &Stepper{units: units}
}

// Apply mutates the cursor for one command and reports whether the
// visible state changed. Prev at the first unit is a no-op, as are
// Next and Prev once done.
func (p *Stepper) Apply(cmd Command) bool {
	if p.state == StepExited {
		return false
	}
	switch cmd.Kind {
	case Quit:
		p.state = StepExited
		return true
	case Next:
		if p.state == StepDone {
			return false
		}
		p.index++
		if p.index >= len(p.units) {
			p.index = len(p.units)
			p.state = StepDone
		}
		return true
	case Prev:
		if p.state == StepDone || p.index == 0 {
			return false
		}
		p.index--
		return true
	}
	return false
}

func (p *Stepper) State() StepState { return p.state }

func (p *Stepper) Index() int { return p.index }

// Expected is the unit the speaker should be reading, "" once the
// cursor has left the active range.
func (p *Stepper) Expected() string {
	if p.state != StepActive {
		return ""
	}
	return p.units[p.index]
}

func (p *Stepper) View() StepView {
	v := StepView{
		Index: p.index,
		Total: len(p.units),
		Done:  p.state == StepDone,
	}
	if p.state == StepActive {
		v.Unit = p.units[p.index]
	}
	return v
}
