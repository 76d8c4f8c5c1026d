// Package prompt owns the advancement state of a running session: the
// command stream merged from the keyboard and voice sources, and the two
// policies that apply commands to a cursor over the script.
package prompt

// Kind identifies an advancement or control command.
type Kind int

const (
	Next Kind = iota
	Prev
	Quit
	ToggleVoice
	Speed
)

func (k Kind) String() string {
	switch k {
	case Next:
		return "next"
	case Prev:
		return "prev"
	case Quit:
		return "quit"
	case ToggleVoice:
		return "toggle-voice"
	case Speed:
		return "speed"
	}
	return "unknown"
}

// Command is a single instruction produced by an input source and
// consumed exactly once by the engine. Dir is ±1 and only meaningful
// for Speed.
type Command struct {
	Kind Kind
	Dir  int
}
