// Package transcriber is the speech backend boundary: one captured PCM
// clip in, one piece of text out. Recognition itself always happens
// remotely; this package only uploads.
package transcriber

import (
	"context"
	"errors"
	"fmt"
	"os"
)

// ErrNoSpeech reports a clip the backend could not make words out of.
// Callers treat it as background noise, not a failure.
var ErrNoSpeech = errors.New("no speech recognized")

type Transcriber interface {
	Name() string
	SetLanguage(lang string)
	GetLanguage() string
	// Transcribe uploads one little-endian PCM16 mono clip and returns
	// its text. ErrNoSpeech when the clip held no recognizable words.
	Transcribe(ctx context.Context, pcm []byte) (string, error)
}

// New picks a provider from the environment.
func New() (Transcriber, error) {
	if key := os.Getenv("GROQ_API_KEY"); key != "" {
		return NewGroq(key), nil
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		return NewOpenAI(key), nil
	}
	return nil, fmt.Errorf("set GROQ_API_KEY or OPENAI_API_KEY environment variable")
}
