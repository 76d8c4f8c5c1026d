package transcriber

import "context"

// Fake returns scripted transcripts in order, then keeps returning the
// last one. An empty scripted text maps to ErrNoSpeech.
type Fake struct {
	texts []string
	err   error
	lang  string
	calls int
}

func NewFake(err error, texts ...string) *Fake {
	return &Fake{texts: texts, err: err}
}

func (f *Fake) Name() string { return "fake" }

func (f *Fake) SetLanguage(lang string) { f.lang = lang }

func (f *Fake) GetLanguage() string { return f.lang }

func (f *Fake) Calls() int { return f.calls }

func (f *Fake) Transcribe(_ context.Context, _ []byte) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	if len(f.texts) == 0 {
		return "", ErrNoSpeech
	}
	i := f.calls - 1
	if i >= len(f.texts) {
		i = len(f.texts) - 1
	}
	if f.texts[i] == "" {
		return "", ErrNoSpeech
	}
	return f.texts[i], nil
}
