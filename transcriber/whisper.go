package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"cue/encoder"
)

const requestTimeout = 15 * time.Second

// whisperBackend covers the OpenAI-compatible batch transcription
// endpoints. Clips are FLAC-encoded before upload.
type whisperBackend struct {
	name   string
	apiURL string
	apiKey string
	model  string
	lang   string
	client *http.Client
}

func NewGroq(apiKey string) Transcriber {
	return &whisperBackend{
		name:   "groq",
		apiURL: "https://api.groq.com/openai/v1/audio/transcriptions",
		apiKey: apiKey,
		model:  "whisper-large-v3-turbo",
		client: &http.Client{Timeout: requestTimeout},
	}
}

func NewOpenAI(apiKey string) Transcriber {
	return &whisperBackend{
		name:   "openai",
		apiURL: "https://api.openai.com/v1/audio/transcriptions",
		apiKey: apiKey,
		model:  "gpt-4o-transcribe",
		client: &http.Client{Timeout: requestTimeout},
	}
}

func (w *whisperBackend) Name() string { return w.name }

func (w *whisperBackend) SetLanguage(lang string) { w.lang = lang }

func (w *whisperBackend) GetLanguage() string { return w.lang }

func (w *whisperBackend) Transcribe(ctx context.Context, pcm []byte) (string, error) {
	clip, err := encoder.EncodeFLAC(pcm)
	if err != nil {
		return "", fmt.Errorf("encoding clip: %w", err)
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio.flac")
	if err != nil {
		return "", err
	}
	if _, err := part.Write(clip); err != nil {
		return "", err
	}
	writer.WriteField("model", w.model)
	writer.WriteField("response_format", "json")
	if w.lang != "" {
		writer.WriteField("language", w.lang)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", w.apiURL, &body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+w.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s API error %d: %s", w.name, resp.StatusCode, string(respBody))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%s response parse error: %w", w.name, err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", ErrNoSpeech
	}
	return text, nil
}
