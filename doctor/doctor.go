// Package doctor runs interactive checks that the voice pipeline works
// end to end before a real session: transcription backend, microphone
// capture, a transcription round trip, and the clipboard.
package doctor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cue/audio"
	"cue/clipboard"
	"cue/encoder"
	"cue/transcriber"
)

const recordFor = 3 * time.Second

// Run executes the checks and returns an exit code (0=all pass, 1=any fail).
func Run() int {
	resetTerminal()
	setupInterruptHandler()

	fmt.Println("cue setup check")
	fmt.Println("===============")

	allPass := true

	rec, ok := checkBackend()
	if !ok {
		allPass = false
	}
	clip, ok := checkMicrophone()
	if !ok {
		allPass = false
	}
	if allPass && !checkTranscription(rec, clip) {
		allPass = false
	}
	if !checkClipboard() {
		allPass = false
	}

	fmt.Println()
	if allPass {
		fmt.Println("All checks passed!")
		return 0
	}
	fmt.Println("Some checks failed. See details above.")
	return 1
}

func checkBackend() (transcriber.Transcriber, bool) {
	fmt.Println()
	fmt.Println("[1/4] Transcription backend")

	rec, err := transcriber.New()
	if err != nil {
		fmt.Printf("  FAIL: %v\n", err)
		fmt.Println("  Set GROQ_API_KEY or OPENAI_API_KEY and retry.")
		return nil, false
	}
	fmt.Printf("  PASS: using %s\n", rec.Name())
	return rec, true
}

func checkMicrophone() ([]byte, bool) {
	fmt.Println()
	fmt.Println("[2/4] Microphone capture")

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Printf("  FAIL: cannot connect to audio: %v\n", err)
		return nil, false
	}
	defer ctx.Close()

	devices, err := ctx.Devices()
	if err != nil {
		fmt.Printf("  FAIL: cannot list devices: %v\n", err)
		return nil, false
	}
	if len(devices) == 0 {
		fmt.Println("  FAIL: no capture devices found")
		return nil, false
	}

	device := &devices[0]
	if len(devices) > 1 {
		fmt.Println()
		fmt.Println("Select input device:")
		for i, d := range devices {
			fmt.Printf("  %d. %s\n", i+1, d.Name)
		}
		fmt.Printf("Choice [1-%d]: ", len(devices))

		reader := bufio.NewReader(os.Stdin)
		choice, _ := reader.ReadString('\n')
		idx := 1
		fmt.Sscanf(strings.TrimSpace(choice), "%d", &idx)
		if idx < 1 || idx > len(devices) {
			fmt.Println("  FAIL: invalid choice")
			return nil, false
		}
		device = &devices[idx-1]
	}
	fmt.Printf("Using device: %s\n", device.Name)
	if audio.IsBluetooth(device.Name) {
		fmt.Println("  Note: Bluetooth mics often degrade capture quality.")
	}

	fmt.Println()
	fmt.Printf("Speak for %v...\n", recordFor)

	pcm, err := record(ctx, device)
	if err != nil {
		fmt.Printf("  FAIL: recording error: %v\n", err)
		return nil, false
	}
	if len(pcm) == 0 {
		fmt.Println("  FAIL: no audio captured")
		return nil, false
	}

	fmt.Printf("  PASS: captured %.1f KB\n", float64(len(pcm))/1024)
	return pcm, true
}

func record(ctx audio.Context, device *audio.DeviceInfo) ([]byte, error) {
	var mu sync.Mutex
	var pcm []byte

	capture, err := ctx.NewCapture(device, audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		return nil, err
	}
	defer capture.Close()

	capture.SetCallback(func(data []byte, frameCount uint32) {
		mu.Lock()
		pcm = append(pcm, data...)
		mu.Unlock()
	})

	if err := capture.Start(); err != nil {
		return nil, err
	}

	fmt.Print("  Recording")
	deadline := time.After(recordFor)
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
loop:
	for {
		select {
		case <-deadline:
			break loop
		case <-ticker.C:
			fmt.Print(".")
		}
	}
	capture.Stop()
	fmt.Println(" done")

	mu.Lock()
	defer mu.Unlock()
	return pcm, nil
}

func checkTranscription(rec transcriber.Transcriber, pcm []byte) bool {
	fmt.Println()
	fmt.Println("[3/4] Transcription round trip")

	tctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, err := rec.Transcribe(tctx, pcm)
	if err == transcriber.ErrNoSpeech {
		fmt.Println("  FAIL: no speech detected in the recording")
		return false
	}
	if err != nil {
		fmt.Printf("  FAIL: transcription error: %v\n", err)
		return false
	}

	fmt.Printf("\n  Transcribed text: %s\n\n", text)

	resetTerminal()
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Is this what you said? [y/n]: ")
	confirm, _ := reader.ReadString('\n')
	confirm = strings.TrimSpace(strings.ToLower(confirm))

	if confirm == "y" || confirm == "yes" {
		fmt.Println("  PASS: transcription verified")
		return true
	}
	fmt.Println("  FAIL: transcription not confirmed")
	return false
}

func checkClipboard() bool {
	fmt.Println()
	fmt.Println("[4/4] Clipboard")

	sentinel := fmt.Sprintf("cue-setup-%d", time.Now().UnixNano())

	type result struct {
		readback string
		err      error
		phase    string
	}
	ch := make(chan result, 1)
	go func() {
		if err := clipboard.Copy(sentinel); err != nil {
			ch <- result{err: err, phase: "write"}
			return
		}
		got, err := clipboard.Read()
		if err != nil {
			ch <- result{err: err, phase: "read"}
			return
		}
		ch <- result{readback: got}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			fmt.Printf("  FAIL: clipboard %s failed: %v\n", res.phase, res.err)
			return false
		}
		if res.readback != sentinel {
			fmt.Printf("  FAIL: clipboard mismatch: wrote %q, got %q\n", sentinel, res.readback)
			return false
		}
		fmt.Println("  PASS: clipboard write/read verified")
		return true
	case <-time.After(3 * time.Second):
		fmt.Println("  FAIL: clipboard timed out")
		return false
	}
}
