// cue is a voice-driven terminal teleprompter. It segments a script
// into phrases and advances as you read them aloud, or scrolls the
// whole script as a marquee at an adjustable speed.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"cue/audio"
	"cue/doctor"
	"cue/encoder"
	"cue/log"
	"cue/prompt"
	"cue/script"
	"cue/shutdown"
	"cue/transcriber"
	"cue/voice"
)

const version = "0.3.0"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		modeFlag     = flag.String("mode", "sentence", "advancement mode: sentence, paragraph, flat, scroll")
		manual       = flag.Bool("manual", false, "disable voice input, keyboard only")
		minWords     = flag.Int("min-words", 3, "spoken words needed to advance (voice mode)")
		pause        = flag.Duration("pause", time.Second, "silence that ends a spoken phrase")
		threshold    = flag.Float64("match", 0.4, "word overlap fraction required with -require-match")
		requireMatch = flag.Bool("require-match", false, "advance only when speech matches the displayed phrase")
		speed        = flag.Float64("speed", prompt.BaseSpeed, "base scroll speed in characters per second (scroll mode)")
		lang         = flag.String("lang", "en", "transcription language code")
		device       = flag.String("device", "", "microphone device name substring")
		setup        = flag.Bool("setup", false, "run interactive setup checks and exit")
		logPath      = flag.String("logpath", "", "directory for log files")
		showVersion  = flag.Bool("version", false, "print version and exit")
	)
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("cue %s\n", version)
		return 0
	}
	if *setup {
		return doctor.Run()
	}

	if flag.NArg() != 1 {
		usage()
		return 1
	}

	logDir, err := log.ResolveDir(*logPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: %v\n", err)
		return 1
	}
	log.SetDir(logDir)
	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "cue: logging: %v\n", err)
		return 1
	}
	defer log.Close()
	log.Infof("cue %s starting", version)

	text, err := script.Load(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: %v\n", err)
		return 1
	}

	segMode, scroll, err := parseMode(*modeFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: %v\n", err)
		return 1
	}

	if scroll {
		return runScroll(text, *speed)
	}

	units, err := script.Segment(text, segMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: %v\n", err)
		return 1
	}
	log.Infof("script segmented into %d units (%s mode)", len(units), *modeFlag)

	vcfg := voice.Config{
		MinWords:       *minWords,
		MatchThreshold: *threshold,
		RequireMatch:   *requireMatch,
		PauseThreshold: *pause,
	}
	return runStep(units, *manual, *lang, *device, vcfg)
}

func parseMode(s string) (script.Mode, bool, error) {
	switch s {
	case "sentence":
		return script.ModeSentence, false, nil
	case "paragraph":
		return script.ModeParagraph, false, nil
	case "flat":
		return script.ModeFlat, false, nil
	case "scroll":
		return script.ModeFlat, true, nil
	}
	return "", false, fmt.Errorf("unknown mode %q (want sentence, paragraph, flat or scroll)", s)
}

// runStep drives the phrase stepping session: voice pipeline when a
// backend and a microphone are available, keyboard only otherwise.
func runStep(units []string, manual bool, lang, deviceName string, vcfg voice.Config) int {
	var (
		rec     transcriber.Transcriber
		actx    audio.Context
		capture audio.CaptureDevice
	)
	if !manual {
		rec, actx, capture = initVoice(lang, deviceName)
	}
	micOK := rec != nil && capture != nil
	if capture != nil {
		defer capture.Close()
	}
	if actx != nil {
		defer actx.Close()
	}

	sess := prompt.NewSession(micOK)
	stepper := prompt.NewStepper(units)

	p := NewTUIProgram(sess, uiStep, "", micOK)
	engine := prompt.NewStepEngine(sess, programSink{p}, stepper)

	if micOK {
		src := voice.New(sess, capture, rec, vcfg)
		go src.Run()
	}

	return runProgram(p, sess, engine)
}

func runScroll(text string, speed float64) int {
	flat := script.Flatten(text)
	if flat == "" {
		fmt.Fprintf(os.Stderr, "cue: %v\n", script.ErrEmptyScript)
		return 1
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		width = 80
	}

	// scroll mode is keyboard driven; voice stays off
	sess := prompt.NewSession(false)
	scroller := prompt.NewScroller(len([]rune(flat)), width, speed)

	p := NewTUIProgram(sess, uiScroll, flat, false)
	engine := prompt.NewScrollEngine(sess, programSink{p}, scroller)

	return runProgram(p, sess, engine)
}

// runProgram runs the engine and the display together. Whichever ends
// first stops the other: engine exit (Quit command) quits the program,
// display exit or a signal stops the session.
func runProgram(p *tea.Program, sess *prompt.Session, engine *prompt.Engine) int {
	sigCh := make(chan os.Signal, 1)
	shutdown.Notify(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Info("signal received, shutting down")
			sess.Push(prompt.Command{Kind: prompt.Quit})
		case <-sess.Stopped():
		}
	}()

	done := make(chan struct{})
	go func() {
		engine.Run()
		close(done)
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "cue: display: %v\n", err)
		sess.Stop()
		<-done
		return 1
	}
	sess.Push(prompt.Command{Kind: prompt.Quit})
	sess.Stop()
	<-done
	log.Info("session ended")
	return 0
}

// initVoice sets up the speech backend and the microphone. Failure of
// either is not fatal: the session degrades to keyboard only.
func initVoice(lang, deviceName string) (transcriber.Transcriber, audio.Context, audio.CaptureDevice) {
	rec, err := transcriber.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: %v; continuing in manual mode\n", err)
		log.Warnf("transcriber unavailable: %v", err)
		return nil, nil, nil
	}
	rec.SetLanguage(lang)

	ctx, err := audio.NewContext()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cue: audio unavailable (%v); continuing in manual mode\n", err)
		log.Warnf("audio context: %v", err)
		return nil, nil, nil
	}

	device, err := pickDevice(ctx, deviceName)
	if err != nil {
		ctx.Close()
		fmt.Fprintf(os.Stderr, "cue: %v; continuing in manual mode\n", err)
		log.Warnf("device selection: %v", err)
		return nil, nil, nil
	}

	capture, err := ctx.NewCapture(device, audio.CaptureConfig{
		SampleRate: encoder.SampleRate,
		Channels:   encoder.Channels,
	})
	if err != nil {
		ctx.Close()
		fmt.Fprintf(os.Stderr, "cue: microphone open failed (%v); continuing in manual mode\n", err)
		log.Warnf("capture open: %v", err)
		return nil, nil, nil
	}

	log.Infof("voice input on %q via %s", capture.DeviceName(), rec.Name())
	return rec, ctx, capture
}

// pickDevice resolves -device by substring, falls back to the sole
// device, and otherwise asks interactively before the display starts.
func pickDevice(ctx audio.Context, name string) (*audio.DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no capture devices found")
	}

	if name != "" {
		lower := strings.ToLower(name)
		for i := range devices {
			if strings.Contains(strings.ToLower(devices[i].Name), lower) {
				return &devices[i], nil
			}
		}
		return nil, fmt.Errorf("no capture device matches %q", name)
	}

	if len(devices) == 1 {
		return &devices[0], nil
	}
	return audio.SelectDevice(ctx)
}

func usage() {
	fmt.Fprintf(os.Stderr, `cue %s - voice-driven terminal teleprompter

Usage: cue [flags] <script file>

The script advances as you read it aloud. Press space or enter to step
manually, b to go back, v to toggle voice, c to copy, q to quit. In
scroll mode the arrow keys change speed and space pauses.

Flags:
`, version)
	flag.PrintDefaults()
}
