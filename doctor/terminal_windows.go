//go:build windows

package doctor

import (
	"os"
	"os/signal"
)

func resetTerminal() {}

func setupInterruptHandler() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, os.Interrupt)
	go func() {
		<-ch
		println("\ninterrupted")
		os.Exit(1)
	}()
}
