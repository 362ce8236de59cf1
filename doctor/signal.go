package doctor

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// setupInterruptHandler aborts a check that is waiting on audio hardware.
func setupInterruptHandler() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		fmt.Fprintf(os.Stderr, "\nInterrupted (%v)\n", sig)
		os.Exit(1)
	}()
}
