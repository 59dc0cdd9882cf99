package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/jedib0t/go-pretty/v6/text"
)

// stepReporter prints one line per finished orchestrator step and, when
// animated, a spinner while a step runs.
type stepReporter struct {
	out     io.Writer
	animate bool
	spinner *spinner.Spinner
}

func newStepReporter(out io.Writer, animate bool) *stepReporter {
	return &stepReporter{out: out, animate: animate}
}

func (r *stepReporter) StepStarted(step string) {
	if !r.animate {
		return
	}
	r.spinner = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(r.out))
	r.spinner.Suffix = " " + step
	r.spinner.Start()
}

func (r *stepReporter) StepFinished(step string, err error) {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
	if err != nil {
		fmt.Fprintf(r.out, "%s %s\n", text.FgRed.Sprint("✗"), step)
		return
	}
	fmt.Fprintf(r.out, "%s %s\n", text.FgGreen.Sprint("✓"), step)
}
