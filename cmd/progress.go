package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/schollz/progressbar/v3"
)

// Progress reports long-running command work on the terminal.
//
// A negative total renders a spinner; Tick keeps it moving while a single call blocks.
type Progress struct {
	bar *progressbar.ProgressBar
}

func NewProgress(w io.Writer, total int, description string) *Progress {
	return &Progress{
		bar: progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", description)),
			progressbar.OptionSetWidth(30),
			progressbar.OptionShowBytes(false),
			progressbar.OptionShowCount(),
			progressbar.OptionSetRenderBlankState(true),
			progressbar.OptionEnableColorCodes(true),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionSetTheme(progressbar.Theme{
				Saucer:        "[green]=[reset]",
				SaucerHead:    "[green]>[reset]",
				SaucerPadding: " ",
				BarStart:      "[",
				BarEnd:        "]",
			}),
		),
	}
}

func (p *Progress) Update(status string) {
	p.bar.Describe(fmt.Sprintf("[cyan]%s[reset]", status))
	p.bar.Add(1)
}

// Spin keeps the spinner moving in the background. The returned stop waits for it to halt and clears the line.
func (p *Progress) Spin() (stop func()) {
	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.Tick(done)
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			close(done)
			wg.Wait()
			p.Clear()
		})
	}
}

// Tick advances the spinner until done is closed.
func (p *Progress) Tick(done <-chan struct{}) {
	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for {
		select {
		case <-done:
			return
		case <-t.C:
			p.bar.Add(1)
		}
	}
}

func (p *Progress) Clear() {
	p.bar.Finish()
	p.bar.Clear()
}
