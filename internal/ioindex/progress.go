package ioindex

import (
	"github.com/cheggaaa/pb/v3"
)

// progress wraps a progress bar. A nil bar keeps quiet.
type progress struct {
	bar *pb.ProgressBar
}

// progressBar creates a bar with consistent settings. With zero total the
// bar only counts.
func (ix *ioindex) progressBar(total int, prefix string) progress {
	if ix.quiet {
		return progress{}
	}
	bar := pb.Full.Start(total)
	bar.Set("prefix", prefix)
	bar.Set(pb.CleanOnFinish, true)
	return progress{bar: bar}
}

// set moves the bar to the number of processed records.
func (p progress) set(n int) {
	if p.bar != nil {
		p.bar.SetCurrent(int64(n))
	}
}

func (p progress) finish() {
	if p.bar != nil {
		p.bar.Finish()
	}
}
