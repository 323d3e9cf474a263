// Package benchbar provides a really simple progress bar for the benchmarking
// process.
package benchbar

import (
	"github.com/schollz/progressbar/v3"
	"go.uber.org/atomic"
)

// Bar counts finished items and draws them on stderr unless silent.
type Bar struct {
	pb    *progressbar.ProgressBar
	count atomic.Int64
}

// NewBar creates a bar for maxItems items. A silent bar only counts.
func NewBar(description string, maxItems int, silent bool) *Bar {
	var pb *progressbar.ProgressBar
	if silent {
		pb = progressbar.DefaultSilent(int64(maxItems), description)
	} else {
		pb = progressbar.Default(int64(maxItems), description)
	}
	_ = pb.Set(0)

	return &Bar{pb: pb}
}

// Inc marks one more item as done. It is safe for concurrent use.
func (b *Bar) Inc() {
	b.count.Add(1)
	_ = b.pb.Add(1)
}

// Count returns the number of items marked as done.
func (b *Bar) Count() int64 {
	return b.count.Load()
}

// Finish completes and closes the bar.
func (b *Bar) Finish() {
	_ = b.pb.Finish()
	_ = b.pb.Close()
}
