package timer

import (
	"io"
	"sync"
)

// Bell is an Alarm that rings the terminal bell.
type Bell struct {
	mu sync.Mutex
	W  io.Writer
}

func (b *Bell) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.W != nil {
		io.WriteString(b.W, "\a")
	}
}

// Stop is a no-op; a bell cannot be silenced once rung.
func (b *Bell) Stop() {}
