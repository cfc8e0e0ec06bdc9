package tui

import "github.com/vovakirdan/neuroflap/internal/flappy"

// KeyboardController turns key presses into jump decisions.
// A press is held until the next Activate call consumes it.
type KeyboardController struct {
	pending bool
}

var _ flappy.Controller = (*KeyboardController)(nil)

// Press queues a jump for the next tick.
func (k *KeyboardController) Press() {
	k.pending = true
}

// Activate reports 1 when a jump is queued, 0 otherwise.
func (k *KeyboardController) Activate(_ []float64) ([]float64, error) {
	if k.pending {
		k.pending = false
		return []float64{1}, nil
	}
	return []float64{0}, nil
}
