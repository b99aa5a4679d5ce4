// Package random seeds the pseudo-random sources behind scoring jitter and
// bonus-event rolls. Seeds come from crypto/rand so production draws are
// unpredictable, while tests inject fixed seeds for reproducibility.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
)

// NewSeed draws one high-entropy seed.
func NewSeed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:])), nil
}
