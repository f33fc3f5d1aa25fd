package trajectory

import (
	"errors"
	"fmt"
)

// ErrInvalidButtonMask is returned for masks outside [0,15].
var ErrInvalidButtonMask = errors.New("invalid button mask")

// Mask selects which button states are drawn.
// Bits 0-2 select left, right and middle; bit 3 selects "no button".
type Mask uint8

const (
	MaskNoButton Mask = 0b1000
	DefaultMask  Mask = 0b1111
)

// ParseMask validates n and converts it to a Mask.
func ParseMask(n int) (Mask, error) {
	if n < 0 || n > int(DefaultMask) {
		return 0, fmt.Errorf("%w: %d not in [0,15]", ErrInvalidButtonMask, n)
	}
	return Mask(n), nil
}

// Includes reports whether samples with the given button state are drawn.
func (m Mask) Includes(state uint8) bool {
	if state == 0 {
		return m&MaskNoButton != 0
	}
	return state&uint8(m) != 0
}
