// Package mouse decodes captured HID mouse input reports.
package mouse

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedPayloadLength is returned by Decode for report lengths other
// than 4, 8 and 13 bytes.
var ErrUnsupportedPayloadLength = errors.New("unsupported payload length")

// PayloadKind identifies the wire layout of a captured report.
type PayloadKind int

const (
	KindUnknown PayloadKind = iota
	// KindShort4 is the 4 byte boot protocol report: buttons, int8 X, int8 Y, wheel.
	KindShort4
	// KindShort8 carries the boot layout padded to 8 bytes.
	KindShort8
	// KindExtended13 has a reserved byte after the buttons and int16 LE deltas.
	KindExtended13
)

// KindOf returns the layout used by reports of length n.
func KindOf(n int) PayloadKind {
	switch n {
	case ReportLenBoot:
		return KindShort4
	case ReportLenPadded:
		return KindShort8
	case ReportLenExtended:
		return KindExtended13
	default:
		return KindUnknown
	}
}

func (k PayloadKind) String() string {
	switch k {
	case KindShort4:
		return "short4"
	case KindShort8:
		return "short8"
	case KindExtended13:
		return "extended13"
	default:
		return "unknown"
	}
}

// Sample is one decoded mouse report.
type Sample struct {
	// Button bitfield: bit 0=Left, 1=Right, 2=Middle
	Buttons uint8
	// Relative movement as reported by the device
	DX, DY int
}

// Decode extracts the button bitfield and relative deltas from a report.
//
// Layouts:
//
//	4 or 8 bytes: Byte 0 buttons, Byte 1 DX (int8), Byte 2 DY (int8)
//	13 bytes:     Byte 0 buttons, Bytes 2-3 DX (int16 LE), Bytes 4-5 DY (int16 LE)
func Decode(payload []byte) (Sample, error) {
	switch KindOf(len(payload)) {
	case KindShort4, KindShort8:
		return Sample{
			Buttons: payload[0],
			DX:      int(int8(payload[1])),
			DY:      int(int8(payload[2])),
		}, nil
	case KindExtended13:
		return Sample{
			Buttons: payload[0],
			DX:      int(int16(payload[2]) | int16(payload[3])<<8),
			DY:      int(int16(payload[4]) | int16(payload[5])<<8),
		}, nil
	default:
		return Sample{}, fmt.Errorf("%w: %d bytes", ErrUnsupportedPayloadLength, len(payload))
	}
}

// UnmarshalBinary decodes a captured report into s.
func (s *Sample) UnmarshalBinary(data []byte) error {
	v, err := Decode(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// FormatButtons returns a legend label for a button bitfield.
// Bits other than left, right and middle are ignored.
func FormatButtons(state uint8) string {
	if state == 0 {
		return noButtonLabel
	}
	labels := make([]string, 0, len(buttonLabels))
	for _, b := range buttonLabels {
		if state&uint8(b.button) != 0 {
			labels = append(labels, b.label)
		}
	}
	return strings.Join(labels, " And ")
}
