package mouse

// Button is a single bit of the HID mouse button bitfield.
type Button uint8

const (
	ButtonLeft   Button = 0x01
	ButtonRight  Button = 0x02
	ButtonMiddle Button = 0x04
)

// Report lengths observed on the wire.
const (
	ReportLenBoot     = 4
	ReportLenPadded   = 8
	ReportLenExtended = 13
)

const noButtonLabel = "No Button"

// buttonLabels is ordered; FormatButtons joins labels in this order.
var buttonLabels = []struct {
	button Button
	label  string
}{
	{ButtonLeft, "Left Click"},
	{ButtonRight, "Right Click"},
	{ButtonMiddle, "Middle Click"},
}
