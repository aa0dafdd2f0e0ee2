package midi

// Wire protocol constants. Inbound status bytes carry the command in
// the high nibble and the channel in the low nibble; outbound commands
// are fixed full status bytes.
const (
	// commandMask extracts the command nibble from a status byte.
	commandMask = 0xF0
	// channelMask extracts the channel nibble from a status byte.
	channelMask = 0x0F

	// buttonEngagedCommand is the command nibble of a button press.
	buttonEngagedCommand = 0x90
	// buttonDisengagedCommand is the command nibble of a button release.
	buttonDisengagedCommand = 0x80

	// buttonLedOnCommand turns a button LED on.
	buttonLedOnCommand = 0x9A
	// buttonLedOffCommand turns a button LED off.
	buttonLedOffCommand = 0x8A
	// knobSetCommand moves a knob indicator to a given value.
	knobSetCommand = 0xBA
)
