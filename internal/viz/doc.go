// Package viz is the interactive terminal front end.
//
// The view is a Bubble Tea program with three parts:
//
//   - parameter inputs for amplitude, angular frequency and phase
//   - an ascii chart of position, velocity and acceleration over the sample window
//   - a Braille track with the oscillating mass
//
// The mass is moved by an [anim.Driver] whose ticks come from an
// [anim.ManualScheduler] fired on every [TickMsg].
//
// # Key Bindings
//
//	Tab/Down/Enter  - Next input
//	Shift+Tab/Up    - Previous input
//	Ctrl+R          - Reset parameters
//	Ctrl+T          - Cycle chart themes
//	Esc/Ctrl+C      - Quit
package viz
