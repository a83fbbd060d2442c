// Package viz renders the selection sort step engine as a terminal UI.
//
// The package splits into a pure presentation layer and a Bubble Tea model:
//
//   - [BuildFrame], [RoleOf], [Pointers], [Status]: state to bars, colors
//     and text, with no side effects
//   - [Model]: the control surface and the single repeating tick
//   - Theme selection with 5 built-in color schemes
//
// # Key Bindings
//
//	Space - Start/Pause
//	R     - Regenerate the array and stop
//	+/-   - Faster/slower (100ms to 1000ms)
//	]/[   - Size up/down (5 to 50)
//	T     - Cycle color themes
//	E     - Export the current frame as SVG
//	?     - Show help overlay
//
// # Ticks
//
// Exactly one tick is pending while running. Pause, reset, resize and quit
// invalidate it; ticks from an older generation are ignored on arrival.
package viz
