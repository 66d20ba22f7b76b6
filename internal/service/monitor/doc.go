// Package monitor implements the input activity monitor: a Recorder holding
// the instant of the most recent keyboard/mouse input, platform Probes that
// read the OS idle counter (X11 screensaver extension on Linux,
// GetLastInputInfo on Windows), and a Poller folding probe samples into the
// recorder.
//
// The trigger engine consumes the recorder through its HasActivitySince
// method and never writes to it.
package monitor
