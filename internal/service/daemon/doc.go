// Package daemon wires the displayer together: configuration, schedule and
// policy loading, the input activity monitor, the display and the trigger
// engine, driven by a single polling loop that signals period transitions.
package daemon
