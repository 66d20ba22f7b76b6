// Package automation contains the domain types of the display automation:
// the overlay Mode, the per-period Policy with its signed trigger offset,
// and the TriggerEvent emitted for every settled decision.
package automation
