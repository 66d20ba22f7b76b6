// Package journal persists every settled trigger decision (fired,
// suppressed, expired, failed) to a local sqlite database so operators can
// audit why the display did or did not switch.
package journal
