// Package trigger implements the automation trigger engine: one ephemeral
// trigger instance per (period, policy) pair, armed when the period starts
// and settled exactly once as fired, suppressed or expired.
//
// The engine is cooperative: OnPeriodStart, OnPeriodEnd and Tick are the
// only mutating entry points and are expected to run serially from a single
// polling loop. Collaborators (activity monitor, mode controller, decision
// sink) must return promptly since the engine's timing accuracy depends on
// prompt polling.
package trigger
