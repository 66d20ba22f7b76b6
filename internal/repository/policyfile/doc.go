// Package policyfile loads the per-period automation configuration from its
// legacy JSON format (string-encoded booleans, "blackboard" for the blackout
// mode) and normalizes it into the strict domain types at load time.
package policyfile
