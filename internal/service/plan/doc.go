// Package plan computes and reports the trigger plan for a day: which
// periods have automation, when each trigger would fire, and which
// configured offsets can never fire.
package plan
