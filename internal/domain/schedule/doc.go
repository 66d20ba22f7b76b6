// Package schedule contains the domain model of a school day: named,
// contiguous, non-overlapping periods with helpers to find the period
// covering an instant and to decide when the next day's schedule should
// be previewed.
package schedule
