// Package schedulefile loads the daily period sequence from a YAML file of
// date-independent time-of-day entries and resolves it against a concrete
// date.
package schedulefile
