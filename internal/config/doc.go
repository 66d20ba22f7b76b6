// Package config defines the displayer settings and provides helpers to
// load, normalize and save them in YAML format.
package config
