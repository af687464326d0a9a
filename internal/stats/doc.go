// Package stats collects host status readings and composes them into a text screen
// for a small monochrome display.
package stats
