// Package notify provides utilities for sending formatted notifications to CLI users.
//
// [WriteMessage] displays a message with a type-specific symbol and color. Message types
// include success (✔), error (✗), warning (⚠), info (ℹ), activity (►), generate (✚), and
// title messages with customizable emojis.
//
// [LineWriter] adapts the notify styling to an io.Writer so that line-oriented progress
// (for example a provisioning run log) can be streamed to the terminal as it is produced.
package notify
