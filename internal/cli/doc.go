// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// layers the settings file and CLI flags into the application's
// configuration.
package cli
