// Package logging builds the application's slog logger. Console output goes
// to stderr so command output stays pipeable; a JSON copy is teed into the log
// directory for later inspection. When no format is forced, a TTY gets the
// text handler and anything else gets JSON.
package logging
