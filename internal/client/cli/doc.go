// Package cli is the line-oriented REPL of the fitness tracker.
//
// Every section of the application is reachable by typed commands: lists are
// printed with their position numbers, forms are filled in field by field
// and notifications are printed inline. Passwords are read without echo.
//
// The REPL is started via Run, which blocks until the user exits or the
// input ends. See Shell and runREPL for details.
package cli
