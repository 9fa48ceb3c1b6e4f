// Package controller holds the screen controllers that turn user intent into
// store actions.
//
// ListController loads the upcoming list and genre catalog once per mount and
// runs the local title search. Its fetch failures are logged and never reach
// the state; the screen simply shows whatever loaded.
//
// DetailController loads one movie per visit. Each visit is a session with a
// liveness flag. Every dispatch checks the flag under the controller mutex,
// so a fetch that resolves after Unmount cannot write into the next visit.
// Unlike the list screen, detail failures are surfaced in DetailState.Error.
//
// Both controllers block on the network and are meant to run off the UI
// goroutine (as tea.Cmds in the TUI).
package controller
