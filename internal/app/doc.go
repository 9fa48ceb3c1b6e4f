// Package app is the composition root for marquee.
//
// Setup loads configuration (dotenv, then config.toml, then environment
// overrides), starts file logging and wires the shared state.Store to the
// TMDB client, the persisted store and both screen controllers. Run hands
// that Env to the Bubble Tea UI. Headless commands call Setup with
// Ephemeral set so they share the wiring without touching the saved session.
//
// Startup order matters for persistence: the persisted record is replayed
// into the store and the rehydration gate is opened before the persister
// subscribes, so the replay itself is never written back.
//
// Fatal errors (returned from Setup and Run):
//   - Config file unreadable or invalid
//   - Missing API key
//   - Log file or state directory cannot be created
//
// Everything after startup is recoverable. Fetch failures are logged by the
// controllers and the UI keeps running.
package app
