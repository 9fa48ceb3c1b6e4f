// Package config loads marquee's TOML configuration.
//
// # Resolution
//
// Load follows this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/marquee/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. Empty or blank fields also fall back to defaults
//  5. TMDB_API_KEY and MARQUEE_API_BASE_URL override the file
//
// LoadEnv can run first to pull those variables from a .env file
// (github.com/joho/godotenv). Variables already set in the environment win.
//
// # TOML Format
//
//	api_key = "your-tmdb-v3-key"
//	api_base_url = "https://api.themoviedb.org/3"
//	image_base_url = "https://image.tmdb.org/t/p/w500"
//	language = "en"
//	data_dir = "~/.local/share/marquee"
//	log_file = "~/.local/share/marquee/marquee.log"
//	log_level = "info"
//	requests_per_second = 4
//	timeout_seconds = 10
//
// Tilde expansion is applied to data_dir and log_file. log_file defaults to
// marquee.log inside data_dir, and the persisted state lives in
// <data_dir>/state. requests_per_second = 0 disables the outbound limiter.
//
// # Errors
//
// Missing files are not an error. Load fails only when the home directory
// cannot be resolved, the file cannot be read, or the TOML does not parse.
// A missing API key is reported separately by Validate so read-only commands
// like "marquee logs" still work without one.
package config
