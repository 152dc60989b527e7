// Package config loads wyrm's TOML configuration.
//
// # Configuration Discovery
//
// Load resolves the file in this order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/wyrm/config.toml
//  3. If the file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing or blank, use defaults
//
// # TOML Format
//
//	theme = "Dracula"
//	accuracy = 75
//	log_limit = 5000
//	cache_path = "~/.cache/wyrm/details.db"
//	fetch_timeout = "10s"
//
//	[[seekers]]
//	name = "libgen"
//	url = "127.0.0.1:7488"
//
//	[columns]
//	title = 0.30   # fraction of the terminal width
//	year = 4       # absolute cells
//
// Every field is optional. Tilde expansion is applied to cache_path.
// Out-of-range accuracy is clamped to 0..100; other invalid values are
// reported as "parse config" errors.
//
// Missing config files are NOT an error; wyrm works out of the box against a
// seeker on the default address.
package config
