// Package config loads pawmatch settings.
//
// # Resolution Order
//
//  1. A .env file in the working directory, if present, fills in unset
//     environment variables
//  2. The TOML file at the given path, or $XDG_CONFIG_HOME/pawmatch/config.toml
//  3. PAWMATCH_* environment variables override file values
//
// A missing config file is not an error; defaults are used instead.
//
// # TOML Format
//
//	api_url   = "https://frontend-take-home-service.fetch.com"
//	name      = "Ada"
//	email     = "ada@example.com"
//	log_file  = "~/.local/state/pawmatch/pawmatch.log"
//	log_level = "info"
//	timeout   = "15s"
//
// All fields are optional. Values are trimmed and tilde expansion is applied
// to log_file. When name and email are both set, the TUI logs in without
// showing the form.
package config
