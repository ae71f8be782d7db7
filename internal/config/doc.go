// Package config loads todosync's connection settings.
//
// # Configuration Discovery
//
// Load follows this resolution order:
//
//  1. If a path is explicitly provided, use it
//  2. Otherwise, use ~/.config/todosync/config.toml (default)
//  3. If the config file doesn't exist, fall back to defaults
//  4. If the file exists but fields are missing/empty, use defaults
//
// The API token is resolved separately, highest precedence first:
//
//  1. The TODOSYNC_TOKEN environment variable
//  2. TODOSYNC_TOKEN in a .env file in the config file's directory
//  3. The token key in the config file
//
// The .env file is read without modifying the process environment.
//
// # Default Values
//
//   - Config file: ~/.config/todosync/config.toml
//   - API endpoint: https://todoist.com/API/v6/
//   - Batch size: 50 commands per request
//   - Timeout: 10 seconds
//   - Queue: off (each save is sent immediately)
//
// # TOML Format
//
//	api_url = "https://todoist.com/API/v6/"
//	token = "0123456789abcdef"
//	batch_size = 50
//	queue = true
//	timeout_seconds = 10
//	template = "~/.config/todosync/template.yaml"
//
// All fields are optional. Tilde expansion is performed on the template path.
//
// # Error Handling
//
// Load returns errors for path expansion failures, unreadable files, invalid
// TOML and a negative batch_size. A missing config file or .env is not an
// error. A missing token is reported later, when the client is built.
package config
