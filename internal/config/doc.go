// Package config provides the configuration system for Keystorm.
//
// The config package loads, validates, and provides access to editor
// settings: editing behavior, UI presentation, Vim emulation, input
// timing, file handling, search defaults, and logging.
//
// # Architecture
//
// Configuration is loaded once at startup from three sources, merged in
// priority order (later overrides earlier):
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← Highest priority, KEYSTORM_ prefix
//	├─────────────────────────────┤
//	│  2. User Settings           │  ← ~/.config/keystorm/settings.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// There is no hot reload: Load runs once before the editor starts, and
// the merged result is held in memory for the life of the process.
// Set can update individual values at runtime, but nothing re-reads the
// settings file or the environment afterward.
//
// # Sub-packages
//
//   - loader: Configuration file loading (TOML, environment variables)
//   - schema: JSON Schema validation for Set() writes
//
// # Basic Usage
//
// Load configuration from default paths:
//
//	cfg := config.New()
//	if err := cfg.Load(ctx); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Access typed settings
//	tabSize, _ := cfg.GetInt("editor.tabSize")
//	theme, _ := cfg.GetString("ui.theme")
//
//	// Access typed sections
//	editor := cfg.Editor()
//	fmt.Println(editor.TabSize)
//
// # Type-Safe Access
//
// Config provides type-safe accessors to prevent runtime errors:
//
//	// Using generic accessor
//	tabSize, err := cfg.GetInt("editor.tabSize")
//	if err != nil {
//	    // Handle error (wrong type or unknown setting)
//	}
//
//	// Using typed section
//	editor := cfg.Editor()
//	tabSize := editor.TabSize // Compile-time type safety
//
// # Configuration Files
//
// Keystorm uses TOML as the primary configuration format:
//
//	# ~/.config/keystorm/settings.toml
//	[editor]
//	tabSize = 4
//	insertSpaces = true
//	wordWrap = "on"
//
//	[ui]
//	theme = "dark"
//	fontSize = 14
//
// # Error Handling
//
// The package defines several error types:
//
//   - ErrSettingNotFound: Setting path doesn't exist
//   - ErrTypeMismatch: Value type doesn't match expected type
//   - ErrValidationFailed: Value fails schema validation
//   - ParseError: Configuration file parsing failed (an error type; match it with errors.As)
//   - ErrFileNotFound: Configuration file doesn't exist
package config
