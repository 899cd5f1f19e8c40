// Package config loads quillpad's settings.
//
// Settings come from three sources, later ones winning:
//
//  1. Built-in defaults (Default).
//  2. A config file, TOML or YAML by extension (Load).
//  3. QUILLPAD_* environment variables (ApplyEnv).
//
// A missing config file is not an error. The merged result is checked by
// Validate before use.
package config
