// Package config provides configuration for blogrefresh: defaults, the
// .blogrefresh YAML file with per-site review presets, .env and environment
// overrides, and validation.
package config
