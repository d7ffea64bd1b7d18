// Package configuration provides loading facilities for obsidian-syncer's
// optional YAML configuration file. The file is entirely optional: every
// field has a sensible zero-value default, and a missing file is not an
// error.
package configuration
