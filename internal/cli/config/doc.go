// Package config provides CLI configuration for keyman.
//
//   - spec.go: Config struct and defaults
//   - loader.go: loading from ~/.keyman/config.yaml, KEYMAN_* and flags
package config
