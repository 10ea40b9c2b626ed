// Package confloader loads layered configuration with koanf.
//
// Priority (highest to lowest):
//
//  1. Overrides (command-line flags)
//  2. Environment variables (KEYMAN_SECTION_KEY -> section.key)
//  3. Configuration file (YAML)
//  4. Values already present in the target struct (defaults)
package confloader
