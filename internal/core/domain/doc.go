// Package domain defines the core domain models for keyman.
//
// Domain models are plain values without IO dependencies:
//
//   - Key: a managed access token record
//   - Field: the closed set of record fields usable for lookup and update
//   - Errors: domain error definitions and codes
package domain
