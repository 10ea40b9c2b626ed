// Package keyfile persists the key store as a JSON file.
//
// The file holds a single JSON array:
//
//	[{"id":"1","key":"<secret>","comment":"ci","revoked":false}, ...]
//
// A missing or empty file is an empty store. Every save rewrites the
// whole array through a temp file in the same directory followed by a
// rename, so readers never observe a half-written file.
//
// Lock guards the load-mutate-save window with an advisory lock on a
// sibling "<file>.lock" so that two invocations against the same file
// serialize instead of overwriting each other.
package keyfile
