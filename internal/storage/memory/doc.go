// Package memory provides the in-memory working copy of the key store.
//
// KeyList keeps keys in insertion order and supports lookup and update by
// any domain.Field, plus append with a uniqueness check on a chosen field.
// All operations are linear scans; the lists it holds are small.
package memory
