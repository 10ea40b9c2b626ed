// Package service provides the key management service for keyman.
//
// KeyManager ties the in-memory KeyList to the keyfile: it locks and loads
// the file when opened, saves the whole store after every mutation, and
// releases the lock when closed. It exposes the operations the CLI
// dispatches to: Generate, Revoke, IsRevoked, List and Reload.
package service
