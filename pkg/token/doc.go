// Package token provides access token generation.
//
// Tokens are random bytes from crypto/rand encoded with the Base64 RawURL
// alphabet, so they can be pasted into URLs, headers and shell arguments
// without quoting. A 16-byte token encodes to 22 characters.
package token
