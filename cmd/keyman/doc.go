// Package main provides the entry point for keyman.
//
// keyman manages a small set of access tokens kept in a JSON keyfile:
//
//	keyman genkey comment=ci
//	keyman revokekey id=1
//	keyman listkeys
//	keyman -o json keyrevoked key=<value>
//	keyman reloadkeys
//
// Global flags go before the action. See `keyman --help`.
package main
