// Package buildinfo reports the keyman version shown by `keyman --version`.
//
// Release builds inject values via ldflags:
//
//	go build -ldflags "-X github.com/yndnr/keyman/internal/infra/buildinfo.Version=v1.0.0 \
//	  -X github.com/yndnr/keyman/internal/infra/buildinfo.Commit=abc123" ./cmd/keyman
//
// Values left unset are filled from the module build information embedded
// by the Go toolchain.
package buildinfo
