// Package version holds the build version, set with
// -ldflags "-X github.com/ndewijer/crypto-trade-simulator/internal/version.Version=v1.2.3".
package version

// Version is the simulator release this binary was built from.
var Version = "dev"
