// Package version reports build information for the taskstats binary.
//
// Version, commit, branch and build time are set at link time:
//
//	go build -ldflags "-X github.com/kbukum/taskstats/version.Version=1.2.0" ./cmd/taskstats
//
// Unset values fall back to the VCS stamps in the binary's build info.
package version
