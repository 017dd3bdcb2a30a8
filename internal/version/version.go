// Package version provides build and version information.
package version

// Version is the current application version. Release builds override it
// with -ldflags "-X github.com/litescript/ls-across/internal/version.Version=...".
var Version = "0.3.0"

// Milestones:
// 0.3.0 - BurstCube TOO submission, OAuth2 client credentials, browse TUI
// 0.2.0 - Plan and observation uploads, request metrics, config file
// 0.1.0 - Initial release: resolve, visibility, SAA, ephemeris, FOV check
