// Package domain defines the core business entities for otpbar.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - CodeEntry: A surfaced one-time passcode with its origin
//   - Message: A fetched mail message, ephemeral to one poll cycle
//   - Token: An OAuth access/refresh/expiry triple
//   - Preferences: The global and per-provider auto-copy policy
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
