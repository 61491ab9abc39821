// Package services implements the core business logic for otpbar:
// the credential lifecycle (token manager, auth orchestrator), the
// pure OTP/provider extraction rules, the shared session state, and
// the polling engine that ties fetch, extract, dedup, auto-copy,
// notify, persist and publish together.
//
// Services depend only on domain types and driven ports; all
// infrastructure is injected.
package services
