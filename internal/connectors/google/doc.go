// Package google provides shared plumbing for Google API access: the
// token source bridge, a rate limiter, and error classification.
package google
