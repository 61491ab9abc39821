// Package driven defines interfaces for infrastructure the core depends
// on: the OS secret vault, the remote mail provider, the clipboard and
// notification surfaces, and flat-file persistence. These are the
// "driven" ports in hexagonal architecture terminology - the application
// drives them.
//
// Implementations live in internal/adapters/driven and
// internal/connectors.
package driven
