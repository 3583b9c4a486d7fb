// Package app wires configuration, stores, services, and the change feed
// into a ready-to-use dependency graph for the CLI.
package app
