// Package commands defines the secureai CLI and wires dependencies for
// subcommands.
//
// Commands
//
//   - init         Create the identity key pair for --user
//   - fingerprint  Print an identity fingerprint for out-of-band comparison
//   - send         Encrypt and store a message for a peer
//   - history      Decrypt and print a conversation
//   - watch        Stream new-message notifications for a conversation
//   - presence     Show or update presence
//
// # Implementation
//
// The root command loads configuration (file, SECUREAI_* environment,
// flags) and builds the dependency graph (stores, services, feed) before any
// subcommand runs, so handlers share one app context. Postgres and AMQP
// backends are selected by configuration; the defaults need no external
// services.
package commands
