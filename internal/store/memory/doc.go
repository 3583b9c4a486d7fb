// Package memory provides in-process implementations of the key, message
// and presence stores. They back tests and DSN-less CLI runs; nothing
// survives the process.
package memory
