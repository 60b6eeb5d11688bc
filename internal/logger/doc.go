// Package logger provides a small wrapper around zap to offer:
//   - a global sugared logger with a console encoder,
//   - a configurable sink, since stdout belongs to the interactive console,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level configuration and parsing utilities,
//   - convenience functions (InfoKV, ErrorKV, etc.).
//
// The engine and the shell accept a context and extract the logger from it,
// enabling scoped, structured logging throughout the codebase.
package logger
