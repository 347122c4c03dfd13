// Package logger is a standardized event logging framework for the
// interpreter. Events are newline delimited JSON objects, one per line,
// encoded from protobuf Struct messages.
package logger
