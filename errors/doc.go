// Package errors provides the structured error type shared by the task
// source, the statistics pipeline and the HTTP adapter. Errors carry a
// machine-readable code, a retryable flag derived from that code, and a
// recommended HTTP status.
package errors
