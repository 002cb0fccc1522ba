// Package sse writes a Go channel to an HTTP response as a Server-Sent
// Events stream.
//
// Each value received is JSON-encoded into one event. A comment line is
// written on every keep-alive tick so proxies keep the connection open.
// The stream ends when the channel is closed or the client disconnects.
package sse
