// Package server exposes the statistics pipeline over HTTP using Gin,
// wrapped in h2c so HTTP/2 clients can stream states without TLS.
//
// Routes:
//
//	POST /v1/statistics/intents   submit an intent, {"type":"initial"} -> 202
//	GET  /v1/statistics/state     latest view state
//	GET  /v1/statistics/states    Server-Sent Events: latest state, then every update
//	GET  /health                  component health
//	GET  /alive                   liveness probe
//	GET  /version                 build information
//
// Recovery, request-id and request-logging middleware wrap every route.
// Intent submission is rate limited with a token bucket.
package server
