// Package http implements the push listener of the sync client.
//
// The sync server delivers server alerts to POST /api/alert as the raw
// binary notification, optionally gzip-compressed. Local tooling can queue a
// session with POST /api/sync and read the build with GET /api/version.
// Every request gets a trace id and an access log line.
package http
