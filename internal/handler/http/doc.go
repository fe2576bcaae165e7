// Package http implements the HTTP transport layer of the daemon.
//
// It exposes route wiring, request handlers, and middleware used by the
// REST API: the progress reader, the run-now trigger, and the version
// endpoint. Request tracing and access logging are handled in this package
// before requests are delegated to the service layer.
package http
