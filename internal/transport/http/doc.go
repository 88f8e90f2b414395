// Package http exposes the report views, export artifacts, and annotation
// log over a JSON API. It is a thin serving layer: all computation happens
// in the analytics engine and report service, and every engine error maps
// to a recoverable HTTP status.
package http
