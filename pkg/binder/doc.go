// Package binder decodes HTTP request bodies into typed request structs for
// handler.Wrap.
//
// JSON requires an application/json content type (parameters such as charset
// are accepted), enforces a size limit and rejects trailing data. Decoded
// strings are left untouched, so whitespace and markup reach the handler
// exactly as the client sent them. Failures wrap one of the package sentinel
// errors so the error handler can map them to 400, 413 or 415.
package binder
