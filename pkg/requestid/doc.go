// Package requestid attaches a correlation id to every HTTP request.
//
// Middleware reuses a client supplied X-Request-ID header when it is at most
// 128 characters of [a-zA-Z0-9_-]; otherwise a new UUID is generated. The id
// is stored in the request context, echoed in the response header and exposed
// to pkg/logger through LogExtractor.
package requestid
