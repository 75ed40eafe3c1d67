// Package site mounts the HTTP endpoints used by the corporate site: password
// verification, email dispatch, health probes and metrics.
//
// Failures are JSON objects with at least an "error" field. Email dispatch
// failures add "details" and, for provider rejections, "code".
package site
