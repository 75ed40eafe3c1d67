// Package clientip resolves the originating client address of an HTTP
// request behind proxies.
//
// Resolve walks the given headers in order (comma separated lists yield their
// first valid entry) and falls back to RemoteAddr. Invalid values are skipped
// and results are normalized with net.ParseIP. Middleware stores the result
// in the request context where rate limiters and logs pick it up.
//
// Only list headers your edge proxy overwrites; anything else can be spoofed.
package clientip
