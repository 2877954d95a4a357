// Package contentcache holds extracted overlay fragments keyed by
// normalized request URL.
//
// The cache is bounded and evicts strictly by insertion order (FIFO).
// Reads never reorder entries, so a frequently read fragment is evicted
// exactly when it would have been had it never been read.
package contentcache
