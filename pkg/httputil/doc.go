// Package httputil provides HTTP helpers shared by the catalogue client:
// retry with exponential backoff and a file-based response cache.
//
// Course-catalogue endpoints change rarely, so responses are cached on disk
// with a TTL and fetches are retried only for transient failures (marked
// with [Retryable]). Both pieces are independent of any specific API.
package httputil
