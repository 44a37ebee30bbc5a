// Package resilience contains reliability patterns for outbound calls:
// retry with exponential backoff (retry) and circuit breaking
// (circuitbreaker). Feed servers fail often and transiently; these
// packages keep one misbehaving host from degrading the whole service.
package resilience
