/*
Package observability turns Marquee lifecycle hooks into Prometheus metrics.

Metrics are registered on a caller-provided registry so tests and embedding
hosts do not collide with the global default registry.
*/
package observability
