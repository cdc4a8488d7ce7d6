// Package monitoring provides Prometheus metrics for the gateway.
//
// Metrics cover the HTTP surface, embed instance lifecycle, and the frame
// channel. The embed core contributes nothing here: rejected channel traffic
// must leave no observable trace, metrics included.
//
// Expose via:
//
//	import "github.com/prometheus/client_golang/prometheus/promhttp"
//	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
package monitoring
