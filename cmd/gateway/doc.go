// Command gateway runs the FlowFrame embed gateway: a service that hosts
// server-side embed instances and bridges frame content to them over
// WebSocket.
//
// Configuration is environment-driven (see internal/infrastructure/config):
//
//	PORT=8090 FLOW_MANIFEST=flows.yaml gateway
package main
