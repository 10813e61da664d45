package httptransport

import "expvar"

var (
	metricRollRequests = expvar.NewInt("http_roll_requests_total")

	metricSSEConnectionsTotal  = expvar.NewInt("sse_connections_total")
	metricSSEConnectionsActive = expvar.NewInt("sse_connections_active")
)
