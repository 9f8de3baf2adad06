// Package requestid attaches correlation ids to requests.
//
// Middleware reuses a valid inbound X-Request-ID header or generates a UUIDv4,
// stores it in the request context and echoes it back in the response. The
// graph client forwards the id from its context on every outbound call, so a
// single id ties together the inbound request, its log records and the Graph
// API requests made on its behalf.
//
//	mux := http.NewServeMux()
//	handler := requestid.Middleware(mux)
//
//	log := logger.New(logger.WithContextExtractors(requestid.LoggerExtractor()))
package requestid
