// Package api provides the Garrison character asset HTTP API.
//
// Routes:
//
//	GET|PUT /character/foundry/{foundryId}/token
//	GET|PUT /character/foundry/{foundryId}/portrait
//	GET|PUT /character/foundry/{foundryId}/json
//	GET     /user/me
//	GET     /healthz, /readyz, /metrics
package api
