package model

// Principal is the caller identity resolved from a bearer token. It lives
// only for the duration of one request.
type Principal struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
