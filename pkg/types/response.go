// Package types holds the JSON shapes shared by every endpoint.
package types

// SuccessEnvelope wraps every successful payload as {"data": ...}.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the body of a failed request. Details only carries
// field-level information for codes that allow it.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// Message is the payload of actions that have nothing to return but a
// confirmation, such as removing someone from a group.
type Message struct {
	Message string `json:"message"`
}
