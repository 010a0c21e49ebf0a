package types

type SuccessEnvelope struct {
	Data any `json:"data"`
}

// PageMeta describes the window a list endpoint returned.
type PageMeta struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

type ListEnvelope struct {
	Data any      `json:"data"`
	Meta PageMeta `json:"meta"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
