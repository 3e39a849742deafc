package types

// SuccessEnvelope wraps every 2xx body. The composition report, a quote, or
// a quote listing all ride in Data unchanged.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the wire shape of a failed request. Code is one of the stable
// error codes (VALIDATION_ERROR, PRICE_UNAVAILABLE, BELOW_MINIMUM_ORDER,
// QUOTE_NOT_EDITABLE, ...); Details carries field-level context such as the
// suggested quantity on a minimum-order rejection.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
