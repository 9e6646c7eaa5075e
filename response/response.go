package response

// Response is the envelope for every JSON endpoint.
type Response struct {
	Msg  string `json:"msg,omitempty"`
	Data any    `json:"data,omitempty"`
}
