package transport

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Envelope wraps every API payload, success or failure, in one shape.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  interface{} `json:"error,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess wraps response data with optional metadata.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: statusSuccess,
		Data:   data,
		Meta:   meta,
	}
}

// NewError wraps an error payload under a machine-readable code.
func NewError(code string, detail interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: statusError,
		Code:   code,
		Error:  detail,
		Meta:   meta,
	}
}
