package transport

import "encoding/json"

// Envelope is the standard API response wrapper: `{success:true, data}` on
// success, `{success:false, message}` on failure. Missing carries the
// unresolved ids of a rejected batch.
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Missing []string    `json:"missing,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Success: true,
		Data:    data,
	}
}

// NewError returns a failure envelope.
func NewError(message string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
	}
}

// NewBatchMissing returns the failure envelope for an unresolvable batch.
func NewBatchMissing(message string, missing []string) Envelope {
	return Envelope{
		Success: false,
		Message: message,
		Missing: missing,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
