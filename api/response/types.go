/*
Package response - unified API response handling.

Design principles:
1. HTTP status mapping lives in the API layer only
2. Error responses never expose internals (stacks, driver messages)
3. Every response carries the request id for log correlation
4. Internal errors surface as a generic "internal server error"

Response shapes:

	success: { success: true, data: {...}, message: "...", code: 200, request_id: "..." }
	failure: { success: false, error: "ERROR_CODE", message: "...", code: 4xx/5xx, request_id: "..." }
*/
package response

// RequestIDKey is the gin context key holding the request id.
const RequestIDKey = "request_id"

// Response is the unified response envelope.
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"` // error code, not details
	Code      int         `json:"code"`            // HTTP status code
	Message   string      `json:"message"`         // user-visible message
	RequestID string      `json:"request_id,omitempty"`
}
