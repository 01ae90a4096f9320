package api

import (
	"net/http"

	"github.com/go-chi/render"
)

// Error is a generic error structure that is used to send error responses to the client.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Response is a generic response structure that is used to send responses to the client.
type Response struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
	Error  *Error `json:"error,omitempty"`
}

// NewResponse creates an empty response.
func NewResponse() *Response {
	return &Response{}
}

// Error message
func (e *Error) Error() string {
	return e.Message
}

// Set data to response
func (rsp *Response) SetData(data any) *Response {
	rsp.Data = data
	rsp.Error = nil

	return rsp
}

// Set error to response, with optional details
func (rsp *Response) SetError(code string, message string, details ...any) *Response {
	rsp.Data = nil
	rsp.Error = &Error{
		Code:    code,
		Message: message,
	}

	switch len(details) {
	case 0:
	case 1:
		rsp.Error.Details = details[0]
	default:
		rsp.Error.Details = details
	}

	return rsp
}

// Send success response to client
func (rsp *Response) Ok(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusOK, "ok", "", "")
}

// Send created response to client, location points at the new resource
func (rsp *Response) Created(w http.ResponseWriter, r *http.Request, location string) {
	w.Header().Set("Location", location)
	rsp.send(w, r, http.StatusCreated, "ok", "", "")
}

// Send error response to client
func (rsp *Response) BadRequest(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusBadRequest, "error", "bad_request", "Bad request")
}

// Send error response to client
func (rsp *Response) Unauthorized(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusUnauthorized, "error", "unauthorized", "Unauthorized")
}

// Send error response to client
func (rsp *Response) NotFound(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusNotFound, "error", "not_found", "Not found")
}

// Send error response to client
func (rsp *Response) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusMethodNotAllowed, "error", "method_not_allowed", "Method not allowed")
}

// Send error response to client
func (rsp *Response) UnprocessableEntity(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusUnprocessableEntity, "error", "unprocessable_entity", "Unprocessable entity")
}

// Send error response to client
func (rsp *Response) InternalServerError(w http.ResponseWriter, r *http.Request) {
	rsp.send(w, r, http.StatusInternalServerError, "error", "internal_server_error", "Internal server error")
}

func (rsp *Response) send(w http.ResponseWriter, r *http.Request, status int, label string, code string, message string) {
	rsp.Status = label
	if label == "error" && rsp.Error == nil {
		rsp.Data = nil
		rsp.Error = &Error{
			Code:    code,
			Message: message,
		}
	}

	render.Status(r, status)
	render.JSON(w, r, rsp)
}
