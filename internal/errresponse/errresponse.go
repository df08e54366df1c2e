package errresponse

import (
	"net/http"

	"github.com/go-chi/render"
)

// ErrResponse renderer type for handling all sorts of errors.
//
// Err keeps the low-level error for logging; only ErrorText reaches the
// client inside the {ok:false, error} envelope.
type ErrResponse struct {
	Err            error `json:"-"` // low-level runtime error
	HTTPStatusCode int   `json:"-"` // http response status code

	OK        bool   `json:"ok"`
	ErrorText string `json:"error"` // user-level error message
}

func (e *ErrResponse) Render(w http.ResponseWriter, r *http.Request) error {
	render.Status(r, e.HTTPStatusCode)

	return nil
}

// ErrInvalidRequest maps client input failures to 400. The message is shown
// to the user as is.
func ErrInvalidRequest(err error, message string) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusBadRequest,
		ErrorText:      message,
	}
}

// ErrInternal hides err behind a generic message.
func ErrInternal(err error) render.Renderer {
	return &ErrResponse{
		Err:            err,
		HTTPStatusCode: http.StatusInternalServerError,
		ErrorText:      "internal error",
	}
}

var ErrNotFound = &ErrResponse{HTTPStatusCode: http.StatusNotFound, ErrorText: "not found"}

var ErrMethodNotAllowed = &ErrResponse{HTTPStatusCode: http.StatusMethodNotAllowed, ErrorText: "method not allowed"}
