package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/fulldump/box"

	"github.com/light-bringer/procat-batchedit/internal/app/product/domain"
	"github.com/light-bringer/procat-batchedit/internal/app/product/queries/list_rows"
	"github.com/light-bringer/procat-batchedit/internal/app/product/validation"
)

// ErrBadRequest marks malformed query parameters.
var ErrBadRequest = errors.New("bad request")

// PrettyError is the error body of every failed request.
type PrettyError struct {
	Message     string                  `json:"message"`
	Description string                  `json:"description"`
	Fields      []validation.FieldError `json:"fields,omitempty"`
}

// AccessLog logs one line per request once it has been served.
func AccessLog(l *log.Logger) box.I {
	return func(next box.H) box.H {
		return func(ctx context.Context) {
			r := box.GetRequest(ctx)
			now := time.Now()
			defer func() {
				l.Println(now.UTC().Format(time.RFC3339Nano), formatRemoteAddr(r), r.Method, r.URL.String(), time.Since(now))
			}()

			next(ctx)
		}
	}
}

func formatRemoteAddr(r *http.Request) string {
	xorigin := strings.TrimSpace(strings.Split(
		r.Header.Get("X-Forwarded-For"), ",")[0])
	if xorigin != "" {
		return xorigin
	}

	if i := strings.LastIndex(r.RemoteAddr, ":"); i >= 0 {
		return r.RemoteAddr[:i]
	}
	return r.RemoteAddr
}

// RecoverFromPanic turns a handler panic into a box error.
func RecoverFromPanic(next box.H) box.H {
	return func(ctx context.Context) {
		defer func() {
			if err := recover(); err != nil {
				debug.PrintStack()
				box.SetError(ctx, fmt.Errorf("panic: %v", err))
			}
		}()
		next(ctx)
	}
}

// PrettyErrorInterceptor writes box errors as JSON with a matching status code.
func PrettyErrorInterceptor(next box.H) box.H {
	return func(ctx context.Context) {

		next(ctx)

		err := box.GetError(ctx)
		if err == nil {
			return
		}

		status, body := describeError(ctx, err)

		w := box.GetResponse(ctx)
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": body,
		})
	}
}

func describeError(ctx context.Context, err error) (int, PrettyError) {
	body := PrettyError{Message: err.Error()}

	var verr *validation.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.As(err, &verr):
		body.Description = "some values are not valid"
		body.Fields = verr.Fields
		return http.StatusUnprocessableEntity, body

	case errors.As(err, &syntaxErr), errors.As(err, &typeErr),
		errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		body.Description = "Malformed JSON"
		return http.StatusBadRequest, body

	case errors.Is(err, ErrBadRequest),
		errors.Is(err, list_rows.ErrUnknownField),
		errors.Is(err, list_rows.ErrInvalidFilter):
		body.Description = "invalid query"
		return http.StatusBadRequest, body

	case errors.Is(err, domain.ErrProductNotFound):
		body.Description = fmt.Sprintf("row '%s' not found", box.GetUrlParameter(ctx, "key"))
		return http.StatusNotFound, body

	case errors.Is(err, domain.ErrProductDeleted):
		body.Description = "row is marked for deletion"
		return http.StatusConflict, body

	case errors.Is(err, domain.ErrInvalidReference):
		body.Description = "row is not part of the working set"
		return http.StatusConflict, body

	case errors.Is(err, domain.ErrSourceConflict):
		body.Description = "stored products changed since they were read, reload and retry"
		return http.StatusConflict, body

	case errors.Is(err, domain.ErrCommitFailed):
		body.Description = "changes could not be saved, pending changes were kept"
		return http.StatusServiceUnavailable, body

	default:
		body.Description = "Unexpected error"
		return http.StatusInternalServerError, body
	}
}
