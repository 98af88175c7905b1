package recoverer

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	mw "github.com/vadimbarashkov/url-analytics/pkg/middleware"
)

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

var serverErrorResponse = errorResponse{
	Status:  "error",
	Message: "server error occurred",
}

// New returns a middleware that turns a panic in the handler chain into a 500 JSON response.
// http.ErrAbortHandler is re-raised so the server can abort the connection.
func New(logger *slog.Logger) mw.Middleware {
	const op = "middleware.recoverer.New"

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					if rvr == http.ErrAbortHandler { //nolint:errorlint
						panic(rvr)
					}

					logger.Error(
						"panic recovered",
						slog.Group(op,
							slog.Any("err", rvr),
							slog.String("request_id", middleware.GetReqID(r.Context())),
						),
					)

					render.Status(r, http.StatusInternalServerError)
					render.JSON(w, r, serverErrorResponse)
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
