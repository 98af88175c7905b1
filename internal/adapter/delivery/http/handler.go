package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httplog/v2"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/url-analytics/internal/entity"
	"github.com/vadimbarashkov/url-analytics/internal/usecase"
)

// PasswordHeader carries the password of a protected short URL.
const PasswordHeader = "X-Password"

func handlePing(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "pong")
}

type urlUseCase interface {
	ShortenURL(ctx context.Context, params usecase.ShortenParams) (*entity.URL, error)
	ResolveShortCode(ctx context.Context, shortCode, clientIP, password string) (*entity.URL, error)
	GetAnalytics(ctx context.Context, shortCode, password string) (*entity.Analytics, error)
}

type urlHandler struct {
	useCase  urlUseCase
	validate *validator.Validate
	baseURL  string
}

func newURLHandler(useCase urlUseCase, validate *validator.Validate, baseURL string) *urlHandler {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterValidation("whole", isWholeNumber) //nolint:errcheck

	return &urlHandler{
		useCase:  useCase,
		validate: validate,
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

func (h *urlHandler) shortenURL(w http.ResponseWriter, r *http.Request) {
	var req shortenRequest

	if err := render.DecodeJSON(r.Body, &req); err != nil {
		if errors.Is(err, io.EOF) {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, emptyRequestBodyResponse)
			return
		}

		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidRequestBodyResponse)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, validationErrorResponse(err))
		return
	}

	url, err := h.useCase.ShortenURL(r.Context(), usecase.ShortenParams{
		OriginalURL:     req.OriginalURL,
		ExpirationHours: req.expirationHours(),
		Password:        req.Password,
	})
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, toShortenResponse(h.baseURL, url))
}

// redirect answers with 302 to the original URL. The target is repeated in the body
// for clients that do not follow redirects.
func (h *urlHandler) redirect(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	url, err := h.useCase.ResolveShortCode(r.Context(), shortCode, clientIP(r), r.Header.Get(PasswordHeader))
	if err != nil {
		renderError(w, r, err)
		return
	}

	w.Header().Set("Location", url.OriginalURL)
	render.Status(r, http.StatusFound)
	render.JSON(w, r, redirectResponse{RedirectTo: url.OriginalURL})
}

func (h *urlHandler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	shortCode := chi.URLParam(r, "shortCode")

	analytics, err := h.useCase.GetAnalytics(r.Context(), shortCode, r.Header.Get(PasswordHeader))
	if err != nil {
		renderError(w, r, err)
		return
	}

	render.Status(r, http.StatusOK)
	render.JSON(w, r, toAnalyticsResponse(analytics))
}

// renderError maps use case errors to HTTP responses. Unexpected errors are attached
// to the request log entry and hidden from the client.
func renderError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, entity.ErrInvalidInput):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, invalidInputResponse)
	case errors.Is(err, entity.ErrURLNotFound):
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, urlNotFoundResponse)
	case errors.Is(err, entity.ErrURLExpired):
		render.Status(r, http.StatusGone)
		render.JSON(w, r, urlExpiredResponse)
	case errors.Is(err, entity.ErrPasswordRequired):
		render.Status(r, http.StatusUnauthorized)
		render.JSON(w, r, passwordRequiredResponse)
	case errors.Is(err, entity.ErrPasswordMismatch):
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, passwordMismatchResponse)
	default:
		httplog.LogEntrySetField(r.Context(), "err", slog.AnyValue(err))

		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, serverErrorResponse)
	}
}

// clientIP returns the caller address without the port.
// RealIP middleware has already replaced RemoteAddr with a forwarded address if present.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
