package http

import (
	"errors"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/vadimbarashkov/url-analytics/internal/entity"
)

const statusError = "error"

// shortenRequest represents the structure for a request to shorten a URL.
type shortenRequest struct {
	OriginalURL     string   `json:"original_url" validate:"required,url"`
	ExpirationHours *float64 `json:"expiration_hours" validate:"omitnil,gt=0,lte=876000,whole"`
	Password        string   `json:"password" validate:"omitempty,max=72"`
}

// expirationHours converts the validated expiration to whole hours.
func (r *shortenRequest) expirationHours() *int {
	if r.ExpirationHours == nil {
		return nil
	}
	hours := int(*r.ExpirationHours)
	return &hours
}

// isWholeNumber accepts integral numbers written either as 1 or 1.0.
func isWholeNumber(fl validator.FieldLevel) bool {
	f := fl.Field().Float()
	return f == math.Trunc(f)
}

// shortenResponse represents the structure for a response containing the shortened URL.
type shortenResponse struct {
	ShortenedURL   string    `json:"shortened_url"`
	ShortCode      string    `json:"short_code"`
	ExpirationTime time.Time `json:"expiration_time"`
}

// toShortenResponse converts an entity.URL to a shortenResponse using baseURL as the short link origin.
func toShortenResponse(baseURL string, url *entity.URL) shortenResponse {
	return shortenResponse{
		ShortenedURL:   baseURL + "/" + url.ShortCode,
		ShortCode:      url.ShortCode,
		ExpirationTime: url.ExpiresAt,
	}
}

type redirectResponse struct {
	RedirectTo string `json:"redirect_to"`
}

type accessLogResponse struct {
	Timestamp time.Time `json:"timestamp"`
	IPAddress string    `json:"ip_address"`
}

// analyticsResponse represents the structure for a response containing URL access analytics.
type analyticsResponse struct {
	OriginalURL string              `json:"original_url"`
	AccessCount int64               `json:"access_count"`
	AccessLogs  []accessLogResponse `json:"access_logs"`
}

// toAnalyticsResponse converts an entity.Analytics to an analyticsResponse.
func toAnalyticsResponse(analytics *entity.Analytics) analyticsResponse {
	logs := make([]accessLogResponse, 0, len(analytics.AccessLogs))
	for _, l := range analytics.AccessLogs {
		logs = append(logs, accessLogResponse{
			Timestamp: l.Timestamp,
			IPAddress: l.IPAddress,
		})
	}

	return analyticsResponse{
		OriginalURL: analytics.OriginalURL,
		AccessCount: analytics.AccessCount,
		AccessLogs:  logs,
	}
}

// validationError represents an individual validation error.
type validationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// errorResponse represents a structured error response.
type errorResponse struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Errors  []validationError `json:"errors,omitempty"`
}

// Predefined error responses for common scenarios.
var (
	emptyRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "empty request body",
	}

	invalidRequestBodyResponse = errorResponse{
		Status:  statusError,
		Message: "invalid request body",
	}

	urlNotFoundResponse = errorResponse{
		Status:  statusError,
		Message: "url not found",
	}

	urlExpiredResponse = errorResponse{
		Status:  statusError,
		Message: "url has expired",
	}

	passwordRequiredResponse = errorResponse{
		Status:  statusError,
		Message: "password required",
	}

	passwordMismatchResponse = errorResponse{
		Status:  statusError,
		Message: "invalid password",
	}

	invalidInputResponse = errorResponse{
		Status:  statusError,
		Message: "invalid input",
	}

	serverErrorResponse = errorResponse{
		Status:  statusError,
		Message: "server error occurred",
	}
)

// messageForTag returns a user-friendly message based on the validation tag.
func messageForTag(tag string) string {
	switch tag {
	case "required":
		return "this field is required"
	case "url":
		return "invalid url"
	case "gt":
		return "must be a positive number"
	case "lte":
		return "value is too large"
	case "whole":
		return "must be a whole number"
	case "max":
		return "value is too long"
	default:
		return "invalid value"
	}
}

// getValidationErrors processes validation errors and returns a list of validationError.
func getValidationErrors(err error) []validationError {
	var validationErrs []validationError

	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		for _, e := range errs {
			validationErrs = append(validationErrs, validationError{
				Field:   e.Field(),
				Message: messageForTag(e.Tag()),
			})
		}
	}

	return validationErrs
}

// validationErrorResponse constructs an errorResponse for validation errors.
func validationErrorResponse(err error) errorResponse {
	return errorResponse{
		Status:  statusError,
		Message: "validation error",
		Errors:  getValidationErrors(err),
	}
}
