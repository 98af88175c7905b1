// Package usecase implements the URL shortening, redirect and analytics logic
// on top of an injected URL repository.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vadimbarashkov/url-analytics/internal/entity"
)

var ErrMaxRetriesExceeded = errors.New("maximum retries exceeded for generating short code")

const (
	defaultShortCodeLength = 7
	defaultExpiration      = 24 * time.Hour
	maxRetries             = 5
	maxExpirationHours     = 100 * 365 * 24
)

type urlRepository interface {
	Create(ctx context.Context, url *entity.URL) (*entity.URL, error)
	FindByShortCode(ctx context.Context, shortCode string) (*entity.URL, error)
	IncrementAndLog(ctx context.Context, urlID int64, ipAddress string, accessedAt time.Time) (*entity.URL, error)
	GetAnalytics(ctx context.Context, urlID int64) (*entity.Analytics, error)
}

// ShortenParams describes a request to shorten a URL.
// A nil ExpirationHours selects the default expiration.
type ShortenParams struct {
	OriginalURL     string
	ExpirationHours *int
	Password        string
}

type Option func(*URLUseCase)

func WithShortCodeLength(n int) Option {
	return func(uc *URLUseCase) {
		if n > 0 {
			uc.shortCodeLength = n
		}
	}
}

func WithDefaultExpiration(d time.Duration) Option {
	return func(uc *URLUseCase) {
		if d > 0 {
			uc.defaultExpiration = d
		}
	}
}

// WithPasswordProtection allows passwords to be attached to new URLs.
func WithPasswordProtection(enabled bool) Option {
	return func(uc *URLUseCase) {
		uc.passwordProtection = enabled
	}
}

// WithReservedCodes excludes route names from the generated short codes.
func WithReservedCodes(codes ...string) Option {
	return func(uc *URLUseCase) {
		for _, code := range codes {
			uc.reservedCodes[code] = struct{}{}
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(uc *URLUseCase) {
		uc.now = now
	}
}

type URLUseCase struct {
	urlRepo            urlRepository
	shortCodeLength    int
	defaultExpiration  time.Duration
	passwordProtection bool
	reservedCodes      map[string]struct{}
	now                func() time.Time
}

func NewURLUseCase(urlRepo urlRepository, opts ...Option) *URLUseCase {
	uc := &URLUseCase{
		urlRepo:           urlRepo,
		shortCodeLength:   defaultShortCodeLength,
		defaultExpiration: defaultExpiration,
		reservedCodes:     make(map[string]struct{}),
		now:               time.Now,
	}

	for _, opt := range opts {
		opt(uc)
	}

	return uc
}

// ShortenURL validates the request, generates a fresh short code and stores the URL.
// Code collisions reported by the repository are retried up to maxRetries times.
func (uc *URLUseCase) ShortenURL(ctx context.Context, params ShortenParams) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ShortenURL"

	if err := validateOriginalURL(params.OriginalURL); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ttl, err := uc.expiration(params.ExpirationHours)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var passwordHash *string
	if params.Password != "" {
		if !uc.passwordProtection {
			return nil, fmt.Errorf("%s: password protection is disabled: %w", op, entity.ErrInvalidInput)
		}

		hash, err := hashPassword(params.Password)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		passwordHash = &hash
	}

	now := uc.now()

	for i := 0; i < maxRetries; i++ {
		shortCode, err := uc.generateShortCode()
		if err != nil {
			return nil, fmt.Errorf("%s: failed to generate short code: %w", op, err)
		}

		url, err := uc.urlRepo.Create(ctx, &entity.URL{
			ShortCode:    shortCode,
			OriginalURL:  params.OriginalURL,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			ExpiresAt:    now.Add(ttl),
		})
		if err != nil {
			if errors.Is(err, entity.ErrShortCodeExists) {
				continue
			}

			return nil, fmt.Errorf("%s: failed to shorten url: %w", op, err)
		}

		return url, nil
	}

	return nil, fmt.Errorf("%s: %w", op, ErrMaxRetriesExceeded)
}

// ResolveShortCode returns the URL behind shortCode and records the access from clientIP.
// Expired URLs are rejected without touching the access counter.
func (uc *URLUseCase) ResolveShortCode(ctx context.Context, shortCode, clientIP, password string) (*entity.URL, error) {
	const op = "usecase.URLUseCase.ResolveShortCode"

	url, err := uc.urlRepo.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to resolve short code: %w", op, err)
	}

	if err := checkPassword(url, password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := uc.now()
	if url.IsExpired(now) {
		return nil, fmt.Errorf("%s: %w", op, entity.ErrURLExpired)
	}

	url, err = uc.urlRepo.IncrementAndLog(ctx, url.ID, clientIP, now)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to record access: %w", op, err)
	}

	return url, nil
}

// GetAnalytics returns the access count and the ordered access log of the URL.
func (uc *URLUseCase) GetAnalytics(ctx context.Context, shortCode, password string) (*entity.Analytics, error) {
	const op = "usecase.URLUseCase.GetAnalytics"

	url, err := uc.urlRepo.FindByShortCode(ctx, shortCode)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to get url: %w", op, err)
	}

	if err := checkPassword(url, password); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	analytics, err := uc.urlRepo.GetAnalytics(ctx, url.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read analytics: %w", op, err)
	}

	return analytics, nil
}

func (uc *URLUseCase) expiration(hours *int) (time.Duration, error) {
	if hours == nil {
		return uc.defaultExpiration, nil
	}

	if *hours <= 0 || *hours > maxExpirationHours {
		return 0, fmt.Errorf("expiration hours out of range: %w", entity.ErrInvalidInput)
	}

	return time.Duration(*hours) * time.Hour, nil
}
