package usecase

import (
	"fmt"
	"net/url"

	"github.com/vadimbarashkov/url-analytics/internal/entity"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// generateShortCode draws a fixed-length code from a crypto-strong source,
// skipping codes that collide with reserved route names.
func (uc *URLUseCase) generateShortCode() (string, error) {
	for {
		shortCode, err := gonanoid.New(uc.shortCodeLength)
		if err != nil {
			return "", err
		}

		if _, reserved := uc.reservedCodes[shortCode]; !reserved {
			return shortCode, nil
		}
	}
}

func validateOriginalURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("empty url: %w", entity.ErrInvalidInput)
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil {
		return fmt.Errorf("invalid url: %w", entity.ErrInvalidInput)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("url must be absolute http(s): %w", entity.ErrInvalidInput)
	}

	return nil
}
