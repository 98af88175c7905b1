package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/vadimbarashkov/url-analytics/internal/entity"

	usecaseMock "github.com/vadimbarashkov/url-analytics/mocks/usecase"
)

type URLUseCaseTestSuite struct {
	suite.Suite
	errUnknown  error
	now         time.Time
	urlRepoMock *usecaseMock.MockUrlRepository
	uc          *URLUseCase
}

func (suite *URLUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.now = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
}

func (suite *URLUseCaseTestSuite) SetupSubTest() {
	suite.urlRepoMock = usecaseMock.NewMockUrlRepository(suite.T())
	suite.uc = NewURLUseCase(suite.urlRepoMock,
		WithClock(func() time.Time { return suite.now }),
		WithPasswordProtection(true),
	)
}

func (suite *URLUseCaseTestSuite) TearDownSubTest() {
	suite.urlRepoMock.AssertExpectations(suite.T())
}

func echoCreate(_ context.Context, url *entity.URL) (*entity.URL, error) {
	created := *url
	created.ID = 1
	return &created, nil
}

func hoursPtr(h int) *int {
	return &h
}

func (suite *URLUseCaseTestSuite) TestShortenURL() {
	suite.Run("invalid url", func() {
		for _, rawURL := range []string{"", "invalid url", "example.com", "ftp://example.com", "https://"} {
			url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: rawURL})

			suite.ErrorIs(err, entity.ErrInvalidInput, rawURL)
			suite.Nil(url)
		}
	})

	suite.Run("non-positive expiration hours", func() {
		for _, hours := range []int{0, -1} {
			url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{
				OriginalURL:     "https://example.com",
				ExpirationHours: hoursPtr(hours),
			})

			suite.ErrorIs(err, entity.ErrInvalidInput)
			suite.Nil(url)
		}
	})

	suite.Run("password while protection disabled", func() {
		suite.uc.passwordProtection = false

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{
			OriginalURL: "https://example.com",
			Password:    "secret",
		})

		suite.ErrorIs(err, entity.ErrInvalidInput)
		suite.Nil(url)
	})

	suite.Run("short code generation error", func() {
		suite.uc.shortCodeLength = -1

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})

		suite.Error(err)
		suite.Nil(url)
	})

	suite.Run("maximum retries error", func() {
		suite.urlRepoMock.
			On("Create", context.Background(), mock.Anything).
			Times(maxRetries).
			Return(nil, entity.ErrShortCodeExists)

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})

		suite.ErrorIs(err, ErrMaxRetriesExceeded)
		suite.Nil(url)
	})

	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("Create", context.Background(), mock.Anything).
			Once().
			Return(nil, suite.errUnknown)

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(url)
	})

	suite.Run("retry after collision", func() {
		var codes []string
		record := func(args mock.Arguments) {
			codes = append(codes, args.Get(1).(*entity.URL).ShortCode)
		}

		suite.urlRepoMock.
			On("Create", context.Background(), mock.Anything).
			Once().
			Run(record).
			Return(nil, entity.ErrShortCodeExists)
		suite.urlRepoMock.
			On("Create", context.Background(), mock.Anything).
			Once().
			Run(record).
			Return(echoCreate, nil)

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})

		suite.NoError(err)
		suite.Require().Len(codes, 2)
		suite.Equal(codes[1], url.ShortCode)
	})

	suite.Run("default expiration", func() {
		suite.urlRepoMock.
			On("Create", context.Background(), mock.MatchedBy(func(url *entity.URL) bool {
				return len(url.ShortCode) == defaultShortCodeLength &&
					url.OriginalURL == "https://example.com" &&
					url.PasswordHash == nil &&
					url.CreatedAt.Equal(suite.now) &&
					url.ExpiresAt.Equal(suite.now.Add(24*time.Hour))
			})).
			Once().
			Return(echoCreate, nil)

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})

		suite.NoError(err)
		suite.NotNil(url)
		suite.Equal("https://example.com", url.OriginalURL)
		suite.Equal(24*time.Hour, url.ExpiresAt.Sub(url.CreatedAt))
		suite.Zero(url.AccessCount)
	})

	suite.Run("custom expiration and password", func() {
		suite.urlRepoMock.
			On("Create", context.Background(), mock.MatchedBy(func(url *entity.URL) bool {
				return url.ExpiresAt.Equal(suite.now.Add(time.Hour)) && url.IsProtected()
			})).
			Once().
			Return(echoCreate, nil)

		url, err := suite.uc.ShortenURL(context.Background(), ShortenParams{
			OriginalURL:     "https://example.com",
			ExpirationHours: hoursPtr(1),
			Password:        "secret",
		})

		suite.NoError(err)
		suite.NotEqual("secret", *url.PasswordHash)
		suite.NoError(checkPassword(url, "secret"))
	})

	suite.Run("fresh code per call", func() {
		suite.urlRepoMock.
			On("Create", context.Background(), mock.Anything).
			Times(2).
			Return(echoCreate, nil)

		first, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})
		suite.Require().NoError(err)
		second, err := suite.uc.ShortenURL(context.Background(), ShortenParams{OriginalURL: "https://example.com"})
		suite.Require().NoError(err)

		suite.NotEqual(first.ShortCode, second.ShortCode)
	})
}

func (suite *URLUseCaseTestSuite) TestGenerateShortCode() {
	suite.Run("skips reserved codes", func() {
		uc := NewURLUseCase(nil, WithShortCodeLength(1), WithReservedCodes(strings.Split(
			"_-0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXY", "")...))

		for i := 0; i < 20; i++ {
			code, err := uc.generateShortCode()

			suite.NoError(err)
			suite.Equal("Z", code)
		}
	})

	suite.Run("fixed length", func() {
		uc := NewURLUseCase(nil, WithShortCodeLength(9))

		code, err := uc.generateShortCode()

		suite.NoError(err)
		suite.Len(code, 9)
	})
}

func (suite *URLUseCaseTestSuite) TestResolveShortCode() {
	active := func() *entity.URL {
		return &entity.URL{
			ID:          1,
			ShortCode:   "abc123",
			OriginalURL: "https://example.com",
			CreatedAt:   suite.now.Add(-time.Hour),
			ExpiresAt:   suite.now.Add(time.Hour),
		}
	}

	suite.Run("url not found", func() {
		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "")

		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(url)
	})

	suite.Run("url expired", func() {
		expired := active()
		expired.ExpiresAt = suite.now.Add(-time.Second)

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(expired, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "")

		suite.ErrorIs(err, entity.ErrURLExpired)
		suite.Nil(url)
		suite.urlRepoMock.AssertNotCalled(suite.T(), "IncrementAndLog", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(active(), nil)
		suite.urlRepoMock.
			On("IncrementAndLog", context.Background(), int64(1), "1.2.3.4", suite.now).
			Once().
			Return(nil, suite.errUnknown)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(url)
	})

	suite.Run("success", func() {
		updated := active()
		updated.AccessCount = 1

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(active(), nil)
		suite.urlRepoMock.
			On("IncrementAndLog", context.Background(), int64(1), "1.2.3.4", suite.now).
			Once().
			Return(updated, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "")

		suite.NoError(err)
		suite.Equal("https://example.com", url.OriginalURL)
		suite.Equal(int64(1), url.AccessCount)
	})

	suite.Run("password required", func() {
		protected := active()
		hash, err := hashPassword("secret")
		suite.Require().NoError(err)
		protected.PasswordHash = &hash

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(protected, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "")

		suite.ErrorIs(err, entity.ErrPasswordRequired)
		suite.Nil(url)
	})

	suite.Run("password mismatch", func() {
		protected := active()
		hash, err := hashPassword("secret")
		suite.Require().NoError(err)
		protected.PasswordHash = &hash

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(protected, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "wrong")

		suite.ErrorIs(err, entity.ErrPasswordMismatch)
		suite.Nil(url)
	})

	suite.Run("password match", func() {
		protected := active()
		hash, err := hashPassword("secret")
		suite.Require().NoError(err)
		protected.PasswordHash = &hash

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(protected, nil)
		suite.urlRepoMock.
			On("IncrementAndLog", context.Background(), int64(1), "1.2.3.4", suite.now).
			Once().
			Return(protected, nil)

		url, err := suite.uc.ResolveShortCode(context.Background(), "abc123", "1.2.3.4", "secret")

		suite.NoError(err)
		suite.NotNil(url)
	})
}

func (suite *URLUseCaseTestSuite) TestGetAnalytics() {
	stored := &entity.URL{
		ID:          1,
		ShortCode:   "abc123",
		OriginalURL: "https://example.com",
		URLStats:    entity.URLStats{AccessCount: 2},
		CreatedAt:   suite.now.Add(-48 * time.Hour),
		ExpiresAt:   suite.now.Add(-24 * time.Hour),
	}

	suite.Run("url not found", func() {
		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)

		analytics, err := suite.uc.GetAnalytics(context.Background(), "abc123", "")

		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(analytics)
	})

	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(stored, nil)
		suite.urlRepoMock.
			On("GetAnalytics", context.Background(), int64(1)).
			Once().
			Return(nil, suite.errUnknown)

		analytics, err := suite.uc.GetAnalytics(context.Background(), "abc123", "")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(analytics)
	})

	suite.Run("success for expired url", func() {
		logs := []entity.AccessLog{
			{ID: 1, URLID: 1, Timestamp: suite.now.Add(-47 * time.Hour), IPAddress: "1.2.3.4"},
			{ID: 2, URLID: 1, Timestamp: suite.now.Add(-46 * time.Hour), IPAddress: "5.6.7.8"},
		}

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(stored, nil)
		suite.urlRepoMock.
			On("GetAnalytics", context.Background(), int64(1)).
			Once().
			Return(&entity.Analytics{
				OriginalURL: "https://example.com",
				URLStats:    entity.URLStats{AccessCount: 2},
				AccessLogs:  logs,
			}, nil)

		analytics, err := suite.uc.GetAnalytics(context.Background(), "abc123", "")

		suite.NoError(err)
		suite.Equal("https://example.com", analytics.OriginalURL)
		suite.Equal(int64(2), analytics.AccessCount)
		suite.Equal(logs, analytics.AccessLogs)
	})

	suite.Run("count comes from the snapshot, not the lookup", func() {
		// The lookup row is stale: one more access committed before the snapshot was taken.
		logs := []entity.AccessLog{
			{ID: 1, URLID: 1, Timestamp: suite.now.Add(-47 * time.Hour), IPAddress: "1.2.3.4"},
			{ID: 2, URLID: 1, Timestamp: suite.now.Add(-46 * time.Hour), IPAddress: "5.6.7.8"},
			{ID: 3, URLID: 1, Timestamp: suite.now.Add(-45 * time.Hour), IPAddress: "9.9.9.9"},
		}

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(stored, nil)
		suite.urlRepoMock.
			On("GetAnalytics", context.Background(), int64(1)).
			Once().
			Return(&entity.Analytics{
				OriginalURL: "https://example.com",
				URLStats:    entity.URLStats{AccessCount: 3},
				AccessLogs:  logs,
			}, nil)

		analytics, err := suite.uc.GetAnalytics(context.Background(), "abc123", "")

		suite.NoError(err)
		suite.Equal(int64(3), analytics.AccessCount)
		suite.Len(analytics.AccessLogs, int(analytics.AccessCount))
	})

	suite.Run("password required", func() {
		hash, err := hashPassword("secret")
		suite.Require().NoError(err)
		protected := *stored
		protected.PasswordHash = &hash

		suite.urlRepoMock.
			On("FindByShortCode", context.Background(), "abc123").
			Once().
			Return(&protected, nil)

		analytics, err := suite.uc.GetAnalytics(context.Background(), "abc123", "")

		suite.ErrorIs(err, entity.ErrPasswordRequired)
		suite.Nil(analytics)
	})
}

func TestURLUseCase(t *testing.T) {
	suite.Run(t, new(URLUseCaseTestSuite))
}
