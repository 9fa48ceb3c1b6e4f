package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrNotFound is returned when the API answers 404.
var ErrNotFound = errors.New("tmdb: not found")

// Fetcher defines the catalog calls the controllers depend on.
// This interface is implemented by *Client and can be used for testing.
type Fetcher interface {
	FetchUpcoming(ctx context.Context) ([]MovieSummary, error)
	FetchGenres(ctx context.Context) ([]Genre, error)
	FetchMovie(ctx context.Context, id int64) (*MovieDetail, error)
}

// Ensure Client implements Fetcher at compile time.
var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage     = "en"
	defaultUserAgent    = "marquee/0.1"
	defaultTimeout      = 10 * time.Second
	maxErrorBody        = 4 * 1024
)

// Options configure a Client.
type Options struct {
	BaseURL  string
	APIKey   string
	Language string
	Timeout  time.Duration
	// RequestsPerSecond caps outbound calls; zero disables the limiter.
	RequestsPerSecond float64
	Logger            logrus.FieldLogger
}

// Client talks to the TMDB v3 HTTP API.
type Client struct {
	baseURL   *url.URL
	apiKey    string
	language  string
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	log       logrus.FieldLogger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	language := strings.TrimSpace(opts.Language)
	if language == "" {
		language = DefaultLanguage
	}
	logger := opts.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	var limiter *rate.Limiter
	if opts.RequestsPerSecond > 0 {
		burst := max(int(opts.RequestsPerSecond), 1)
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), burst)
	}
	return &Client{
		baseURL:   base,
		apiKey:    strings.TrimSpace(opts.APIKey),
		language:  language,
		http:      &http.Client{Timeout: timeout},
		limiter:   limiter,
		userAgent: defaultUserAgent,
		log:       logger.WithField("component", "tmdb"),
	}, nil
}

// FetchUpcoming retrieves the upcoming-movies list in server order.
func (c *Client) FetchUpcoming(ctx context.Context) ([]MovieSummary, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload UpcomingResponse
	if err := c.get(ctx, "/movie/upcoming", nil, &payload); err != nil {
		return nil, err
	}
	movies, ok := decodeList[MovieSummary](payload.Results)
	if !ok {
		c.log.WithField("field", "results").Debug("malformed upcoming payload, using empty list")
	}
	return movies, nil
}

// FetchGenres retrieves the movie genre catalog.
func (c *Client) FetchGenres(ctx context.Context) ([]Genre, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	values.Set("language", c.language)
	var payload GenreListResponse
	if err := c.get(ctx, "/genre/movie/list", values, &payload); err != nil {
		return nil, err
	}
	genres, ok := decodeList[Genre](payload.Genres)
	if !ok {
		c.log.WithField("field", "genres").Debug("malformed genre payload, using empty list")
	}
	return genres, nil
}

// FetchMovie retrieves the full detail record for one movie.
func (c *Client) FetchMovie(ctx context.Context, id int64) (*MovieDetail, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("movie id required")
	}
	var payload detailPayload
	if err := c.get(ctx, "/movie/"+strconv.FormatInt(id, 10), nil, &payload); err != nil {
		return nil, err
	}
	genres, ok := decodeList[Genre](payload.Genres)
	if !ok && len(payload.Genres) > 0 {
		c.log.WithFields(logrus.Fields{"field": "genres", "movie_id": id}).Debug("malformed detail genres, using empty list")
	}
	return &MovieDetail{
		ID:            payload.ID,
		Title:         payload.Title,
		OriginalTitle: payload.OriginalTitle,
		Tagline:       payload.Tagline,
		Overview:      payload.Overview,
		BackdropPath:  payload.BackdropPath,
		PosterPath:    payload.PosterPath,
		ReleaseDate:   payload.ReleaseDate,
		Runtime:       payload.Runtime,
		Status:        payload.Status,
		VoteAverage:   payload.VoteAverage,
		VoteCount:     payload.VoteCount,
		Homepage:      payload.Homepage,
		Genres:        genres,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, values url.Values, dest any) error {
	if values == nil {
		values = url.Values{}
	}
	values.Set("api_key", c.apiKey)
	reqURL := c.baseURL.JoinPath(path)
	reqURL.RawQuery = values.Encode()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"elapsed": time.Since(started).String(),
	}).Debug("api request")

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("api %s: %w", path, ErrNotFound)
	}
	if resp.StatusCode >= 400 {
		return statusError(path, resp)
	}
	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func statusError(path string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var apiErr apiError
	if err := json.Unmarshal(body, &apiErr); err == nil && strings.TrimSpace(apiErr.StatusMessage) != "" {
		return fmt.Errorf("api %s returned status %d: %s", path, resp.StatusCode, strings.TrimSpace(apiErr.StatusMessage))
	}
	return fmt.Errorf("api %s returned status %d", path, resp.StatusCode)
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "https://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api base url %q: %w", raw, err)
	}
	u.Path = strings.TrimRight(u.Path, "/")
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
