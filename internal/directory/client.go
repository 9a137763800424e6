// FeelGive - Crisis Response Nonprofit Recommendations
// Copyright 2026 Hurakan
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/hurakan/feelgive-sub000

package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/hurakan/feelgive-sub000/internal/metrics"
	"github.com/hurakan/feelgive-sub000/internal/models"
)

// DefaultTake is the result page size used when the caller does not set
// one. The provider caps pages at 50.
const DefaultTake = 50

// SearchOptions narrows a search call.
type SearchOptions struct {
	// Causes filters results to these cause tags. Empty means no filter.
	Causes []string
	// Take is the maximum number of results. Defaults to DefaultTake.
	Take int
}

// BrowseOptions pages through a cause listing.
type BrowseOptions struct {
	// Take is the maximum number of results. Defaults to DefaultTake.
	Take int
	// Page is the 1-based page number. Zero means the first page.
	Page int
}

// API is the directory provider contract. Client implements it against
// the real provider; BreakerClient and CachedClient wrap it; tests mock
// it.
//
// All methods are safe for concurrent use. Batch callers must collect
// per-call failures and continue; a single failed call never aborts a
// batch.
type API interface {
	// Search finds organizations matching a free-text term.
	Search(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error)

	// Browse lists organizations under a cause tag.
	Browse(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error)

	// GetDetails fetches the full record for one organization.
	GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error)

	// Ping verifies the provider is reachable.
	Ping(ctx context.Context) error
}

// Config holds the client's connection and resilience settings.
type Config struct {
	BaseURL        string
	APIKey         string
	Timeout        time.Duration
	MaxRetries     int
	RetryBaseDelay time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
}

// DefaultConfig returns the production resilience settings: 10s per-call
// timeout, two retries at 250ms and 1s, 8 req/s outbound pacing.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxRetries:     2,
		RetryBaseDelay: 250 * time.Millisecond,
		RateLimitRPS:   8,
		RateLimitBurst: 8,
	}
}

// Client is the concrete HTTP client for the directory provider.
//
// Every call is URL-encoded, paced by the outbound rate limiter, bounded
// by the per-call timeout, and classified into a typed *Error on
// failure. Rate limits, 5xx responses, and timeouts are retried with
// exponential backoff (250ms, 1s) before the error surfaces.
//
// Thread safety: safe for concurrent use; each call builds its own
// request.
type Client struct {
	baseURL        string
	apiKey         string
	client         *http.Client
	maxRetries     int
	retryBaseDelay time.Duration
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// NewClient creates a directory client. Zero-valued resilience fields
// fall back to DefaultConfig values.
func NewClient(cfg Config, logger zerolog.Logger) *Client {
	def := DefaultConfig()
	if cfg.Timeout <= 0 {
		cfg.Timeout = def.Timeout
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = def.MaxRetries
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = def.RetryBaseDelay
	}
	if cfg.RateLimitRPS <= 0 {
		cfg.RateLimitRPS = def.RateLimitRPS
	}
	if cfg.RateLimitBurst <= 0 {
		cfg.RateLimitBurst = def.RateLimitBurst
	}

	return &Client{
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:         cfg.APIKey,
		client:         &http.Client{Timeout: cfg.Timeout},
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		limiter:        rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst),
		logger:         logger.With().Str("component", "directory").Logger(),
	}
}

// Search finds organizations matching a free-text term.
func (c *Client) Search(ctx context.Context, term string, opts SearchOptions) ([]models.Candidate, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("search term is required")
	}

	params := c.baseParams()
	params.Set("take", strconv.Itoa(takeOrDefault(opts.Take)))
	if len(opts.Causes) > 0 {
		params.Set("causes", strings.Join(opts.Causes, ","))
	}

	reqURL := fmt.Sprintf("%s/search/%s?%s", c.baseURL, url.PathEscape(term), params.Encode())

	var out searchResponse
	if err := c.getJSON(ctx, "search", reqURL, &out); err != nil {
		return nil, err
	}
	return mapCandidates(out.Nonprofits), nil
}

// Browse lists organizations under a cause tag.
func (c *Client) Browse(ctx context.Context, cause string, opts BrowseOptions) ([]models.Candidate, error) {
	cause = strings.TrimSpace(cause)
	if cause == "" {
		return nil, fmt.Errorf("browse cause is required")
	}

	params := c.baseParams()
	params.Set("take", strconv.Itoa(takeOrDefault(opts.Take)))
	if opts.Page > 0 {
		params.Set("page", strconv.Itoa(opts.Page))
	}

	reqURL := fmt.Sprintf("%s/browse/%s?%s", c.baseURL, url.PathEscape(cause), params.Encode())

	var out searchResponse
	if err := c.getJSON(ctx, "browse", reqURL, &out); err != nil {
		return nil, err
	}
	return mapCandidates(out.Nonprofits), nil
}

// GetDetails fetches the full record for one organization.
func (c *Client) GetDetails(ctx context.Context, identifier string) (*models.CharityDetails, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return nil, fmt.Errorf("details identifier is required")
	}

	reqURL := fmt.Sprintf("%s/nonprofit/%s?%s", c.baseURL, url.PathEscape(identifier), c.baseParams().Encode())

	var out detailsResponse
	if err := c.getJSON(ctx, "details", reqURL, &out); err != nil {
		return nil, err
	}
	details := mapDetails(out.Data.Nonprofit)
	return &details, nil
}

// Ping verifies the provider is reachable with a minimal search call.
func (c *Client) Ping(ctx context.Context) error {
	params := c.baseParams()
	params.Set("take", "1")
	reqURL := fmt.Sprintf("%s/search/%s?%s", c.baseURL, url.PathEscape("health"), params.Encode())

	var out searchResponse
	return c.getJSON(ctx, "ping", reqURL, &out)
}

func (c *Client) baseParams() url.Values {
	params := url.Values{}
	if c.apiKey != "" {
		params.Set("apiKey", c.apiKey)
	}
	return params
}

func takeOrDefault(take int) int {
	if take <= 0 {
		return DefaultTake
	}
	return take
}

// getJSON performs one logical call: pace, request, classify, retry.
// Only retryable kinds (rate limit, 5xx, timeout) re-attempt, with
// backoff 250ms then 1s; a Retry-After header overrides the computed
// delay. The call's final outcome is recorded once in metrics.
func (c *Client) getJSON(ctx context.Context, op, reqURL string, result interface{}) error {
	start := time.Now()
	var lastErr error

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			lastErr = err
			break
		}
		if err := c.limiter.Wait(ctx); err != nil {
			lastErr = err
			break
		}

		err := c.doOnce(ctx, op, reqURL, result)
		if err == nil {
			metrics.RecordDirectoryRequest(op, metrics.OutcomeSuccess, time.Since(start))
			return nil
		}
		lastErr = err

		if !Retryable(err) || attempt == c.maxRetries {
			break
		}

		// 250ms, then 1s: the base delay quadruples per extra attempt.
		delay := c.retryBaseDelay << (2 * uint(attempt))
		var dirErr *Error
		if errors.As(err, &dirErr) && dirErr.RetryAfter > 0 {
			delay = dirErr.RetryAfter
		}

		metrics.RecordDirectoryRetry(op)
		c.logger.Warn().Err(err).Str("operation", op).Int("attempt", attempt+1).
			Dur("backoff", delay).Msg("Directory call failed, retrying")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			metrics.RecordDirectoryRequest(op, outcomeFor(ctx.Err()), time.Since(start))
			return ctx.Err()
		}
	}

	metrics.RecordDirectoryRequest(op, outcomeFor(lastErr), time.Since(start))
	return lastErr
}

// doOnce performs a single attempt and classifies any failure.
func (c *Client) doOnce(ctx context.Context, op, reqURL string, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return &Error{Op: op, Kind: ErrNetwork, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return c.classifyTransport(op, ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return classifyStatus(op, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return &Error{Op: op, Kind: ErrServerError, StatusCode: resp.StatusCode,
			Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// classifyTransport maps a transport-level failure to a typed error.
// Parent-context cancellation passes through untyped so batch callers
// can tell an abandoned call from a failed one.
func (c *Client) classifyTransport(op string, ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Op: op, Kind: ErrTimeout, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Op: op, Kind: ErrTimeout, Err: err}
	}
	return &Error{Op: op, Kind: ErrNetwork, Err: err}
}

// classifyStatus maps a non-200 response to a typed error, capturing a
// bounded copy of the body and any Retry-After hint.
func classifyStatus(op string, resp *http.Response) error {
	body := readBodyForError(resp.Body)

	e := &Error{
		Op:         op,
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		e.Kind = ErrRateLimited
		if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
			if seconds, err := time.ParseDuration(retryAfter + "s"); err == nil {
				e.RetryAfter = seconds
			}
		}
	case resp.StatusCode == http.StatusNotFound:
		e.Kind = ErrNotFound
	case resp.StatusCode >= 500:
		e.Kind = ErrServerError
	default:
		e.Kind = ErrBadRequest
	}

	return e
}

// outcomeFor maps an error to its metrics label.
func outcomeFor(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, ErrRateLimited):
		return metrics.OutcomeRateLimited
	case errors.Is(err, ErrNotFound):
		return metrics.OutcomeNotFound
	case errors.Is(err, ErrServerError):
		return metrics.OutcomeServerError
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrUnavailable):
		return metrics.OutcomeRejected
	default:
		return metrics.OutcomeNetworkError
	}
}

// searchResponse is the provider's search/browse payload.
type searchResponse struct {
	Nonprofits []wireNonprofit `json:"nonprofits"`
}

// detailsResponse is the provider's detail payload.
type detailsResponse struct {
	Data struct {
		Nonprofit wireNonprofit `json:"nonprofit"`
	} `json:"data"`
}

// wireNonprofit is an organization record as the provider sends it.
// Fields beyond name and identifiers are frequently absent.
type wireNonprofit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	PrimarySlug     string   `json:"primarySlug"`
	EIN             string   `json:"ein"`
	Description     string   `json:"description"`
	DescriptionLong string   `json:"descriptionLong"`
	LocationAddress string   `json:"locationAddress"`
	Tags            []string `json:"tags"`
	IsDisbursable   bool     `json:"isDisbursable"`
	WebsiteURL      string   `json:"websiteUrl"`
	ProfileURL      string   `json:"profileUrl"`
	LogoURL         string   `json:"logoUrl"`
	CoverImageURL   string   `json:"coverImageUrl"`
}

// identifier picks the stable dedup key: tax registration number first,
// then the provider slug, then the raw record ID.
func (w wireNonprofit) identifier() string {
	switch {
	case w.EIN != "":
		return w.EIN
	case w.PrimarySlug != "":
		return w.PrimarySlug
	default:
		return w.ID
	}
}

// mapCandidates converts wire records to domain candidates, dropping
// records with no usable identity.
func mapCandidates(wire []wireNonprofit) []models.Candidate {
	out := make([]models.Candidate, 0, len(wire))
	for _, w := range wire {
		id := w.identifier()
		if id == "" || w.Name == "" {
			continue
		}
		out = append(out, models.Candidate{
			Identifier:    id,
			Name:          w.Name,
			Description:   w.Description,
			WebsiteURL:    w.WebsiteURL,
			ProfileURL:    w.ProfileURL,
			LocationText:  w.LocationAddress,
			CategoryText:  strings.Join(w.Tags, ", "),
			Categories:    w.Tags,
			LogoURL:       w.LogoURL,
			CoverImageURL: w.CoverImageURL,
			IsDisbursable: w.IsDisbursable,
		})
	}
	return out
}

// mapDetails converts a wire record to the full details shape.
func mapDetails(w wireNonprofit) models.CharityDetails {
	return models.CharityDetails{
		Identifier:      w.identifier(),
		Name:            w.Name,
		EIN:             w.EIN,
		Description:     w.Description,
		DescriptionLong: w.DescriptionLong,
		WebsiteURL:      w.WebsiteURL,
		ProfileURL:      w.ProfileURL,
		LocationText:    w.LocationAddress,
		Categories:      w.Tags,
		LogoURL:         w.LogoURL,
		CoverImageURL:   w.CoverImageURL,
		IsDisbursable:   w.IsDisbursable,
	}
}

// Compile-time interface checks.
var _ API = (*Client)(nil)
