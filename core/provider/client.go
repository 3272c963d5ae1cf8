package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"megasena-monitor/core/metrics"
	"megasena-monitor/core/reconcile"
	"megasena-monitor/core/utils"

	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	dateLayout   = "02/01/2006"
	maxBodyBytes = 1 << 20
)

// Client fetches official Mega-Sena results over HTTP.
type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	http      *http.Client
	limiter   *rate.Limiter
	logger    *zap.Logger
}

// New creates a provider client from configuration.
func New(cfg *Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		timeout:   timeout,
		http:      &http.Client{Timeout: timeout},
		limiter:   rate.NewLimiter(limit, burst),
		logger:    logger,
	}
}

// FetchDraw returns the official result for a draw.
// A 404 or an empty result means the draw has not happened yet.
func (c *Client) FetchDraw(ctx context.Context, number int) (*reconcile.DrawResult, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("%s/%d", c.baseURL, number))
	if err != nil {
		metrics.ObserveProviderFetch("error")
		return nil, &reconcile.FetchError{Draw: number, Err: err}
	}
	if status == http.StatusNotFound {
		metrics.ObserveProviderFetch("not_yet_available")
		return nil, reconcile.ErrNotYetAvailable
	}
	if status < 200 || status > 299 {
		metrics.ObserveProviderFetch("error")
		return nil, &reconcile.FetchError{Draw: number, Err: fmt.Errorf("unexpected status %d", status)}
	}

	result, err := parseDraw(body)
	if err != nil {
		if errors.Is(err, reconcile.ErrNotYetAvailable) {
			metrics.ObserveProviderFetch("not_yet_available")
			return nil, err
		}
		metrics.ObserveProviderFetch("error")
		return nil, &reconcile.FetchError{Draw: number, Err: err}
	}
	if result.Number != number {
		metrics.ObserveProviderFetch("error")
		return nil, &reconcile.FetchError{Draw: number, Err: fmt.Errorf("response is for draw %d", result.Number)}
	}

	metrics.ObserveProviderFetch("ok")
	c.logger.Debug("Fetched draw", zap.Int("draw", number), zap.Ints("numbers", result.Numbers))
	return result, nil
}

// FetchLatest returns the most recent published draw.
func (c *Client) FetchLatest(ctx context.Context) (*reconcile.DrawResult, error) {
	body, status, err := c.get(ctx, c.baseURL+"/")
	if err != nil {
		metrics.ObserveProviderFetch("error")
		return nil, fmt.Errorf("fetch latest draw: %w", err)
	}
	if status < 200 || status > 299 {
		metrics.ObserveProviderFetch("error")
		return nil, fmt.Errorf("fetch latest draw: unexpected status %d", status)
	}
	result, err := parseDraw(body)
	if err != nil {
		metrics.ObserveProviderFetch("error")
		return nil, fmt.Errorf("fetch latest draw: %w", err)
	}
	metrics.ObserveProviderFetch("ok")
	return result, nil
}

// FetchLatestDrawNumber returns the most recent published draw number.
func (c *Client) FetchLatestDrawNumber(ctx context.Context) (int, error) {
	latest, err := c.FetchLatest(ctx)
	if err != nil {
		return 0, err
	}
	return latest.Number, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}

// parseDraw decodes a Caixa result document.
func parseDraw(body []byte) (*reconcile.DrawResult, error) {
	if !gjson.ValidBytes(body) {
		return nil, errors.New("malformed response body")
	}
	doc := gjson.ParseBytes(body)

	number := int(doc.Get("numero").Int())
	dezenas := doc.Get("dezenas").Array()
	if number <= 0 || len(dezenas) == 0 {
		return nil, reconcile.ErrNotYetAvailable
	}

	numbers := make([]int, 0, len(dezenas))
	for _, d := range dezenas {
		n := utils.ToInt(strings.TrimSpace(d.String()))
		if n == 0 {
			return nil, fmt.Errorf("invalid dezena %q", d.String())
		}
		numbers = append(numbers, n)
	}
	if len(numbers) != reconcile.DrawSize {
		return nil, fmt.Errorf("expected %d dezenas, got %d", reconcile.DrawSize, len(numbers))
	}

	result := &reconcile.DrawResult{
		Number:      number,
		Numbers:     reconcile.SortedCopy(numbers),
		Accumulated: doc.Get("acumulado").Bool(),
	}
	if raw := doc.Get("dataApuracao").String(); raw != "" {
		date, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("invalid dataApuracao %q: %w", raw, err)
		}
		result.DrawDate = date
	}

	// Top tier is faixa 1 (sena).
	top := doc.Get(`listaRateioPremio.#(faixa==1)`)
	if top.Exists() {
		winners := int(top.Get("numeroDeGanhadores").Int())
		result.Winners = &winners
		if v := top.Get("valorPremio"); v.Exists() {
			amount, err := decimal.NewFromString(v.Raw)
			if err != nil {
				amount = decimal.NewFromFloat(v.Float())
			}
			result.PrizeAmount = &amount
		}
	}

	return result, nil
}
