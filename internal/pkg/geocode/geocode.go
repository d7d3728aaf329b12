// Package geocode turns coordinates into a human readable address.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ojt-track/ojt-attendance-backend-go/internal/config"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

const defaultTimeout = 5 * time.Second

var (
	ErrNoResult       = errors.New("no address found for coordinates")
	ErrUpstreamStatus = errors.New("geocoder returned an error status")
)

// Geocoder resolves an address for a coordinate pair.
type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lng float64) (string, error)
}

// Noop is used when geocoding is disabled.
type Noop struct{}

func (Noop) ReverseGeocode(context.Context, float64, float64) (string, error) {
	return "", ErrNoResult
}

// PhotonClient queries a Photon reverse geocoding endpoint. Requests are
// throttled, deduplicated per coordinate and cached. A lookup never takes
// longer than the configured timeout, including time spent waiting on the
// throttle.
type PhotonClient struct {
	httpClient *http.Client
	timeout    time.Duration
	baseURL    string
	language   string
	limiter    *rate.Limiter
	cache      Cache
	ttl        time.Duration
	group      singleflight.Group
}

func NewPhotonClient(cfg config.GeocoderConfig, cache Cache) *PhotonClient {
	if cache == nil {
		cache = NewMemoryCache()
	}
	rps := cfg.RatePerSecond
	if rps <= 0 {
		rps = 1
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PhotonClient{
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		language:   cfg.Language,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		cache:      cache,
		ttl:        cfg.CacheTTL,
	}
}

type photonResponse struct {
	Features []struct {
		Properties struct {
			Name    string `json:"name"`
			Street  string `json:"street"`
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"properties"`
	} `json:"features"`
}

// cacheKey rounds to five decimals, roughly one metre.
func (c *PhotonClient) cacheKey(lat, lng float64) string {
	return fmt.Sprintf("geocode:%s:%.5f,%.5f", c.language, lat, lng)
}

func (c *PhotonClient) ReverseGeocode(ctx context.Context, lat, lng float64) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	key := c.cacheKey(lat, lng)

	if addr, ok, err := c.cache.Get(ctx, key); err == nil && ok {
		return addr, nil
	}

	// the shared lookup is detached from the first caller's cancellation
	detached := context.WithoutCancel(ctx)
	ch := c.group.DoChan(key, func() (interface{}, error) {
		fetchCtx, cancel := context.WithTimeout(detached, c.timeout)
		defer cancel()

		addr, err := c.fetch(fetchCtx, lat, lng)
		if err != nil {
			return "", err
		}
		// cache failures only cost a repeat lookup
		_ = c.cache.Set(fetchCtx, key, addr, c.ttl)
		return addr, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", fmt.Errorf("reverse geocode: %w", ctx.Err())
	}
}

func (c *PhotonClient) fetch(ctx context.Context, lat, lng float64) (string, error) {
	// fails at once when the throttle delay would pass the deadline
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("reverse geocode throttled: %w", err)
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lng, 'f', -1, 64))
	if c.language != "" {
		q.Set("lang", c.language)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}

	var body photonResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode geocoder response: %w", err)
	}
	if len(body.Features) == 0 {
		return "", ErrNoResult
	}

	p := body.Features[0].Properties
	var parts []string
	for _, s := range []string{p.Name, p.Street, p.City, p.Country} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	if len(parts) == 0 {
		return "", ErrNoResult
	}
	return strings.Join(parts, ", "), nil
}
