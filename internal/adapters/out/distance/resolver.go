// Package distance provides the road-distance resolver used to price local
// pickup and delivery requests. Results are cached in redis keyed by the
// normalized origin/destination pair; a resolver outage degrades to zero
// miles so request intake never blocks on the mapping provider.
package distance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/pkg/errs"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const (
	requestTimeout = 10 * time.Second
	cacheTTL       = 30 * 24 * time.Hour
)

// Resolver implements ports.DistanceService against a routing HTTP API with
// a redis read-through cache. Road distances between fixed addresses are
// stable, so cached entries live for a month.
type Resolver struct {
	session *http.Client
	baseURL string
	apiKey  string
	cache   *redis.Client
	logger  *slog.Logger
}

// NewResolver creates a distance resolver. The redis client is optional;
// without it every lookup goes to the routing API.
func NewResolver(baseURL, apiKey string, cache *redis.Client, logger *slog.Logger) (*Resolver, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("distance service base url")
	}

	return &Resolver{
		session: &http.Client{Timeout: requestTimeout},
		baseURL: baseURL,
		apiKey:  apiKey,
		cache:   cache,
		logger:  logger,
	}, nil
}

type distanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type distanceResponse struct {
	Miles float64 `json:"miles"`
}

// DistanceMiles resolves the road distance between two addresses. On
// resolver failure it returns 0 miles with an ExternalServiceError; the
// caller records the degradation and prices without a distance surcharge.
func (r *Resolver) DistanceMiles(ctx context.Context, origin, destination kernel.Address) (float64, error) {
	logger := r.logger.With(slog.String("adapter", "distance"))

	key := cacheKey(origin, destination)
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, key).Float64()
		if err == nil {
			return cached, nil
		}
		if err != redis.Nil {
			logger.Warn("distance cache read failed", slog.Any("error", err))
		}
	}

	miles, err := r.fetch(ctx, origin, destination)
	if err != nil {
		logger.Error("distance resolver unavailable", slog.Any("error", err))
		return 0, errs.NewExternalServiceErrorWithFallback("distance resolver", err)
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, miles, cacheTTL).Err(); err != nil {
			logger.Warn("distance cache write failed", slog.Any("error", err))
		}
	}

	return miles, nil
}

func (r *Resolver) fetch(ctx context.Context, origin, destination kernel.Address) (float64, error) {
	body, err := json.Marshal(distanceRequest{
		Origin:      origin.String(),
		Destination: destination.String(),
	})
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/distance", bytes.NewReader(body))
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if r.apiKey != "" {
		req.Header.Set("Authorization", r.apiKey)
	}

	resp, err := r.session.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("distance resolver returned %d: %s", resp.StatusCode, raw)
	}

	var decoded distanceResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return 0, err
	}
	if decoded.Miles < 0 {
		return 0, fmt.Errorf("distance resolver returned negative miles: %f", decoded.Miles)
	}

	return decoded.Miles, nil
}

// cacheKey normalizes both addresses into a stable redis key.
func cacheKey(origin, destination kernel.Address) string {
	normalize := func(a kernel.Address) string {
		return strings.ToLower(strings.Join(strings.Fields(a.String()), " "))
	}
	return "distance:" + normalize(origin) + "|" + normalize(destination)
}
