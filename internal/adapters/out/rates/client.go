// Package rates provides the HTTP client for the carrier rate aggregator.
// The aggregator returns one priced option per carrier service for a measured
// shipment; when it is unreachable the client degrades to a synthesized
// house-fleet option so quoting never goes fully dark.
package rates

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"cargolink/internal/core/domain/model/kernel"
	"cargolink/internal/core/domain/model/parcel"
	"cargolink/internal/core/ports"
	"cargolink/internal/pkg/errs"

	"github.com/goccy/go-json"
)

const requestTimeout = 10 * time.Second

// HouseFleetOption configures the synthesized fallback rate used when the
// aggregator is down. PerPoundRate and MinimumCharge come from configuration
// so the degraded price tracks the house tariff.
type HouseFleetOption struct {
	CarrierCode   string
	CarrierName   string
	ServiceLevel  string
	PerPoundRate  float64
	MinimumCharge float64
	EstimatedDays int
}

// Client implements ports.RateService against the rate aggregator HTTP API.
type Client struct {
	session  *http.Client
	baseURL  string
	apiKey   string
	fallback HouseFleetOption
	logger   *slog.Logger
}

// NewClient creates a rate aggregator client.
func NewClient(baseURL, apiKey string, fallback HouseFleetOption, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("rate service base url")
	}
	if fallback.CarrierCode == "" {
		return nil, errs.NewValueIsRequiredError("house fleet carrier code")
	}

	return &Client{
		session:  &http.Client{Timeout: requestTimeout},
		baseURL:  baseURL,
		apiKey:   apiKey,
		fallback: fallback,
		logger:   logger,
	}, nil
}

type rateRequest struct {
	WeightLb   float64 `json:"weight_lb"`
	LengthIn   float64 `json:"length_in"`
	WidthIn    float64 `json:"width_in"`
	HeightIn   float64 `json:"height_in"`
	City       string  `json:"city"`
	Region     string  `json:"region"`
	PostalCode string  `json:"postal_code"`
}

type rateResponse struct {
	Options []struct {
		CarrierCode   string  `json:"carrier_code"`
		CarrierName   string  `json:"carrier_name"`
		ServiceLevel  string  `json:"service_level"`
		Price         float64 `json:"price"`
		EstimatedDays int     `json:"estimated_days"`
		Internal      bool    `json:"internal"`
	} `json:"options"`
}

// GetRates fetches carrier options for a measured shipment. On aggregator
// failure it returns the house-fleet fallback option together with an
// ExternalServiceError so the caller can surface the degradation.
func (c *Client) GetRates(
	ctx context.Context,
	weightLb float64,
	dims parcel.Dimensions,
	destination kernel.Address,
) ([]ports.RateOption, error) {
	logger := c.logger.With(slog.String("adapter", "rates"))

	body, err := json.Marshal(rateRequest{
		WeightLb:   weightLb,
		LengthIn:   dims.LengthIn,
		WidthIn:    dims.WidthIn,
		HeightIn:   dims.HeightIn,
		City:       destination.City(),
		Region:     destination.Region(),
		PostalCode: destination.PostalCode(),
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rates", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", c.apiKey)
	}

	resp, err := c.session.Do(req)
	if err != nil {
		logger.Error("rate aggregator unreachable", slog.Any("error", err))
		return c.degraded(weightLb, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		statusErr := fmt.Errorf("rate aggregator returned %d: %s", resp.StatusCode, raw)
		logger.Error("rate aggregator error response", slog.Int("status_code", resp.StatusCode))
		return c.degraded(weightLb, statusErr)
	}

	var decoded rateResponse
	if err = json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		logger.Error("rate aggregator response malformed", slog.Any("error", err))
		return c.degraded(weightLb, err)
	}

	options := make([]ports.RateOption, 0, len(decoded.Options))
	for _, o := range decoded.Options {
		options = append(options, ports.RateOption{
			CarrierCode:   o.CarrierCode,
			CarrierName:   o.CarrierName,
			ServiceLevel:  o.ServiceLevel,
			Price:         o.Price,
			EstimatedDays: o.EstimatedDays,
			Internal:      o.Internal,
		})
	}

	return options, nil
}

// degraded synthesizes the house-fleet option priced off the configured
// tariff so a quote can still be produced while the aggregator is down.
func (c *Client) degraded(weightLb float64, cause error) ([]ports.RateOption, error) {
	price := weightLb * c.fallback.PerPoundRate
	if price < c.fallback.MinimumCharge {
		price = c.fallback.MinimumCharge
	}

	option := ports.RateOption{
		CarrierCode:   c.fallback.CarrierCode,
		CarrierName:   c.fallback.CarrierName,
		ServiceLevel:  c.fallback.ServiceLevel,
		Price:         price,
		EstimatedDays: c.fallback.EstimatedDays,
		Internal:      true,
	}

	return []ports.RateOption{option}, errs.NewExternalServiceErrorWithFallback("carrier rates", cause)
}
