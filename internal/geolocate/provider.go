// Package geolocate abstracts the "current coordinates" provider consulted
// once per delivery eligibility check.
package geolocate

import (
	"context"
	"time"

	"github.com/guonaihong/gout"
	"github.com/pkg/errors"

	"github.com/nochelabs/botilleria/pkg/geo"
)

// Provider yields the customer's current coordinates. A single attempt, no
// retries; failure is reported to the caller, never hidden.
type Provider interface {
	Current(ctx context.Context) (geo.Point, error)
}

// HTTPProvider queries an IP-geolocation endpoint returning a JSON body with
// lat/lon fields (ip-api.com shape).
type HTTPProvider struct {
	endpoint string
	timeout  time.Duration
}

func NewHTTPProvider(endpoint string) *HTTPProvider {
	return &HTTPProvider{endpoint: endpoint, timeout: 5 * time.Second}
}

func (p *HTTPProvider) Current(ctx context.Context) (geo.Point, error) {
	if p.endpoint == "" {
		return geo.Point{}, errors.New("geolocate: no endpoint configured")
	}
	var resp struct {
		Status string  `json:"status"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	err := gout.GET(p.endpoint).
		WithContext(ctx).
		SetTimeout(p.timeout).
		BindJSON(&resp).
		Do()
	if err != nil {
		return geo.Point{}, errors.Wrap(err, "geolocate: request failed")
	}
	if resp.Status != "" && resp.Status != "success" {
		return geo.Point{}, errors.Errorf("geolocate: provider status %q", resp.Status)
	}
	return geo.Point{Lat: resp.Lat, Lng: resp.Lon}, nil
}

// Static always returns a fixed coordinate. Used when the customer's browser
// already supplied its position, and in tests.
type Static struct {
	Point geo.Point
}

func (s Static) Current(context.Context) (geo.Point, error) {
	return s.Point, nil
}
