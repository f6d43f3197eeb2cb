// Package client provides the HTTP client for the NASA POWER daily point API.
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"solar_potential_backend/platform/logger"
)

const (
	// DefaultBaseURL is the public daily point endpoint.
	DefaultBaseURL = "https://power.larc.nasa.gov/api/temporal/daily/point"

	parameterSurfaceShortwave = "ALLSKY_SFC_SW_DWN"
	communityRenewableEnergy  = "RE"
	defaultFillValue          = -999.0
	dateLayout                = "20060102"
	maxResponseBytes          = 4 << 20
)

// ErrNoData is returned when the series contains no usable daily values.
var ErrNoData = errors.New("nasa power: no valid daily values")

// DailySeries is the summary of one coordinate's irradiance series.
//
// Monthly holds the mean of the valid days of each calendar month, January
// first. A month without valid days carries the annual mean. SeasonalVariation
// is (max-min)/max over Monthly.
type DailySeries struct {
	Mean              float64
	ValidDays         int
	Monthly           []float64
	SeasonalVariation float64
}

// Client is the HTTP client for NASA POWER.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *logger.Logger
}

// New creates a NASA POWER client. An empty baseURL selects the public endpoint.
func New(baseURL string, timeout time.Duration, log *logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		log:        log,
	}
}

// DailyMean fetches the daily shortwave irradiance between start and end inclusive
// and summarizes the valid days overall and per calendar month.
func (c *Client) DailyMean(ctx context.Context, latitude, longitude float64, start, end time.Time) (DailySeries, error) {
	params := url.Values{}
	params.Set("parameters", parameterSurfaceShortwave)
	params.Set("community", communityRenewableEnergy)
	params.Set("latitude", strconv.FormatFloat(latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(longitude, 'f', 4, 64))
	params.Set("start", start.Format(dateLayout))
	params.Set("end", end.Format(dateLayout))
	params.Set("format", "JSON")

	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return DailySeries{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("nasa power request failed", "error", err)
		return DailySeries{}, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnprocessableEntity, http.StatusBadRequest:
		c.log.Error("nasa power rejected parameters", "status", resp.StatusCode, "url", reqURL)
		return DailySeries{}, fmt.Errorf("bad request: status %d", resp.StatusCode)
	case http.StatusTooManyRequests:
		c.log.Warn("nasa power throttled", "status", resp.StatusCode)
		return DailySeries{}, fmt.Errorf("throttled: status %d", resp.StatusCode)
	default:
		c.log.Error("nasa power upstream error", "status", resp.StatusCode)
		return DailySeries{}, fmt.Errorf("upstream error: status %d", resp.StatusCode)
	}

	var payload apiResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&payload); err != nil {
		c.log.Error("nasa power decode failed", "error", err)
		return DailySeries{}, fmt.Errorf("decode response: %w", err)
	}

	return payload.summarize()
}

// apiResponse is the subset of the GeoJSON point response we read.
type apiResponse struct {
	Header struct {
		FillValue *float64 `json:"fill_value"`
	} `json:"header"`
	Properties struct {
		Parameter map[string]map[string]float64 `json:"parameter"`
	} `json:"properties"`
}

func (r apiResponse) summarize() (DailySeries, error) {
	series, ok := r.Properties.Parameter[parameterSurfaceShortwave]
	if !ok {
		return DailySeries{}, fmt.Errorf("decode response: missing %s", parameterSurfaceShortwave)
	}

	fill := defaultFillValue
	if r.Header.FillValue != nil {
		fill = *r.Header.FillValue
	}

	var sum float64
	var n int
	var monthSum [12]float64
	var monthDays [12]int
	for day, v := range series {
		if v == fill || v < 0 {
			continue
		}
		sum += v
		n++

		date, err := time.Parse(dateLayout, day)
		if err != nil {
			continue
		}
		monthSum[date.Month()-1] += v
		monthDays[date.Month()-1]++
	}
	if n == 0 {
		return DailySeries{}, ErrNoData
	}

	mean := sum / float64(n)
	monthly := make([]float64, 12)
	for i := range monthly {
		if monthDays[i] == 0 {
			monthly[i] = mean
			continue
		}
		monthly[i] = monthSum[i] / float64(monthDays[i])
	}

	return DailySeries{
		Mean:              mean,
		ValidDays:         n,
		Monthly:           monthly,
		SeasonalVariation: seasonalVariation(monthly),
	}, nil
}

func seasonalVariation(monthly []float64) float64 {
	lo, hi := monthly[0], monthly[0]
	for _, v := range monthly[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	if hi <= 0 {
		return 0
	}
	return (hi - lo) / hi
}
