package maps

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"solar_potential_backend/platform/apperr"
	"solar_potential_backend/platform/logger"
)

const (
	searchPath      = "/search"
	resultLimit     = "5"
	maxPayloadBytes = 1 << 20

	msgGeocodingDisabled = "address lookup is not configured"
)

// Service geocodes free-text addresses through a Nominatim-compatible endpoint.
type Service struct {
	baseURL   string
	userAgent string
	client    *http.Client
	log       *logger.Logger
}

// NewService creates a geocoding service. An empty baseURL disables lookups.
func NewService(baseURL, userAgent string, log *logger.Logger) *Service {
	return &Service{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		client:    &http.Client{Timeout: 5 * time.Second},
		log:       log,
	}
}

// SearchAddress returns up to five candidates for query. country optionally restricts
// results to one ISO 3166-1 alpha-2 code.
func (s *Service) SearchAddress(ctx context.Context, query, country string) ([]AddressSuggestion, error) {
	if s.baseURL == "" {
		return nil, apperr.Unavailable(msgGeocodingDisabled)
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("format", "json")
	params.Add("addressdetails", "1")
	params.Add("limit", resultLimit)
	if country != "" {
		params.Add("countrycodes", strings.ToLower(country))
	}

	reqURL := fmt.Sprintf("%s%s?%s", s.baseURL, searchPath, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		s.log.Error("nominatim request failed", "error", err)
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		s.log.Error("nominatim upstream error", "status", resp.StatusCode)
		return nil, fmt.Errorf("upstream api error: %d", resp.StatusCode)
	}

	var rawResults []nominatimResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxPayloadBytes)).Decode(&rawResults); err != nil {
		s.log.Error("failed to decode nominatim payload", "error", err)
		return nil, err
	}

	suggestions := make([]AddressSuggestion, 0, len(rawResults))
	for _, raw := range rawResults {
		suggestion, ok := buildSuggestion(raw)
		if !ok {
			continue
		}
		suggestions = append(suggestions, suggestion)
	}

	return suggestions, nil
}

// buildSuggestion drops candidates whose coordinates do not parse or fall outside
// the valid range, since they could not seed an estimate.
func buildSuggestion(raw nominatimResponse) (AddressSuggestion, bool) {
	lat, err := strconv.ParseFloat(raw.Lat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return AddressSuggestion{}, false
	}
	lon, err := strconv.ParseFloat(raw.Lon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return AddressSuggestion{}, false
	}

	suggestion := AddressSuggestion{
		Street:      raw.Address.Road,
		HouseNumber: raw.Address.HouseNumber,
		ZipCode:     raw.Address.Postcode,
		City:        pickCity(raw.Address),
		Country:     raw.Address.Country,
		Latitude:    lat,
		Longitude:   lon,
	}

	suggestion.Label = buildLabel(suggestion)
	if suggestion.Label == "" {
		suggestion.Label = raw.DisplayName
	}
	return suggestion, true
}

func pickCity(address nominatimAddress) string {
	for _, candidate := range []string{address.City, address.Town, address.Village, address.Municipality, address.Hamlet} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

// buildLabel renders "Street 12, 1234 AB City". It returns "" without a street or city.
func buildLabel(suggestion AddressSuggestion) string {
	if suggestion.Street == "" || suggestion.City == "" {
		return ""
	}

	parts := []string{suggestion.Street}
	if suggestion.HouseNumber != "" {
		parts = append(parts, suggestion.HouseNumber)
	}
	parts = append(parts, ",")
	if suggestion.ZipCode != "" {
		parts = append(parts, suggestion.ZipCode)
	}
	parts = append(parts, suggestion.City)

	label := strings.Join(parts, " ")
	label = strings.ReplaceAll(label, " ,", ",")
	return strings.TrimSpace(label)
}
