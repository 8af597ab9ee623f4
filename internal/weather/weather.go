package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

type Client struct {
	baseUrl string
	apiKey  string
	http    *http.Client
}

type timelineResponse struct {
	CurrentConditions *struct {
		Temp       float64 `json:"temp"`
		Conditions string  `json:"conditions"`
	} `json:"currentConditions"`
}

func New(baseUrl, apiKey string, timeout time.Duration) *Client {
	return &Client{baseUrl: baseUrl, apiKey: apiKey, http: &http.Client{Timeout: timeout}}
}

// Current returns "City: 3.5°C, Overcast".
func (c *Client) Current(ctx context.Context, city string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/today?%s", c.baseUrl, url.PathEscape(city), url.Values{
		"unitGroup":   {"metric"},
		"include":     {"current"},
		"key":         {c.apiKey},
		"contentType": {"json"},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", errors.Wrap(err, "build weather request")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "weather for %s", city)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("weather for %s: status %d", city, resp.StatusCode)
	}

	var result timelineResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", errors.Wrapf(err, "decode weather for %s", city)
	}
	if result.CurrentConditions == nil {
		return "", errors.Errorf("weather for %s: no current conditions", city)
	}
	return fmt.Sprintf("%s: %v°C, %s", city, result.CurrentConditions.Temp, result.CurrentConditions.Conditions), nil
}

// Summary never fails: a city that cannot be fetched gets a placeholder line.
func (c *Client) Summary(ctx context.Context, city string) string {
	line, err := c.Current(ctx, city)
	if err != nil {
		slog.Error("getting weather", "err", err, "city", city)
		return Unavailable(city)
	}
	return line
}

func Unavailable(city string) string {
	return fmt.Sprintf("Не удалось получить погоду для %s", city)
}
