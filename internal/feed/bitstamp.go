// Package feed fetches market prices for the ticker demo.
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultBitstampURL is the public Bitstamp API root.
const DefaultBitstampURL = "https://www.bitstamp.net"

// ErrBadPair is returned for a currency pair that is not two codes, like
// "BTC/USD".
var ErrBadPair = errors.New("feed: bad currency pair")

// Ticker is the 24 hour summary of one pair. Prices keep the exchange's
// decimal formatting.
type Ticker struct {
	Pair   string
	Last   string
	High   string
	Low    string
	Volume string
	Time   time.Time
}

// Lines formats t as two display rows: "BTC/USD 2300.00" and
// "24h Hi 2400.00 Lo 2200.00".
func (t Ticker) Lines() [2]string {
	return [2]string{
		fmt.Sprintf("%s %s", t.Pair, t.Last),
		fmt.Sprintf("24h Hi %s Lo %s", t.High, t.Low),
	}
}

// BitstampClient reads the Bitstamp v2 ticker endpoint.
type BitstampClient struct {
	BaseURL    string
	HTTPClient *http.Client
	UserAgent  string
}

func NewBitstampClient() *BitstampClient {
	return &BitstampClient{
		BaseURL:    DefaultBitstampURL,
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		UserAgent:  "panels",
	}
}

type bitstampTicker struct {
	Last      string `json:"last"`
	High      string `json:"high"`
	Low       string `json:"low"`
	Volume    string `json:"volume"`
	Timestamp string `json:"timestamp"`
}

// Ticker fetches pair, written as "BTC/USD".
func (c *BitstampClient) Ticker(ctx context.Context, pair string) (Ticker, error) {
	base, quote, ok := strings.Cut(pair, "/")
	if !ok || base == "" || quote == "" {
		return Ticker{}, fmt.Errorf("%w: %q", ErrBadPair, pair)
	}
	url := strings.TrimRight(c.BaseURL, "/") + "/api/v2/ticker/" + strings.ToLower(base+quote) + "/"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Ticker{}, fmt.Errorf("bitstamp %s: %w", pair, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return Ticker{}, fmt.Errorf("bitstamp %s: %w", pair, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return Ticker{}, fmt.Errorf("bitstamp %s: %s: %s", pair, resp.Status, strings.TrimSpace(string(body)))
	}

	var raw bitstampTicker
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Ticker{}, fmt.Errorf("bitstamp %s: decode: %w", pair, err)
	}
	if raw.Last == "" {
		return Ticker{}, fmt.Errorf("bitstamp %s: response has no last price", pair)
	}
	t := Ticker{
		Pair:   strings.ToUpper(base + "/" + quote),
		Last:   raw.Last,
		High:   raw.High,
		Low:    raw.Low,
		Volume: raw.Volume,
	}
	var secs int64
	if _, err := fmt.Sscan(raw.Timestamp, &secs); err == nil {
		t.Time = time.Unix(secs, 0)
	}
	return t, nil
}
