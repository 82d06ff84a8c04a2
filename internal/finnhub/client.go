package finnhub

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultBaseURL = "https://finnhub.io/api/v1"

// Client is an HTTP client for the Finnhub market-data API. Every request
// carries the API token and is followed by a fixed delay, success or failure,
// to stay under the provider's rate limit.
type Client struct {
	baseURL  string
	apiKey   string
	apiDelay time.Duration
	client   *http.Client
}

func New(baseURL, apiKey string, apiDelay time.Duration) *Client {
	resolvedBaseURL := strings.TrimRight(baseURL, "/")
	if resolvedBaseURL == "" {
		resolvedBaseURL = defaultBaseURL
	}

	return &Client{
		baseURL:  resolvedBaseURL,
		apiKey:   apiKey,
		apiDelay: apiDelay,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// QuoteData is the /quote payload. Fields the provider omits decode to zero.
type QuoteData struct {
	Current       float64 `json:"c"`
	Change        float64 `json:"d"`
	ChangePercent float64 `json:"dp"`
	High          float64 `json:"h"`
	Low           float64 `json:"l"`
	Volume        float64 `json:"v"`
}

// ProfileData is the /stock/profile2 payload.
type ProfileData struct {
	Name                 string        `json:"name"`
	MarketCapitalization float64       `json:"marketCapitalization"`
	FinnhubIndustry      string        `json:"finnhubIndustry"`
	Industry             string        `json:"industry"`
	Country              string        `json:"country"`
	Description          string        `json:"description"`
	Currency             string        `json:"currency"`
	Metric               ProfileMetric `json:"metric"`
}

type ProfileMetric struct {
	ForwardPE     float64 `json:"forwardPE"`
	DividendYield float64 `json:"dividendYield"`
}

// CandleData is the /stock/candle payload. Timestamps ascend and the close
// and volume sequences are index-aligned to them.
type CandleData struct {
	Status     string    `json:"s"`
	Timestamps []int64   `json:"t"`
	Close      []float64 `json:"c"`
	Volume     []int64   `json:"v"`
}

// SearchData is the /search payload.
type SearchData struct {
	Count  int            `json:"count"`
	Result []SearchResult `json:"result"`
}

type SearchResult struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Country     string `json:"country"`
	Currency    string `json:"currency"`
}

func (c *Client) Quote(ctx context.Context, symbol string) (QuoteData, error) {
	var data QuoteData
	err := c.get(ctx, "/quote", url.Values{"symbol": {symbol}}, &data)
	return data, err
}

func (c *Client) Profile(ctx context.Context, symbol string) (ProfileData, error) {
	var data ProfileData
	err := c.get(ctx, "/stock/profile2", url.Values{"symbol": {symbol}}, &data)
	return data, err
}

func (c *Client) Candles(ctx context.Context, symbol string, from, to int64, resolution string) (CandleData, error) {
	params := url.Values{
		"symbol":     {symbol},
		"from":       {strconv.FormatInt(from, 10)},
		"to":         {strconv.FormatInt(to, 10)},
		"resolution": {resolution},
	}
	var data CandleData
	err := c.get(ctx, "/stock/candle", params, &data)
	return data, err
}

func (c *Client) Search(ctx context.Context, query string) (SearchData, error) {
	var data SearchData
	err := c.get(ctx, "/search", url.Values{"q": {query}}, &data)
	return data, err
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst any) error {
	// The delay applies unconditionally once a call has been attempted.
	defer func() {
		if c.apiDelay > 0 {
			time.Sleep(c.apiDelay)
		}
	}()

	endpoint, err := url.Parse(c.baseURL + path)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	params.Set("token", c.apiKey)
	endpoint.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &Error{Kind: KindTransport, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return &Error{Kind: KindUnauthorized, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusTooManyRequests:
		return &Error{Kind: KindRateLimited, Status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return &Error{Kind: KindHTTPStatus, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return &Error{Kind: KindMalformed, Err: err}
	}
	return nil
}
