// Package erapi is the remote exchange-rate provider client. It speaks the
// open.er-api / exchangerate-api "latest rates" payload: a GET on
// <base-url>/<BASE> returning a JSON object whose "rates" member maps a
// currency code to the amount of that currency one unit of BASE buys.
package erapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// DefaultBaseURL is the public endpoint; the base currency code is the last
// path element.
const DefaultBaseURL = "https://api.exchangerate-api.com/v4/latest"

// fetchTimeout bounds one remote call; on expiry the caller degrades to its
// fallback tier rather than blocking the batch.
const fetchTimeout = 10 * time.Second

// Client fetches current exchange rates. The zero value is not usable; use New.
type Client struct {
	baseURL string
	client  *http.Client
}

// New returns a client on the default public endpoint.
func New() *Client { return NewWithURL(DefaultBaseURL) }

// NewWithURL returns a client on a specific endpoint, e.g. a test server.
func NewWithURL(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: fetchTimeout},
	}
}

// FetchRates retrieves the full rate table against the given base currency.
// Any transport failure, non-200 status or malformed payload is a total
// failure for the call: no partial table is ever returned.
func (c *Client) FetchRates(base string) (map[string]decimal.Decimal, error) {
	addr := c.baseURL + "/" + strings.ToUpper(base)

	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return nil, err
	}

	jval, err := jsonpath.Get("$.rates", jobj)
	if err != nil {
		return nil, fmt.Errorf("rate payload has no rates member: %w", err)
	}
	jrates, ok := jval.(map[string]any)
	if !ok || len(jrates) == 0 {
		return nil, fmt.Errorf("rate payload rates member is empty or not an object")
	}

	rates := make(map[string]decimal.Decimal, len(jrates))
	for code, jrate := range jrates {
		rate, ok := jrate.(float64)
		if !ok {
			return nil, fmt.Errorf("rate for %q is not a number: %v", code, jrate)
		}
		if rate <= 0 {
			return nil, fmt.Errorf("rate for %q is not positive: %v", code, rate)
		}
		rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
	}
	return rates, nil
}
