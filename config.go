package finledger

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

// Config gathers everything the analysis core needs to know about the
// operator's world: the reporting currency, how to obtain exchange rates,
// and which categories carry a special meaning.
//
// The zero value is not usable; start from DefaultConfig and override from a
// TOML file with LoadConfig.
type Config struct {
	// BaseCurrency is the single currency all reports are expressed in.
	BaseCurrency string `toml:"base_currency"`

	// RateAPIURL is the remote rate endpoint; the base currency code is
	// appended as the last path element.
	RateAPIURL string `toml:"rate_api_url"`

	// CacheTTLSeconds bounds how long a fetched rate is reused.
	CacheTTLSeconds int `toml:"cache_ttl_seconds"`

	// CacheFile is the durable rate cache location. Empty disables the file
	// cache (rates are then cached in memory only).
	CacheFile string `toml:"cache_file"`

	// SupportedCurrencies lists the ISO codes the detector recognizes.
	SupportedCurrencies []string `toml:"supported_currencies"`

	// CurrencySymbols maps an ISO code to the symbol used in amount fields.
	CurrencySymbols map[string]string `toml:"currency_symbols"`

	// FallbackRates is the static rate table, keyed "FROM/TO", used when the
	// remote lookup is unavailable.
	FallbackRates map[string]float64 `toml:"fallback_rates"`

	// CharityCategories and LendingCategories are the allow-lists driving
	// the simplified classification; every other category is "normal".
	CharityCategories []string `toml:"charity_categories"`
	LendingCategories []string `toml:"lending_categories"`
}

// DefaultConfig returns the checked-in configuration.
func DefaultConfig() Config {
	return Config{
		BaseCurrency:    "EGP",
		RateAPIURL:      "https://api.exchangerate-api.com/v4/latest",
		CacheTTLSeconds: 3600,
		CacheFile:       "currency_cache.json",
		SupportedCurrencies: []string{
			"USD", "EUR", "GBP", "JPY", "EGP", "CAD", "AUD", "CHF", "CNY", "INR", "SAR", "AED",
		},
		CurrencySymbols: map[string]string{
			"USD": "$",
			"EUR": "€",
			"GBP": "£",
			"JPY": "¥",
			"EGP": "E£",
			"CAD": "C$",
			"AUD": "A$",
			"INR": "₹",
		},
		FallbackRates: map[string]float64{
			"EUR/USD": 1.08,
			"GBP/USD": 1.26,
			"JPY/USD": 0.0067,
			"CAD/USD": 0.73,
			"AUD/USD": 0.65,
			"CHF/USD": 1.13,
			"CNY/USD": 0.14,
			"INR/USD": 0.012,
			"SAR/USD": 0.266,
			"AED/USD": 0.272,
			"EGP/USD": 0.0203,
			"USD/EGP": 49.25,
			"EUR/EGP": 53.19,
			"GBP/EGP": 62.05,
		},
		CharityCategories: []string{"Charity"},
		LendingCategories: []string{"Loan, interests", "Lending, renting"},
	}
}

// LoadConfig reads a TOML configuration file over the defaults, so a partial
// file only overrides what it mentions.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("cannot load config %q: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the core cannot work with.
func (c Config) Validate() error {
	if c.BaseCurrency == "" {
		return fmt.Errorf("base_currency is required")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must not be negative, got %d", c.CacheTTLSeconds)
	}
	for pair, rate := range c.FallbackRates {
		if _, err := ParsePair(pair); err != nil {
			return err
		}
		if rate <= 0 {
			return fmt.Errorf("fallback rate for %s must be positive, got %v", pair, rate)
		}
	}
	return nil
}

// CacheTTL returns the configured cache duration.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// fallbackTable converts the configured pair-keyed rates into the internal
// representation. Validate has already vetted the keys and values.
func (c Config) fallbackTable() map[Pair]decimal.Decimal {
	table := make(map[Pair]decimal.Decimal, len(c.FallbackRates))
	for key, rate := range c.FallbackRates {
		pair, err := ParsePair(key)
		if err != nil {
			continue
		}
		table[pair] = decimal.NewFromFloat(rate)
	}
	return table
}
