// Package finledger turns spreadsheet exports of personal or business
// transactions into multi-period financial summaries.
//
// The core pipeline is:
//   - CurrencyDetector infers each row's source currency from its raw
//     amount field (symbol, ISO code, or absence meaning the base currency).
//   - RateSource supplies conversion rates, degrading from a time-bounded
//     cache through a remote provider down to a static fallback table; it
//     never fails outright.
//   - Normalizer converts every row into the base currency, keeping the
//     original amount, currency and rate for audit.
//   - Reconciler folds the normalized stream into all-time, yearly and
//     monthly ledgers with category breakdowns and a lending reconciliation
//     that nets money lent out against later repayments.
//
// This package serves as the foundational logic for the `flr` command-line
// tool; the renderer package turns its reports into markdown.
package finledger
