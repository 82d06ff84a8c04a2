package stocks

import (
	"context"
	"log/slog"
	"time"

	"stock-tracker/internal/finnhub"
)

// Store is the persisted per-symbol snapshot cache. Get methods return
// nil, nil when no row exists for the symbol.
type Store interface {
	GetQuote(ctx context.Context, symbol string) (*QuoteSnapshot, error)
	PutQuote(ctx context.Context, symbol string, snapshot *QuoteSnapshot) error
	GetHistory(ctx context.Context, symbol string) (*HistorySnapshot, error)
	PutHistory(ctx context.Context, symbol string, snapshot *HistorySnapshot) error
}

// Provider is the upstream market-data API.
type Provider interface {
	Quote(ctx context.Context, symbol string) (finnhub.QuoteData, error)
	Profile(ctx context.Context, symbol string) (finnhub.ProfileData, error)
	Candles(ctx context.Context, symbol string, from, to int64, resolution string) (finnhub.CandleData, error)
	Search(ctx context.Context, query string) (finnhub.SearchData, error)
}

type Service struct {
	store    Store
	provider Provider
	now      func() time.Time
}

func NewService(store Store, provider Provider) *Service {
	return &Service{
		store:    store,
		provider: provider,
		now:      time.Now,
	}
}

// readThrough implements the fetch-or-cache policy shared by quote and
// history lookups: a stored row wins unconditionally, a provider failure
// yields no data rather than an error, and a failed write-back is logged
// but does not fail the lookup.
func readThrough[T any](
	ctx context.Context,
	symbol string,
	get func(context.Context, string) (*T, error),
	put func(context.Context, string, *T) error,
	fetch func(context.Context) (*T, error),
) (*T, error) {
	cached, err := get(ctx, symbol)
	if err != nil {
		// A broken cache read is indistinguishable from a miss.
		slog.Warn("cache read failed", "symbol", symbol, "error", err)
	} else if cached != nil {
		slog.Info("cache hit", "symbol", symbol)
		return cached, nil
	}

	fresh, err := fetch(ctx)
	if err != nil || fresh == nil {
		return nil, err
	}

	if err := put(ctx, symbol, fresh); err != nil {
		slog.Warn("cache write failed", "symbol", symbol, "error", err)
	}
	return fresh, nil
}

// GetInfo returns the quote/profile snapshot for a symbol, serving a cached
// row when one exists. A nil snapshot with nil error means the provider had
// no data for the symbol.
func (s *Service) GetInfo(ctx context.Context, symbol string) (*QuoteSnapshot, error) {
	return readThrough(ctx, symbol, s.store.GetQuote, s.store.PutQuote,
		func(ctx context.Context) (*QuoteSnapshot, error) {
			quote, err := s.provider.Quote(ctx, symbol)
			if err != nil {
				slog.Warn("quote fetch failed", "symbol", symbol, "error", err)
				return nil, nil
			}
			profile, err := s.provider.Profile(ctx, symbol)
			if err != nil {
				slog.Warn("profile fetch failed", "symbol", symbol, "error", err)
				return nil, nil
			}
			return normalizeQuote(symbol, quote, profile), nil
		})
}

// GetHistory returns the candle series for a symbol. A cached row wins even
// when period or interval differ from the original fetch.
func (s *Service) GetHistory(ctx context.Context, symbol, period, interval string) (*HistorySnapshot, error) {
	return readThrough(ctx, symbol, s.store.GetHistory, s.store.PutHistory,
		func(ctx context.Context) (*HistorySnapshot, error) {
			to := s.now().Unix()
			from := to - lookbackSeconds(period)
			resolution := "W"
			if interval == "1d" {
				resolution = "D"
			}

			candles, err := s.provider.Candles(ctx, symbol, from, to, resolution)
			if err != nil {
				slog.Warn("candle fetch failed", "symbol", symbol, "error", err)
				return nil, nil
			}
			if candles.Status != "ok" {
				slog.Warn("candle response not ok", "symbol", symbol, "status", candles.Status)
				return nil, nil
			}
			if len(candles.Close) == 0 || len(candles.Timestamps) == 0 {
				slog.Warn("candle response incomplete", "symbol", symbol)
				return nil, nil
			}
			return normalizeHistory(candles), nil
		})
}

// Search queries the provider's symbol search. Failures and empty result
// lists both yield an empty slice; absence of matches is not an error.
func (s *Service) Search(ctx context.Context, query string) []SearchMatch {
	data, err := s.provider.Search(ctx, query)
	if err != nil {
		slog.Warn("symbol search failed", "query", query, "error", err)
		return []SearchMatch{}
	}

	matches := make([]SearchMatch, 0, len(data.Result))
	for _, item := range data.Result {
		currency := item.Currency
		if currency == "" {
			currency = "USD"
		}
		matches = append(matches, SearchMatch{
			Symbol:   item.Symbol,
			Name:     item.Description,
			Type:     item.Type,
			Region:   item.Country,
			Currency: currency,
			// Finnhub supplies no relevance score.
			MatchScore: 1.0,
		})
	}
	return matches
}

func normalizeQuote(symbol string, quote finnhub.QuoteData, profile finnhub.ProfileData) *QuoteSnapshot {
	return &QuoteSnapshot{
		Price: PriceInfo{
			RegularMarketPrice:         quote.Current,
			RegularMarketChange:        quote.Change,
			RegularMarketChangePercent: quote.ChangePercent,
			RegularMarketVolume:        int64(quote.Volume),
			MarketCap:                  profile.MarketCapitalization,
			LongName:                   profile.Name,
			ShortName:                  symbol,
		},
		SummaryDetail: SummaryDetail{
			ForwardPE:        profile.Metric.ForwardPE,
			DividendYield:    profile.Metric.DividendYield,
			FiftyTwoWeekHigh: quote.High,
			FiftyTwoWeekLow:  quote.Low,
		},
		AssetProfile: AssetProfile{
			Sector:      profile.FinnhubIndustry,
			Industry:    profile.Industry,
			Country:     profile.Country,
			Description: profile.Description,
		},
	}
}

func normalizeHistory(candles finnhub.CandleData) *HistorySnapshot {
	volume := candles.Volume
	if len(volume) != len(candles.Close) {
		// Keep the sequences index-aligned; absent volume samples become 0.
		volume = make([]int64, len(candles.Close))
		copy(volume, candles.Volume)
	}

	return &HistorySnapshot{
		Chart: Chart{
			Result: []ChartResult{{
				Timestamp: candles.Timestamps,
				Indicators: Indicators{
					Quote: []ChartQuote{{
						Close:  candles.Close,
						Volume: volume,
					}},
				},
			}},
		},
	}
}

func lookbackSeconds(period string) int64 {
	switch period {
	case "1mo":
		return 30 * 24 * 60 * 60
	case "1wk":
		return 7 * 24 * 60 * 60
	default:
		return 24 * 60 * 60
	}
}
