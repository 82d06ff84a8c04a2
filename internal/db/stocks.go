package db

import (
	"context"
	"errors"

	"stock-tracker/internal/stocks"

	"github.com/jackc/pgx/v5"
)

// GetQuote returns the cached snapshot for a symbol, or nil, nil when no row
// exists. The jsonb columns scan straight into the stable schema structs.
func (d *DB) GetQuote(ctx context.Context, symbol string) (*stocks.QuoteSnapshot, error) {
	row := d.pool.QueryRow(ctx, `
		select price, summary_detail, asset_profile
		from public.stocks
		where symbol = $1
	`, symbol)

	var snapshot stocks.QuoteSnapshot
	if err := row.Scan(&snapshot.Price, &snapshot.SummaryDetail, &snapshot.AssetProfile); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// PutQuote upserts the snapshot for a symbol: an existing row is overwritten
// wholesale, otherwise a new row is inserted. The existence check and the
// write are independent round trips; a racing writer wins by last write.
func (d *DB) PutQuote(ctx context.Context, symbol string, snapshot *stocks.QuoteSnapshot) error {
	var exists bool
	err := d.pool.QueryRow(ctx, `
		select exists (select 1 from public.stocks where symbol = $1)
	`, symbol).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = d.pool.Exec(ctx, `
			update public.stocks
			set price = $2, summary_detail = $3, asset_profile = $4
			where symbol = $1
		`, symbol, snapshot.Price, snapshot.SummaryDetail, snapshot.AssetProfile)
		return err
	}

	_, err = d.pool.Exec(ctx, `
		insert into public.stocks (symbol, price, summary_detail, asset_profile)
		values ($1, $2, $3, $4)
	`, symbol, snapshot.Price, snapshot.SummaryDetail, snapshot.AssetProfile)
	return err
}

func (d *DB) GetHistory(ctx context.Context, symbol string) (*stocks.HistorySnapshot, error) {
	row := d.pool.QueryRow(ctx, `
		select chart
		from public.stock_history
		where symbol = $1
	`, symbol)

	var snapshot stocks.HistorySnapshot
	if err := row.Scan(&snapshot.Chart); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

func (d *DB) PutHistory(ctx context.Context, symbol string, snapshot *stocks.HistorySnapshot) error {
	var exists bool
	err := d.pool.QueryRow(ctx, `
		select exists (select 1 from public.stock_history where symbol = $1)
	`, symbol).Scan(&exists)
	if err != nil {
		return err
	}

	if exists {
		_, err = d.pool.Exec(ctx, `
			update public.stock_history
			set chart = $2
			where symbol = $1
		`, symbol, snapshot.Chart)
		return err
	}

	_, err = d.pool.Exec(ctx, `
		insert into public.stock_history (symbol, chart)
		values ($1, $2)
	`, symbol, snapshot.Chart)
	return err
}
