package sec

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"cikmap_backend/internal/feature/cikmap/domain"
	"cikmap_backend/internal/feature/cikmap/domain/entity"
	"cikmap_backend/internal/feature/cikmap/usecase"
	"cikmap_backend/internal/platform/externalapi/sec/dto"
	"cikmap_backend/internal/shared/ratelimiter"
)

// TickerDirectory はSEC EDGARのティッカー一覧を取得するTickerDirectory実装です。
type TickerDirectory struct {
	cfg     Config
	client  *http.Client
	limiter ratelimiter.RateLimiterInterface
}

// TickerDirectoryがTickerDirectoryインターフェースを実装していることをコンパイル時に検証します。
var _ usecase.TickerDirectory = (*TickerDirectory)(nil)

// NewTickerDirectory は指定された設定・HTTPクライアント・レートリミッターでTickerDirectoryを生成します。
// limiter が nil の場合は待機しません。
func NewTickerDirectory(cfg Config, client *http.Client, limiter ratelimiter.RateLimiterInterface) *TickerDirectory {
	return &TickerDirectory{cfg: cfg, client: client, limiter: limiter}
}

// List は指定された種別のティッカー一覧をSECから取得し、掲載順で返します。
func (d *TickerDirectory) List(ctx context.Context, kind entity.ListingKind) ([]entity.Ticker, error) {
	switch kind {
	case entity.KindCompany:
		var body dto.CompanyTickersResponse
		if err := d.get(ctx, companyTickersPath, &body); err != nil {
			return nil, err
		}
		return companiesFromDTO(body)
	case entity.KindFund:
		var body dto.FundTickersResponse
		if err := d.get(ctx, fundTickersPath, &body); err != nil {
			return nil, err
		}
		return fundsFromDTO(body)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidListingKind, kind)
	}
}

// get はパスにGETリクエストを送り、JSONレスポンスをoutにデコードします。
func (d *TickerDirectory) get(ctx context.Context, path string, out any) error {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.cfg.BaseURL+path, nil)
	if err != nil {
		return err
	}
	// User-AgentがないリクエストはSECに403で拒否される
	req.Header.Set("User-Agent", d.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	res, err := d.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return fmt.Errorf("sec http %d", res.StatusCode)
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// companiesFromDTO は序数キー順に並べ替えてドメインエンティティに変換します。
func companiesFromDTO(body dto.CompanyTickersResponse) ([]entity.Ticker, error) {
	type row struct {
		idx int
		v   dto.CompanyTicker
	}
	rows := make([]row, 0, len(body))
	for k, v := range body {
		idx, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("parse company index %q: %w", k, err)
		}
		rows = append(rows, row{idx: idx, v: v})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].idx < rows[j].idx })

	out := make([]entity.Ticker, 0, len(rows))
	for i, r := range rows {
		out = append(out, entity.Ticker{
			Symbol:   r.v.Ticker,
			CIK:      r.v.CikStr,
			Name:     r.v.Title,
			Kind:     entity.KindCompany,
			Position: i,
		})
	}
	return out, nil
}

// fundsFromDTO は fields から cik と symbol の列位置を求めて変換します。
func fundsFromDTO(body dto.FundTickersResponse) ([]entity.Ticker, error) {
	cikCol, symCol := -1, -1
	for i, f := range body.Fields {
		switch f {
		case "cik":
			cikCol = i
		case "symbol":
			symCol = i
		}
	}
	if cikCol < 0 || symCol < 0 {
		return nil, fmt.Errorf("fund tickers: missing cik or symbol field in %v", body.Fields)
	}

	out := make([]entity.Ticker, 0, len(body.Data))
	for i, cols := range body.Data {
		if len(cols) <= cikCol || len(cols) <= symCol {
			return nil, fmt.Errorf("fund tickers: row %d has %d columns", i, len(cols))
		}
		var cik int64
		if err := json.Unmarshal(cols[cikCol], &cik); err != nil {
			return nil, fmt.Errorf("parse fund cik at row %d: %w", i, err)
		}
		var sym string
		if err := json.Unmarshal(cols[symCol], &sym); err != nil {
			return nil, fmt.Errorf("parse fund symbol at row %d: %w", i, err)
		}
		out = append(out, entity.Ticker{
			Symbol:   sym,
			CIK:      cik,
			Kind:     entity.KindFund,
			Position: i,
		})
	}
	return out, nil
}
