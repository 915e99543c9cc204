package tradier

import (
	"context"
	"strconv"
	"strings"
)

// GetQuotes fetches quotes for a set of symbols. Symbols the broker does
// not recognize are returned as Quotes with Note set to
// "unmatched symbol" so callers see every symbol accounted for.
func (c *Client) GetQuotes(ctx context.Context, symbols []string, greeks bool) ([]Quote, error) {
	params := map[string]string{
		"symbols": strings.Join(symbols, ","),
		"greeks":  strconv.FormatBool(greeks),
	}

	var resp struct {
		Quotes Object[struct {
			Quote            List[Quote] `json:"quote"`
			UnmatchedSymbols Object[struct {
				Symbol List[string] `json:"symbol"`
			}] `json:"unmatched_symbols"`
		}] `json:"quotes"`
	}
	if err := c.web.Get(ctx, EndpointQuotes, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Quotes.OK {
		return nil, nil
	}

	results := []Quote(resp.Quotes.Value.Quote)
	if resp.Quotes.Value.UnmatchedSymbols.OK {
		for _, sym := range resp.Quotes.Value.UnmatchedSymbols.Value.Symbol {
			results = append(results, Quote{Symbol: sym, Note: "unmatched symbol"})
		}
	}
	return results, nil
}

// GetOptionChains fetches the option chain for one expiration. When
// optionType is non-empty the chain is filtered client side; the API has
// no server-side filter for it.
func (c *Client) GetOptionChains(ctx context.Context, symbol, expiration string, greeks bool, optionType OptionType) ([]Quote, error) {
	if !isValidDate(expiration) {
		return nil, &InvalidExpirationError{Expiration: expiration}
	}

	params := map[string]string{
		"symbol":     symbol,
		"expiration": expiration,
		"greeks":     strconv.FormatBool(greeks),
	}

	var resp struct {
		Options Object[struct {
			Option List[Quote] `json:"option"`
		}] `json:"options"`
	}
	if err := c.web.Get(ctx, EndpointOptionChains, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Options.OK {
		return nil, nil
	}

	chain := resp.Options.Value.Option
	if optionType == "" {
		return chain, nil
	}
	filtered := make([]Quote, 0, len(chain))
	for _, q := range chain {
		if q.OptionType == optionType {
			filtered = append(filtered, q)
		}
	}
	return filtered, nil
}

// GetOptionStrikes fetches the strike prices trading for one expiration.
func (c *Client) GetOptionStrikes(ctx context.Context, symbol, expiration string) ([]float64, error) {
	if !isValidDate(expiration) {
		return nil, &InvalidExpirationError{Expiration: expiration}
	}

	params := map[string]string{
		"symbol":     symbol,
		"expiration": expiration,
	}

	var resp struct {
		Strikes Object[struct {
			Strike List[float64] `json:"strike"`
		}] `json:"strikes"`
	}
	if err := c.web.Get(ctx, EndpointOptionStrikes, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Strikes.OK {
		return nil, nil
	}
	return resp.Strikes.Value.Strike, nil
}

// GetOptionExpirations fetches option expirations. The response shape
// depends on the detail flags: with any flag set each expiration is an
// object, otherwise the API sends bare date strings.
func (c *Client) GetOptionExpirations(ctx context.Context, symbol string, strikes, contractSize, expirationType bool) ([]Expiration, error) {
	params := map[string]string{
		"symbol":         symbol,
		"strikes":        strconv.FormatBool(strikes),
		"contractSize":   strconv.FormatBool(contractSize),
		"expirationType": strconv.FormatBool(expirationType),
	}

	detailed := strikes || contractSize || expirationType
	if detailed {
		var resp struct {
			Expirations Object[struct {
				Expiration List[expirationDetail] `json:"expiration"`
			}] `json:"expirations"`
		}
		if err := c.web.Get(ctx, EndpointOptionExpirations, params, &resp); err != nil {
			return nil, err
		}
		if !resp.Expirations.OK {
			return nil, nil
		}

		results := make([]Expiration, 0, len(resp.Expirations.Value.Expiration))
		for _, d := range resp.Expirations.Value.Expiration {
			exp := Expiration{
				Date:           d.Date,
				ContractSize:   d.ContractSize,
				ExpirationType: d.ExpirationType,
			}
			if d.Strikes != nil {
				exp.Strikes = d.Strikes.Strike
			}
			results = append(results, exp)
		}
		return results, nil
	}

	var resp struct {
		Expirations Object[struct {
			Date List[string] `json:"date"`
		}] `json:"expirations"`
	}
	if err := c.web.Get(ctx, EndpointOptionExpirations, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Expirations.OK {
		return nil, nil
	}

	results := make([]Expiration, 0, len(resp.Expirations.Value.Date))
	for _, date := range resp.Expirations.Value.Date {
		results = append(results, Expiration{Date: date})
	}
	return results, nil
}

// OptionLookup returns every option symbol trading against an
// underlying.
func (c *Client) OptionLookup(ctx context.Context, symbol string) ([]string, error) {
	params := map[string]string{"underlying": symbol}

	var resp struct {
		Symbols List[struct {
			RootSymbol string   `json:"rootSymbol"`
			Options    []string `json:"options"`
		}] `json:"symbols"`
	}
	if err := c.web.Get(ctx, EndpointOptionLookup, params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Symbols) == 0 {
		return nil, nil
	}
	return resp.Symbols[0].Options, nil
}

// GetCalendar fetches the market calendar for one month. year is YYYY,
// month is MM.
func (c *Client) GetCalendar(ctx context.Context, year, month string) ([]CalendarDay, error) {
	if len(year) != 4 {
		return nil, &InvalidParameterError{Msg: "year must be in the format YYYY"}
	}
	if len(month) != 2 {
		return nil, &InvalidParameterError{Msg: "month must be in the format MM"}
	}
	if m, err := strconv.Atoi(month); err != nil || m < 1 || m > 12 {
		return nil, &InvalidParameterError{Msg: "month must be between 1 and 12"}
	}

	params := map[string]string{"year": year, "month": month}

	var resp struct {
		Calendar Object[struct {
			Days struct {
				Day List[CalendarDay] `json:"day"`
			} `json:"days"`
		}] `json:"calendar"`
	}
	if err := c.web.Get(ctx, EndpointCalendar, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Calendar.OK {
		return nil, nil
	}
	return resp.Calendar.Value.Days.Day, nil
}

var historyIntervals = map[string]bool{"daily": true, "weekly": true, "monthly": true}

// GetHistoricalQuotes fetches OHLCV bars between start and end
// (YYYY-MM-DD). interval is daily, weekly, or monthly.
func (c *Client) GetHistoricalQuotes(ctx context.Context, symbol, interval, start, end string) ([]HistoricBar, error) {
	if !historyIntervals[interval] {
		return nil, &InvalidParameterError{Msg: "interval must be one of daily, weekly, or monthly"}
	}
	if !isValidDate(start) {
		return nil, &InvalidDateError{Date: start}
	}
	if !isValidDate(end) {
		return nil, &InvalidDateError{Date: end}
	}

	params := map[string]string{
		"symbol":   symbol,
		"interval": interval,
		"start":    start,
		"end":      end,
	}

	var resp struct {
		History Object[struct {
			Day List[HistoricBar] `json:"day"`
		}] `json:"history"`
	}
	if err := c.web.Get(ctx, EndpointMarketHistory, params, &resp); err != nil {
		return nil, err
	}
	if !resp.History.OK {
		return nil, nil
	}
	return resp.History.Value.Day, nil
}

var timeSalesIntervals = map[string]bool{
	"tick": true, "1min": true, "5min": true, "15min": true, "30min": true, "hour": true,
}

// TimeSalesParams filters GetTimeAndSales. Start/End are
// "YYYY-MM-DD HH:MM"; SessionFilter is "all" (default) or "open".
type TimeSalesParams struct {
	Interval      string // defaults to tick
	Start         string
	End           string
	SessionFilter string // defaults to all
}

// GetTimeAndSales fetches the time and sales series for a symbol.
func (c *Client) GetTimeAndSales(ctx context.Context, symbol string, p TimeSalesParams) ([]TimeSalePoint, error) {
	if p.Interval == "" {
		p.Interval = "tick"
	}
	if p.SessionFilter == "" {
		p.SessionFilter = "all"
	}
	if !timeSalesIntervals[p.Interval] {
		return nil, &InvalidParameterError{Msg: "interval must be one of tick, 1min, 5min, 15min, 30min, or hour"}
	}
	if p.SessionFilter != "all" && p.SessionFilter != "open" {
		return nil, &InvalidParameterError{Msg: "session filter must be one of all or open"}
	}
	if p.Start != "" && !isValidDateTime(p.Start) {
		return nil, &InvalidParameterError{Msg: "start must be in the format YYYY-MM-DD HH:MM"}
	}
	if p.End != "" && !isValidDateTime(p.End) {
		return nil, &InvalidParameterError{Msg: "end must be in the format YYYY-MM-DD HH:MM"}
	}

	params := map[string]string{
		"symbol":         symbol,
		"interval":       p.Interval,
		"session_filter": p.SessionFilter,
	}
	if p.Start != "" {
		params["start"] = p.Start
	}
	if p.End != "" {
		params["end"] = p.End
	}

	var resp struct {
		Series Object[struct {
			Data List[TimeSalePoint] `json:"data"`
		}] `json:"series"`
	}
	if err := c.web.Get(ctx, EndpointTimeSales, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Series.OK {
		return nil, nil
	}
	return resp.Series.Value.Data, nil
}

// GetETBSecurities fetches the easy-to-borrow list.
func (c *Client) GetETBSecurities(ctx context.Context) ([]Security, error) {
	return c.getSecurities(ctx, EndpointETB, nil)
}

// SearchCompanies searches securities by company name or description.
func (c *Client) SearchCompanies(ctx context.Context, query string, indexes bool) ([]Security, error) {
	params := map[string]string{
		"q":       query,
		"indexes": strconv.FormatBool(indexes),
	}
	return c.getSecurities(ctx, EndpointSearch, params)
}

// LookupSymbol looks up securities by symbol fragment. exchanges may be
// "Q" or "N"; types may be stock, option, etf, or index.
func (c *Client) LookupSymbol(ctx context.Context, query, exchanges, types string) ([]Security, error) {
	if exchanges != "" && exchanges != "Q" && exchanges != "N" {
		return nil, &InvalidParameterError{Msg: "exchanges must be one of Q or N"}
	}
	switch types {
	case "", "stock", "option", "etf", "index":
	default:
		return nil, &InvalidParameterError{Msg: "types must be one of stock, option, etf, index"}
	}

	params := map[string]string{"q": query}
	if exchanges != "" {
		params["exchanges"] = exchanges
	}
	if types != "" {
		params["types"] = types
	}
	return c.getSecurities(ctx, EndpointLookup, params)
}

func (c *Client) getSecurities(ctx context.Context, path string, params map[string]string) ([]Security, error) {
	var resp struct {
		Securities Object[struct {
			Security List[Security] `json:"security"`
		}] `json:"securities"`
	}
	if err := c.web.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Securities.OK {
		return nil, nil
	}
	return resp.Securities.Value.Security, nil
}
