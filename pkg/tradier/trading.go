package tradier

import (
	"context"
	"fmt"
	"strconv"
)

// OrderParams are the optional knobs shared by stock and option orders.
// The zero value places a market day order with no tag.
type OrderParams struct {
	Type     OrderType // defaults to market
	Duration Duration  // defaults to day
	Tag      string
	Price    *float64 // required for limit orders
	Stop     *float64 // required for stop orders
}

func (p *OrderParams) normalize() error {
	if p.Type == "" {
		p.Type = OrderTypeMarket
	}
	if p.Duration == "" {
		p.Duration = DurationDay
	}
	if p.Type == OrderTypeLimit && p.Price == nil {
		return &MissingParameterError{Msg: "price must be specified for limit orders"}
	}
	if p.Type == OrderTypeStop && p.Stop == nil {
		return &MissingParameterError{Msg: "stop must be specified for stop orders"}
	}
	return nil
}

// Float is a convenience for the pointer fields on OrderParams.
func Float(v float64) *float64 {
	return &v
}

// BuyStock places a buy order for an equity.
func (c *Client) BuyStock(ctx context.Context, symbol string, quantity int, p OrderParams) (*Order, error) {
	return c.placeStockOrder(ctx, SideBuy, symbol, quantity, p)
}

// SellStock places a sell order for an equity.
func (c *Client) SellStock(ctx context.Context, symbol string, quantity int, p OrderParams) (*Order, error) {
	return c.placeStockOrder(ctx, SideSell, symbol, quantity, p)
}

func (c *Client) placeStockOrder(ctx context.Context, side OrderSide, symbol string, quantity int, p OrderParams) (*Order, error) {
	if err := p.normalize(); err != nil {
		return nil, err
	}

	form := map[string]string{
		"class":    string(OrderClassEquity),
		"symbol":   symbol,
		"side":     string(side),
		"quantity": strconv.Itoa(quantity),
		"type":     string(p.Type),
		"duration": string(p.Duration),
		"price":    formatOptionalFloat(p.Price),
		"stop":     formatOptionalFloat(p.Stop),
	}
	if p.Tag != "" {
		form["tag"] = p.Tag
	}

	return c.postOrder(ctx, form)
}

// BuyOption places a buy-to-open order for a single option contract.
func (c *Client) BuyOption(ctx context.Context, symbol, expiration string, strike float64, optionType OptionType, quantity int, p OrderParams) (*Order, error) {
	return c.placeOptionOrder(ctx, SideBuyToOpen, symbol, expiration, strike, optionType, quantity, p)
}

// SellOption places a sell-to-close order for a single option contract.
func (c *Client) SellOption(ctx context.Context, symbol, expiration string, strike float64, optionType OptionType, quantity int, p OrderParams) (*Order, error) {
	return c.placeOptionOrder(ctx, SideSellToClose, symbol, expiration, strike, optionType, quantity, p)
}

func (c *Client) placeOptionOrder(ctx context.Context, side OrderSide, symbol, expiration string, strike float64, optionType OptionType, quantity int, p OrderParams) (*Order, error) {
	optionSymbol, err := BuildOptionSymbol(symbol, expiration, strike, optionType)
	if err != nil {
		return nil, err
	}
	if err := p.normalize(); err != nil {
		return nil, err
	}

	form := map[string]string{
		"class":         string(OrderClassOption),
		"symbol":        symbol,
		"option_symbol": optionSymbol,
		"side":          string(side),
		"quantity":      strconv.Itoa(quantity),
		"type":          string(p.Type),
		"duration":      string(p.Duration),
		"price":         formatOptionalFloat(p.Price),
		"stop":          formatOptionalFloat(p.Stop),
	}
	if p.Tag != "" {
		form["tag"] = p.Tag
	}

	return c.postOrder(ctx, form)
}

// Multileg places a multileg option order. Debit and credit pricing
// require a net price.
func (c *Client) Multileg(ctx context.Context, symbol string, orderType OrderType, duration Duration, legs []OptionContract, price *float64) (*Order, error) {
	form := map[string]string{
		"class":    string(OrderClassMultileg),
		"symbol":   symbol,
		"type":     string(orderType),
		"duration": string(duration),
	}

	if orderType == OrderTypeDebit || orderType == OrderTypeCredit {
		if price == nil {
			return nil, &MissingParameterError{Msg: "price must be specified for spread orders"}
		}
	}
	if price != nil {
		form["price"] = formatOptionalFloat(price)
	}

	for i, leg := range legs {
		optionSymbol, err := leg.OptionSymbol()
		if err != nil {
			return nil, err
		}
		form[fmt.Sprintf("option_symbol[%d]", i)] = optionSymbol
		form[fmt.Sprintf("quantity[%d]", i)] = strconv.Itoa(leg.Quantity)
		form[fmt.Sprintf("side[%d]", i)] = string(leg.Side)
	}

	return c.postOrder(ctx, form)
}

// CancelOrder cancels a working order by id.
func (c *Client) CancelOrder(ctx context.Context, orderID string) (*Order, error) {
	var resp struct {
		Order Order `json:"order"`
	}
	path := fmt.Sprintf(EndpointOrder, c.accountID, orderID)
	if err := c.web.Delete(ctx, path, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

// ModifyOrderParams carries the fields that can change on a working
// order. Nil / empty fields are left untouched.
type ModifyOrderParams struct {
	Type     OrderType
	Duration Duration
	Price    *float64
	Stop     *float64
}

// ModifyOrder updates a working order. At least one field must be set.
func (c *Client) ModifyOrder(ctx context.Context, orderID string, p ModifyOrderParams) (*Order, error) {
	form := map[string]string{}
	if p.Type != "" {
		form["type"] = string(p.Type)
	}
	if p.Duration != "" {
		form["duration"] = string(p.Duration)
	}
	if p.Price != nil {
		form["price"] = formatOptionalFloat(p.Price)
	}
	if p.Stop != nil {
		form["stop"] = formatOptionalFloat(p.Stop)
	}
	if len(form) == 0 {
		return nil, &InvalidParameterError{Msg: "no parameters to modify"}
	}

	var resp struct {
		Order Order `json:"order"`
	}
	path := fmt.Sprintf(EndpointOrder, c.accountID, orderID)
	if err := c.web.PutForm(ctx, path, form, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func (c *Client) postOrder(ctx context.Context, form map[string]string) (*Order, error) {
	var resp struct {
		Order Order `json:"order"`
	}
	path := fmt.Sprintf(EndpointOrders, c.accountID)
	if err := c.web.PostForm(ctx, path, form, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
