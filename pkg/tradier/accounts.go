package tradier

import (
	"context"
	"fmt"
	"strconv"
)

// GetUserProfile fetches the user's profile and returns one UserAccount
// per account, each stamped with the profile id and name. Not available
// in the sandbox environment.
func (c *Client) GetUserProfile(ctx context.Context) ([]UserAccount, error) {
	if c.sandbox {
		return nil, &NotAvailableError{Msg: "the sandbox environment does not serve /v1/user/profile"}
	}

	var resp struct {
		Profile Object[struct {
			ID      string            `json:"id"`
			Name    string            `json:"name"`
			Account List[UserAccount] `json:"account"`
		}] `json:"profile"`
	}
	if err := c.web.Get(ctx, EndpointUserProfile, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Profile.OK {
		return nil, nil
	}

	accounts := []UserAccount(resp.Profile.Value.Account)
	for i := range accounts {
		accounts[i].ID = resp.Profile.Value.ID
		accounts[i].Name = resp.Profile.Value.Name
	}
	return accounts, nil
}

// GetBalance fetches the account balance snapshot.
func (c *Client) GetBalance(ctx context.Context) (*AccountBalance, error) {
	var resp struct {
		Balances AccountBalance `json:"balances"`
	}
	path := fmt.Sprintf(EndpointBalances, c.accountID)
	if err := c.web.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Balances, nil
}

// GetPositions fetches all open positions. An account with no positions
// answers with the literal string "null".
func (c *Client) GetPositions(ctx context.Context) ([]Position, error) {
	var resp struct {
		Positions Object[struct {
			Position List[Position] `json:"position"`
		}] `json:"positions"`
	}
	path := fmt.Sprintf(EndpointPositions, c.accountID)
	if err := c.web.Get(ctx, path, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Positions.OK {
		return nil, nil
	}
	return resp.Positions.Value.Position, nil
}

// HistoryParams filters GetHistory. Zero values mean page 1, limit 25,
// all event types, no date or symbol filter.
type HistoryParams struct {
	Page       int
	Limit      int
	Type       EventType
	Start      string // YYYY-MM-DD
	End        string // YYYY-MM-DD
	Symbol     string
	ExactMatch bool
}

// GetHistory fetches account history events. Not available in the
// sandbox environment.
func (c *Client) GetHistory(ctx context.Context, p HistoryParams) ([]Event, error) {
	if c.sandbox {
		return nil, &NotAvailableError{Msg: "the sandbox environment does not serve account history"}
	}
	if p.Start != "" && !isValidDate(p.Start) {
		return nil, &InvalidDateError{Date: p.Start}
	}
	if p.End != "" && !isValidDate(p.End) {
		return nil, &InvalidDateError{Date: p.End}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 25
	}

	params := map[string]string{
		"page":       strconv.Itoa(p.Page),
		"limit":      strconv.Itoa(p.Limit),
		"exactMatch": strconv.FormatBool(p.ExactMatch),
	}
	if p.Type != "" {
		params["type"] = string(p.Type)
	}
	if p.Start != "" {
		params["start"] = p.Start
	}
	if p.End != "" {
		params["end"] = p.End
	}
	if p.Symbol != "" {
		params["symbol"] = p.Symbol
	}

	var resp struct {
		History Object[struct {
			Event List[Event] `json:"event"`
		}] `json:"history"`
	}
	path := fmt.Sprintf(EndpointHistory, c.accountID)
	if err := c.web.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if !resp.History.OK {
		return nil, nil
	}
	return resp.History.Value.Event, nil
}

// GainLossParams filters GetGainLoss. The zero value mirrors the API
// defaults: page 1, limit 25, sorted by close date descending.
type GainLossParams struct {
	Page   int
	Limit  int
	Start  string // YYYY-MM-DD
	End    string // YYYY-MM-DD
	Symbol string

	// SortByOpenDate switches the sort key from closeDate to openDate.
	SortByOpenDate bool
	// Ascending switches the sort direction from desc to asc.
	Ascending bool
}

// GetGainLoss fetches realized gain/loss for closed positions.
func (c *Client) GetGainLoss(ctx context.Context, p GainLossParams) ([]ProfitLoss, error) {
	if p.Start != "" && !isValidDate(p.Start) {
		return nil, &InvalidDateError{Date: p.Start}
	}
	if p.End != "" && !isValidDate(p.End) {
		return nil, &InvalidDateError{Date: p.End}
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = 25
	}

	sortBy := "closeDate"
	if p.SortByOpenDate {
		sortBy = "openDate"
	}
	sort := "desc"
	if p.Ascending {
		sort = "asc"
	}

	params := map[string]string{
		"page":   strconv.Itoa(p.Page),
		"limit":  strconv.Itoa(p.Limit),
		"sortBy": sortBy,
		"sort":   sort,
	}
	if p.Start != "" {
		params["start"] = p.Start
	}
	if p.End != "" {
		params["end"] = p.End
	}
	if p.Symbol != "" {
		params["symbol"] = p.Symbol
	}

	var resp struct {
		GainLoss Object[struct {
			ClosedPosition List[ProfitLoss] `json:"closed_position"`
		}] `json:"gainloss"`
	}
	path := fmt.Sprintf(EndpointGainLoss, c.accountID)
	if err := c.web.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if !resp.GainLoss.OK {
		return nil, nil
	}
	return resp.GainLoss.Value.ClosedPosition, nil
}

// GetOrders fetches every order on the account, walking pages until the
// broker returns an empty one.
func (c *Client) GetOrders(ctx context.Context) ([]Order, error) {
	var all []Order
	for page := 1; ; page++ {
		orders, err := c.getOrdersPage(ctx, page)
		if err != nil {
			return nil, err
		}
		if len(orders) == 0 {
			break
		}
		log.WithField("page", page).WithField("count", len(orders)).Debug("fetched orders page")
		all = append(all, orders...)
	}
	return all, nil
}

func (c *Client) getOrdersPage(ctx context.Context, page int) ([]Order, error) {
	params := map[string]string{
		"page":        strconv.Itoa(page),
		"includeTags": "true",
	}
	var resp struct {
		Orders Object[struct {
			Order List[Order] `json:"order"`
		}] `json:"orders"`
	}
	path := fmt.Sprintf(EndpointOrders, c.accountID)
	if err := c.web.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	if !resp.Orders.OK {
		return nil, nil
	}
	return resp.Orders.Value.Order, nil
}

// GetOrder fetches a single order by id, tags included.
func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	params := map[string]string{"includeTags": "true"}
	var resp struct {
		Order Order `json:"order"`
	}
	path := fmt.Sprintf(EndpointOrder, c.accountID, orderID)
	if err := c.web.Get(ctx, path, params, &resp); err != nil {
		return nil, err
	}
	return &resp.Order, nil
}
