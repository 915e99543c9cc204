package tradier

import (
	"encoding/json"
	"strings"
)

// UserAccount is one account under the user profile. ID and Name belong
// to the profile envelope and are copied onto each account.
type UserAccount struct {
	ID             string         `json:"id"`
	Name           string         `json:"name"`
	AccountNumber  string         `json:"account_number"`
	Classification Classification `json:"classification"`
	DateCreated    string         `json:"date_created"`
	DayTrader      bool           `json:"day_trader"`
	OptionLevel    FlexInt        `json:"option_level"`
	Status         AccountStatus  `json:"status"`
	Type           AccountType    `json:"type"`
	LastUpdateDate string         `json:"last_update_date"`
}

// CashBalances is the cash-account detail block.
type CashBalances struct {
	CashAvailable  FlexFloat `json:"cash_available"`
	Sweep          FlexFloat `json:"sweep"`
	UnsettledFunds FlexFloat `json:"unsettled_funds"`
}

// MarginBalances is the margin-account detail block.
type MarginBalances struct {
	FedCall           FlexFloat `json:"fed_call"`
	MaintenanceCall   FlexFloat `json:"maintenance_call"`
	OptionBuyingPower FlexFloat `json:"option_buying_power"`
	StockBuyingPower  FlexFloat `json:"stock_buying_power"`
	StockShortValue   FlexFloat `json:"stock_short_value"`
	Sweep             FlexFloat `json:"sweep"`
}

// PDTBalances is the pattern-day-trader detail block.
type PDTBalances struct {
	FedCall           FlexFloat `json:"fed_call"`
	MaintenanceCall   FlexFloat `json:"maintenance_call"`
	OptionBuyingPower FlexFloat `json:"option_buying_power"`
	StockBuyingPower  FlexFloat `json:"stock_buying_power"`
	StockShortValue   FlexFloat `json:"stock_short_value"`
}

// AccountBalance is the /balances payload. Exactly one of Cash, Margin,
// or PDT is populated, matching AccountType.
type AccountBalance struct {
	OptionShortValue   FlexFloat   `json:"option_short_value"`
	TotalEquity        FlexFloat   `json:"total_equity"`
	AccountNumber      string      `json:"account_number"`
	AccountType        AccountType `json:"account_type"`
	ClosePL            FlexFloat   `json:"close_pl"`
	CurrentRequirement FlexFloat   `json:"current_requirement"`
	Equity             FlexFloat   `json:"equity"`
	LongMarketValue    FlexFloat   `json:"long_market_value"`
	MarketValue        FlexFloat   `json:"market_value"`
	OpenPL             FlexFloat   `json:"open_pl"`
	OptionLongValue    FlexFloat   `json:"option_long_value"`
	OptionRequirement  FlexFloat   `json:"option_requirement"`
	PendingOrdersCount FlexInt     `json:"pending_orders_count"`
	ShortMarketValue   FlexFloat   `json:"short_market_value"`
	StockLongValue     FlexFloat   `json:"stock_long_value"`
	TotalCash          FlexFloat   `json:"total_cash"`
	UnclearedFunds     FlexFloat   `json:"uncleared_funds"`
	PendingCash        FlexFloat   `json:"pending_cash"`

	Cash   *CashBalances   `json:"cash"`
	Margin *MarginBalances `json:"margin"`
	PDT    *PDTBalances    `json:"pdt"`
}

// Position is one open position.
type Position struct {
	Symbol       string    `json:"symbol"`
	Quantity     FlexFloat `json:"quantity"`
	CostBasis    FlexFloat `json:"cost_basis"`
	ID           FlexInt   `json:"id"`
	DateAcquired string    `json:"date_acquired"`
}

// ProfitLoss is one closed position from /gainloss.
type ProfitLoss struct {
	CloseDate       string    `json:"close_date"`
	Cost            FlexFloat `json:"cost"`
	GainLoss        FlexFloat `json:"gain_loss"`
	GainLossPercent FlexFloat `json:"gain_loss_percent"`
	OpenDate        string    `json:"open_date"`
	Proceeds        FlexFloat `json:"proceeds"`
	Quantity        FlexFloat `json:"quantity"`
	Symbol          string    `json:"symbol"`
	Term            FlexInt   `json:"term"` // months held
}

// Event is one account history entry. On the wire the detail object sits
// under a key named after the event type:
//
//	{"amount": -3000, "date": "...", "type": "ach", "ach": {...}}
//
// UnmarshalJSON flattens that detail into the Event itself.
type Event struct {
	Amount      FlexFloat
	Date        string
	Type        EventType
	Description string
	Commission  FlexFloat
	Price       FlexFloat
	Quantity    FlexFloat
	Symbol      string
	TradeType   TradeType
}

type eventDetail struct {
	Description string    `json:"description"`
	Commission  FlexFloat `json:"commission"`
	Price       FlexFloat `json:"price"`
	Quantity    FlexFloat `json:"quantity"`
	Symbol      string    `json:"symbol"`
	TradeType   string    `json:"trade_type"`
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["amount"]; ok {
		if err := json.Unmarshal(v, &e.Amount); err != nil {
			return err
		}
	}
	if v, ok := raw["date"]; ok {
		if err := json.Unmarshal(v, &e.Date); err != nil {
			return err
		}
	}
	if v, ok := raw["type"]; ok {
		if err := json.Unmarshal(v, &e.Type); err != nil {
			return err
		}
	}

	detailRaw, ok := raw[string(e.Type)]
	if !ok {
		return nil
	}
	var detail eventDetail
	if err := json.Unmarshal(detailRaw, &detail); err != nil {
		return err
	}

	e.Description = detail.Description
	e.Commission = detail.Commission
	e.Price = detail.Price
	e.Quantity = detail.Quantity
	e.Symbol = detail.Symbol
	// trade_type arrives title-cased ("Equity") on trade events.
	e.TradeType = TradeType(strings.ToLower(detail.TradeType))
	return nil
}
