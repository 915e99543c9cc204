package tradier

// Order mirrors the order object returned by the account, trading, and
// streaming endpoints. Placement acknowledgements only populate ID,
// Status, and PartnerID; reads fill in the rest.
type Order struct {
	ID                FlexInt     `json:"id"`
	Type              OrderType   `json:"type"`
	Symbol            string      `json:"symbol"`
	Side              OrderSide   `json:"side"`
	Quantity          FlexFloat   `json:"quantity"`
	Status            OrderStatus `json:"status"`
	Duration          Duration    `json:"duration"`
	Price             FlexFloat   `json:"price"`
	StopPrice         FlexFloat   `json:"stop_price"`
	AvgFillPrice      FlexFloat   `json:"avg_fill_price"`
	ExecQuantity      FlexFloat   `json:"exec_quantity"`
	LastFillPrice     FlexFloat   `json:"last_fill_price"`
	LastFillQuantity  FlexFloat   `json:"last_fill_quantity"`
	RemainingQuantity FlexFloat   `json:"remaining_quantity"`
	CreateDate        string      `json:"create_date"`
	TransactionDate   string      `json:"transaction_date"`
	Class             OrderClass  `json:"class"`
	OptionSymbol      string      `json:"option_symbol"`
	Tag               string      `json:"tag"`
	NumLegs           int         `json:"num_legs"`
	Legs              List[Order] `json:"leg"`
	PartnerID         string      `json:"partner_id"`
}

// OptionContract is one leg of a multileg order.
type OptionContract struct {
	Symbol     string
	Expiration string
	Strike     float64
	OptionType OptionType
	Side       OrderSide
	Quantity   int
}

// NewOptionContract validates the leg up front so a bad leg fails before
// any sibling legs are serialized.
func NewOptionContract(symbol, expiration string, strike float64, optionType OptionType, side OrderSide, quantity int) (*OptionContract, error) {
	if !isValidDate(expiration) {
		return nil, &InvalidExpirationError{Expiration: expiration}
	}
	if optionType != OptionTypeCall && optionType != OptionTypePut {
		return nil, &InvalidOptionTypeError{OptionType: string(optionType)}
	}
	return &OptionContract{
		Symbol:     symbol,
		Expiration: expiration,
		Strike:     strike,
		OptionType: optionType,
		Side:       side,
		Quantity:   quantity,
	}, nil
}

// OptionSymbol returns the OCC symbol for the leg.
func (c *OptionContract) OptionSymbol() (string, error) {
	return BuildOptionSymbol(c.Symbol, c.Expiration, c.Strike, c.OptionType)
}
