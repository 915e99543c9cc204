package tradier

// Greeks carries the option greeks block attached to quotes and chains
// when greeks=true is requested.
type Greeks struct {
	Delta     FlexFloat `json:"delta"`
	Gamma     FlexFloat `json:"gamma"`
	Theta     FlexFloat `json:"theta"`
	Vega      FlexFloat `json:"vega"`
	Rho       FlexFloat `json:"rho"`
	Phi       FlexFloat `json:"phi"`
	BidIV     FlexFloat `json:"bid_iv"`
	MidIV     FlexFloat `json:"mid_iv"`
	AskIV     FlexFloat `json:"ask_iv"`
	SmvVol    FlexFloat `json:"smv_vol"`
	UpdatedAt string    `json:"updated_at"`
}

// Quote is the shared shape for real-time quotes and option chain rows.
// Option-only fields stay zero for equities.
type Quote struct {
	Symbol           string    `json:"symbol"`
	Description      string    `json:"description"`
	Exch             string    `json:"exch"`
	Type             QuoteType `json:"type"`
	Last             FlexFloat `json:"last"`
	Change           FlexFloat `json:"change"`
	Volume           FlexInt   `json:"volume"`
	Open             FlexFloat `json:"open"`
	High             FlexFloat `json:"high"`
	Low              FlexFloat `json:"low"`
	Close            FlexFloat `json:"close"`
	Bid              FlexFloat `json:"bid"`
	Ask              FlexFloat `json:"ask"`
	ChangePercentage FlexFloat `json:"change_percentage"`
	AverageVolume    FlexInt   `json:"average_volume"`
	LastVolume       FlexInt   `json:"last_volume"`
	TradeDate        int64     `json:"trade_date"`
	PrevClose        FlexFloat `json:"prevclose"`
	Week52High       FlexFloat `json:"week_52_high"`
	Week52Low        FlexFloat `json:"week_52_low"`
	BidSize          FlexInt   `json:"bidsize"` // in hundreds
	BidExch          string    `json:"bidexch"`
	BidDate          int64     `json:"bid_date"`
	AskSize          FlexInt   `json:"asksize"`
	AskExch          string    `json:"askexch"`
	AskDate          int64     `json:"ask_date"`
	RootSymbols      string    `json:"root_symbols"`

	// Option fields.
	Underlying     string     `json:"underlying"`
	Strike         FlexFloat  `json:"strike"`
	OpenInterest   FlexInt    `json:"open_interest"`
	ContractSize   FlexInt    `json:"contract_size"`
	ExpirationDate string     `json:"expiration_date"`
	ExpirationType string     `json:"expiration_type"`
	OptionType     OptionType `json:"option_type"`
	RootSymbol     string     `json:"root_symbol"`
	Greeks         *Greeks    `json:"greeks"`

	// Note is set locally, e.g. "unmatched symbol" for symbols the broker
	// did not recognize.
	Note string `json:"-"`
}

// HistoricBar is one daily/weekly/monthly bar from /v1/markets/history.
type HistoricBar struct {
	Date   string    `json:"date"`
	Open   FlexFloat `json:"open"`
	High   FlexFloat `json:"high"`
	Low    FlexFloat `json:"low"`
	Close  FlexFloat `json:"close"`
	Volume FlexInt   `json:"volume"`
}

// TimeSalePoint is one aggregated tick from /v1/markets/timesales.
type TimeSalePoint struct {
	Time      string    `json:"time"`
	Timestamp int64     `json:"timestamp"`
	Price     FlexFloat `json:"price"`
	Open      FlexFloat `json:"open"`
	High      FlexFloat `json:"high"`
	Low       FlexFloat `json:"low"`
	Close     FlexFloat `json:"close"`
	Volume    FlexInt   `json:"volume"`
	VWAP      FlexFloat `json:"vwap"`
}
