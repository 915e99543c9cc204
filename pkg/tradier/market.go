package tradier

// MarketSession is a start/end pair of HH:MM times within a calendar day.
type MarketSession struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// CalendarDay is one day from /v1/markets/calendar.
type CalendarDay struct {
	Date        string         `json:"date"`
	Status      MarketStatus   `json:"status"`
	Description string         `json:"description"`
	Premarket   *MarketSession `json:"premarket"`
	Open        *MarketSession `json:"open"`
	Postmarket  *MarketSession `json:"postmarket"`
}

// Expiration is one option expiration. ContractSize, ExpirationType, and
// Strikes are only populated when the matching detail flags were set on
// the request.
type Expiration struct {
	Date           string  `json:"date"`
	ContractSize   FlexInt `json:"contract_size"`
	ExpirationType string  `json:"expiration_type"`
	Strikes        []float64
}

// expirationDetail is the wire shape when detail flags are requested;
// strikes nest one level deeper than where we want them.
type expirationDetail struct {
	Date           string  `json:"date"`
	ContractSize   FlexInt `json:"contract_size"`
	ExpirationType string  `json:"expiration_type"`
	Strikes        *struct {
		Strike List[float64] `json:"strike"`
	} `json:"strikes"`
}

// Security is one instrument from the ETB list, company search, or
// symbol lookup.
type Security struct {
	Symbol      string       `json:"symbol"`
	Description string       `json:"description"`
	Type        SecurityType `json:"type"`
	Exchange    string       `json:"exchange"`
}
