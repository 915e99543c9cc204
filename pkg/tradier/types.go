package tradier

// Wire-level string enums. Values are exactly what the API sends and
// expects in query/form parameters.

// OrderClass selects the order placement endpoint behavior.
type OrderClass string

const (
	OrderClassEquity   OrderClass = "equity"
	OrderClassOption   OrderClass = "option"
	OrderClassMultileg OrderClass = "multileg"
	OrderClassCombo    OrderClass = "combo"
)

// OrderSide covers both equity sides and the four option open/close sides.
type OrderSide string

const (
	SideBuy        OrderSide = "buy"
	SideSell       OrderSide = "sell"
	SideBuyToCover OrderSide = "buy_to_cover"
	SideSellShort  OrderSide = "sell_short"

	SideBuyToOpen   OrderSide = "buy_to_open"
	SideBuyToClose  OrderSide = "buy_to_close"
	SideSellToOpen  OrderSide = "sell_to_open"
	SideSellToClose OrderSide = "sell_to_close"
)

type OrderType string

const (
	OrderTypeMarket    OrderType = "market"
	OrderTypeLimit     OrderType = "limit"
	OrderTypeStop      OrderType = "stop"
	OrderTypeStopLimit OrderType = "stop_limit"

	// Spread pricing types, multileg orders only.
	OrderTypeDebit  OrderType = "debit"
	OrderTypeCredit OrderType = "credit"
	OrderTypeEven   OrderType = "even"
)

// Duration is how long an order stays working.
type Duration string

const (
	DurationDay            Duration = "day"
	DurationGoodTillCancel Duration = "gtc"
	DurationPreMarket      Duration = "pre"
	DurationPostMarket     Duration = "post"
)

type OrderStatus string

const (
	OrderStatusOpen            OrderStatus = "open"
	OrderStatusPartiallyFilled OrderStatus = "partially_filled"
	OrderStatusFilled          OrderStatus = "filled"
	OrderStatusExpired         OrderStatus = "expired"
	OrderStatusCanceled        OrderStatus = "canceled"
	OrderStatusPending         OrderStatus = "pending"
	OrderStatusRejected        OrderStatus = "rejected"
	OrderStatusError           OrderStatus = "error"

	OrderStatusHeld               OrderStatus = "held"
	OrderStatusCalculated         OrderStatus = "calculated"
	OrderStatusAcceptedForBidding OrderStatus = "accepted_for_bidding"

	// Placement acknowledgements come back with status "ok" before the
	// order reaches a terminal/working state.
	OrderStatusOK OrderStatus = "ok"
)

type OptionType string

const (
	OptionTypeCall OptionType = "call"
	OptionTypePut  OptionType = "put"
)

type QuoteType string

const (
	QuoteTypeStock      QuoteType = "stock"
	QuoteTypeOption     QuoteType = "option"
	QuoteTypeETF        QuoteType = "etf"
	QuoteTypeIndex      QuoteType = "index"
	QuoteTypeMutualFund QuoteType = "mutual_fund"
)

type AccountType string

const (
	AccountTypeCash   AccountType = "cash"
	AccountTypeMargin AccountType = "margin"
	AccountTypePDT    AccountType = "pdt"
)

type AccountStatus string

const (
	AccountStatusActive AccountStatus = "active"
	AccountStatusClosed AccountStatus = "closed"
)

type Classification string

const (
	ClassificationIndividual     Classification = "individual"
	ClassificationEntity         Classification = "entity"
	ClassificationJointSurvivor  Classification = "joint_survivor"
	ClassificationTraditionalIRA Classification = "traditional_ira"
	ClassificationRothIRA        Classification = "roth_ira"
	ClassificationRolloverIRA    Classification = "rollover_ira"
	ClassificationSepIRA         Classification = "sep_ira"
)

// EventType classifies account history events. The event detail object
// sits under a key named after the type.
type EventType string

const (
	EventTypeTrade      EventType = "trade"
	EventTypeJournal    EventType = "journal"
	EventTypeOption     EventType = "option"
	EventTypeACH        EventType = "ach"
	EventTypeWire       EventType = "wire"
	EventTypeDividend   EventType = "dividend"
	EventTypeFee        EventType = "fee"
	EventTypeTax        EventType = "tax"
	EventTypeInterest   EventType = "interest"
	EventTypeAdjustment EventType = "adjustment"
	EventTypeCheck      EventType = "check"
	EventTypeTransfer   EventType = "transfer"
)

type TradeType string

const (
	TradeTypeEquity TradeType = "equity"
	TradeTypeOption TradeType = "option"
)

type MarketStatus string

const (
	MarketStatusOpen   MarketStatus = "open"
	MarketStatusClosed MarketStatus = "closed"
)

type SecurityType string

const (
	SecurityTypeStock      SecurityType = "stock"
	SecurityTypeOption     SecurityType = "option"
	SecurityTypeETF        SecurityType = "etf"
	SecurityTypeIndex      SecurityType = "index"
	SecurityTypeMutualFund SecurityType = "mutual_fund"
)

// MarketEventType labels frames on the market data stream.
type MarketEventType string

const (
	MarketEventTrade    MarketEventType = "trade"
	MarketEventQuote    MarketEventType = "quote"
	MarketEventSummary  MarketEventType = "summary"
	MarketEventTimesale MarketEventType = "timesale"

	// tradex frames carry the same payload as trade frames but bypass the
	// valid-tick filter.
	MarketEventTradex MarketEventType = "tradex"
)
