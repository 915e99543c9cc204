package tradier

// API endpoint constants. Account endpoints take the account ID as a
// fmt verb.
const (
	// User / accounts
	EndpointUserProfile = "/v1/user/profile"
	EndpointBalances    = "/v1/accounts/%s/balances"
	EndpointPositions   = "/v1/accounts/%s/positions"
	EndpointHistory     = "/v1/accounts/%s/history"
	EndpointGainLoss    = "/v1/accounts/%s/gainloss"
	EndpointOrders      = "/v1/accounts/%s/orders"
	EndpointOrder       = "/v1/accounts/%s/orders/%s"

	// Market data
	EndpointQuotes            = "/v1/markets/quotes"
	EndpointOptionChains      = "/v1/markets/options/chains"
	EndpointOptionStrikes     = "/v1/markets/options/strikes"
	EndpointOptionExpirations = "/v1/markets/options/expirations"
	EndpointOptionLookup      = "/v1/markets/options/lookup"
	EndpointCalendar          = "/v1/markets/calendar"
	EndpointMarketHistory     = "/v1/markets/history"
	EndpointTimeSales         = "/v1/markets/timesales"
	EndpointETB               = "/v1/markets/etb"
	EndpointSearch            = "/v1/markets/search"
	EndpointLookup            = "/v1/markets/lookup"

	// Streaming session bootstrap
	EndpointAccountEventsSession = "/v1/accounts/events/session"
	EndpointMarketEventsSession  = "/v1/markets/events/session"
)

// MarketEventsURL is the market data WebSocket endpoint. It is fixed;
// only the account event stream advertises its URL in the session
// response.
const MarketEventsURL = "wss://ws.tradier.com/v1/markets/events"
