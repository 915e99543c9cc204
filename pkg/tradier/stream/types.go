// Package stream consumes the Tradier WebSocket feeds: account order
// events and market data events. Sessions are bootstrapped through the
// REST client and each stream client owns one connection and one read
// loop. There is deliberately no reconnect policy here; callers decide
// whether a dropped stream is worth re-dialing.
package stream

import (
	"encoding/json"
	"time"

	"github.com/tradekit/gotradier/pkg/tradier"
)

const (
	defaultEventBufferSize = 1000
	defaultErrorBufferSize = 100
)

// Config tunes the stream clients. The zero value is unusable; start
// from DefaultConfig.
type Config struct {
	// MarketURL is the market data WebSocket endpoint. Overridable for
	// tests; the production value is fixed.
	MarketURL string

	HandshakeTimeout time.Duration
	ReadBufferSize   int
	WriteBufferSize  int

	EventBufferSize int
	ErrorBufferSize int

	// Linebreak asks the server to delimit frames with newlines.
	Linebreak bool
	// ValidOnly filters out trade corrections and errors server side.
	ValidOnly bool
	// AdvancedDetails includes the extended detail fields on events.
	AdvancedDetails bool
	// Filters selects market event types. The trade filter is always
	// added on subscribe.
	Filters []tradier.MarketEventType
}

// DefaultConfig mirrors the server-side defaults the REST API documents.
func DefaultConfig() *Config {
	return &Config{
		MarketURL:        tradier.MarketEventsURL,
		HandshakeTimeout: 15 * time.Second,
		ReadBufferSize:   4096,
		WriteBufferSize:  4096,
		EventBufferSize:  defaultEventBufferSize,
		ErrorBufferSize:  defaultErrorBufferSize,
		Linebreak:        true,
		ValidOnly:        true,
		AdvancedDetails:  true,
	}
}

// TradeEvent is sent for all trade prints at exchanges.
type TradeEvent struct {
	Symbol string            `json:"symbol"`
	Exch   string            `json:"exch"`
	Price  tradier.FlexFloat `json:"price"`
	Size   tradier.FlexInt   `json:"size"`
	CVol   tradier.FlexInt   `json:"cvol"`
	Date   string            `json:"date"`
	Last   tradier.FlexFloat `json:"last"`
}

// QuoteEvent carries the most current bid/ask pricing.
type QuoteEvent struct {
	Symbol  string            `json:"symbol"`
	Bid     tradier.FlexFloat `json:"bid"`
	BidSz   tradier.FlexInt   `json:"bidsz"`
	BidExch string            `json:"bidexch"`
	BidDate string            `json:"biddate"`
	Ask     tradier.FlexFloat `json:"ask"`
	AskSz   tradier.FlexInt   `json:"asksz"`
	AskExch string            `json:"askexch"`
	AskDate string            `json:"askdate"`
}

// SummaryEvent fires on session high/low/open/close changes.
type SummaryEvent struct {
	Symbol    string            `json:"symbol"`
	Open      tradier.FlexFloat `json:"open"`
	High      tradier.FlexFloat `json:"high"`
	Low       tradier.FlexFloat `json:"low"`
	PrevClose tradier.FlexFloat `json:"prevClose"`
}

// TimesaleEvent is a uniquely sequenced trade or market event print.
type TimesaleEvent struct {
	Symbol     string            `json:"symbol"`
	Exch       string            `json:"exch"`
	Bid        tradier.FlexFloat `json:"bid"`
	Ask        tradier.FlexFloat `json:"ask"`
	Last       tradier.FlexFloat `json:"last"`
	Size       tradier.FlexInt   `json:"size"`
	Date       string            `json:"date"`
	Seq        tradier.FlexInt   `json:"seq"`
	Flag       string            `json:"flag"`
	Cancel     bool              `json:"cancel"`
	Correction bool              `json:"correction"`
	Session    string            `json:"session"`
}

// MarketEvent is the union of market stream frames. Exactly one of the
// payload pointers is set, matching Type. Trade and tradex frames share
// the TradeEvent payload.
type MarketEvent struct {
	Type tradier.MarketEventType

	Trade    *TradeEvent
	Quote    *QuoteEvent
	Summary  *SummaryEvent
	Timesale *TimesaleEvent
}

func (e *MarketEvent) UnmarshalJSON(data []byte) error {
	var head struct {
		Type tradier.MarketEventType `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return err
	}
	e.Type = head.Type

	switch head.Type {
	case tradier.MarketEventTrade, tradier.MarketEventTradex:
		e.Trade = &TradeEvent{}
		return json.Unmarshal(data, e.Trade)
	case tradier.MarketEventQuote:
		e.Quote = &QuoteEvent{}
		return json.Unmarshal(data, e.Quote)
	case tradier.MarketEventSummary:
		e.Summary = &SummaryEvent{}
		return json.Unmarshal(data, e.Summary)
	case tradier.MarketEventTimesale:
		e.Timesale = &TimesaleEvent{}
		return json.Unmarshal(data, e.Timesale)
	}
	// Unknown frame types decode to just the type tag rather than
	// erroring; the feed grows event kinds without notice.
	return nil
}
