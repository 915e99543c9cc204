package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradekit/gotradier/pkg/config"
	"github.com/tradekit/gotradier/pkg/logger"
	"github.com/tradekit/gotradier/pkg/shutdown"
	"github.com/tradekit/gotradier/pkg/tradier"
	"github.com/tradekit/gotradier/pkg/tradier/stream"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	symbolsFlag := flag.String("symbols", "", "comma separated symbols, overrides watch_symbols")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("[quote-watcher] No .env file found, using environment variables")
	}

	config.SetConfigPath(*configPath)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[quote-watcher] Failed to load config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		log.Fatalf("[quote-watcher] Failed to init logger: %v", err)
	}

	symbols := cfg.WatchSymbols
	if *symbolsFlag != "" {
		symbols = splitSymbols(*symbolsFlag)
	}
	if len(symbols) == 0 {
		logger.Error("no symbols to watch, set watch_symbols or -symbols")
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := tradier.NewClient(cfg.AccountID, cfg.Token, cfg.Sandbox)

	streamCfg := stream.DefaultConfig()
	streamCfg.Filters = []tradier.MarketEventType{
		tradier.MarketEventQuote,
		tradier.MarketEventSummary,
	}
	market := stream.NewMarketClientWithConfig(client, streamCfg)
	if err := market.Start(ctx, symbols); err != nil {
		logger.Errorf("start market stream: %v", err)
		os.Exit(1)
	}

	manager := shutdown.NewManager()
	manager.OnShutdown(func(ctx context.Context) {
		market.Stop()
	})

	logger.Infof("watching %d symbols: %s", len(symbols), strings.Join(symbols, ","))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case event, ok := <-market.Events():
			if !ok {
				logger.Warn("market stream closed")
				return
			}
			printEvent(event)
		case err := <-market.Errs():
			logger.Errorf("market stream: %v", err)
		case sig := <-sigCh:
			logger.Infof("received %s, shutting down", sig)
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer shutdownCancel()
			manager.Shutdown(shutdownCtx)
			return
		}
	}
}

func printEvent(event stream.MarketEvent) {
	switch event.Type {
	case tradier.MarketEventTrade, tradier.MarketEventTradex:
		t := event.Trade
		logger.WithField("symbol", t.Symbol).
			Infof("trade price=%.2f size=%d", t.Price.Float64(), t.Size.Int())
	case tradier.MarketEventQuote:
		q := event.Quote
		logger.WithField("symbol", q.Symbol).
			Infof("quote bid=%.2f ask=%.2f", q.Bid.Float64(), q.Ask.Float64())
	case tradier.MarketEventSummary:
		s := event.Summary
		logger.WithField("symbol", s.Symbol).
			Infof("summary open=%.2f high=%.2f low=%.2f prevClose=%.2f",
				s.Open.Float64(), s.High.Float64(), s.Low.Float64(), s.PrevClose.Float64())
	case tradier.MarketEventTimesale:
		ts := event.Timesale
		logger.WithField("symbol", ts.Symbol).
			Infof("timesale last=%.2f size=%d seq=%d", ts.Last.Float64(), ts.Size.Int(), ts.Seq.Int())
	default:
		logger.Debugf("unknown event type %q", event.Type)
	}
}

func splitSymbols(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
