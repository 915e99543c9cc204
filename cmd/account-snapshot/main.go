package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/tradekit/gotradier/pkg/config"
	"github.com/tradekit/gotradier/pkg/logger"
	"github.com/tradekit/gotradier/pkg/tradier"
)

func main() {
	configPath := flag.String("config", "config.yaml", "config file path")
	flag.Parse()

	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("[account-snapshot] No .env file found, using environment variables")
	}

	config.SetConfigPath(*configPath)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[account-snapshot] Failed to load config: %v", err)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.LogLevel,
		OutputFile: cfg.LogFile,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     7,
		Compress:   true,
	}); err != nil {
		log.Fatalf("[account-snapshot] Failed to init logger: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	client := tradier.NewClient(cfg.AccountID, cfg.Token, cfg.Sandbox)

	// Profile is not available against the sandbox.
	if !cfg.Sandbox {
		accounts, err := client.GetUserProfile(ctx)
		if err != nil {
			logger.Errorf("get user profile: %v", err)
		} else {
			for _, account := range accounts {
				fmt.Printf("account %s  type=%s  status=%s  option_level=%d\n",
					account.AccountNumber, account.Type, account.Status, account.OptionLevel.Int())
			}
		}
	}

	balance, err := client.GetBalance(ctx)
	if err != nil {
		logger.Errorf("get balance: %v", err)
	} else {
		fmt.Printf("equity=%.2f  cash=%.2f  open_pl=%.2f  close_pl=%.2f  pending_orders=%d\n",
			balance.TotalEquity.Float64(), balance.TotalCash.Float64(),
			balance.OpenPL.Float64(), balance.ClosePL.Float64(),
			balance.PendingOrdersCount.Int())
	}

	positions, err := client.GetPositions(ctx)
	if err != nil {
		logger.Errorf("get positions: %v", err)
	} else if len(positions) == 0 {
		fmt.Println("no open positions")
	} else {
		for _, pos := range positions {
			fmt.Printf("position %-22s qty=%.2f cost_basis=%.2f acquired=%s\n",
				pos.Symbol, pos.Quantity.Float64(), pos.CostBasis.Float64(), pos.DateAcquired)
		}
	}

	orders, err := client.GetOrders(ctx)
	if err != nil {
		logger.Errorf("get orders: %v", err)
	} else if len(orders) == 0 {
		fmt.Println("no orders")
	} else {
		for _, order := range orders {
			fmt.Printf("order %d %-10s %-6s %-22s qty=%.2f status=%s\n",
				order.ID.Int(), order.Type, order.Side, order.Symbol,
				order.Quantity.Float64(), order.Status)
		}
	}
}
