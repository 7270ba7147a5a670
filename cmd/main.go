package main

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/MarharytaFilipovych/no-2/internal/auction/application"
	auctiondomain "github.com/MarharytaFilipovych/no-2/internal/auction/domain"
	auctionhttp "github.com/MarharytaFilipovych/no-2/internal/auction/infra/http"
	auctionpg "github.com/MarharytaFilipovych/no-2/internal/auction/infra/repository/postgres"
	"github.com/MarharytaFilipovych/no-2/internal/auction/infra/scheduler"
	auctionws "github.com/MarharytaFilipovych/no-2/internal/auction/infra/websocket"
	"github.com/MarharytaFilipovych/no-2/internal/shared/clock"
	"github.com/MarharytaFilipovych/no-2/internal/shared/config"
	"github.com/MarharytaFilipovych/no-2/internal/shared/db"
	"github.com/MarharytaFilipovych/no-2/internal/shared/db/migrations"
	"github.com/MarharytaFilipovych/no-2/internal/shared/httpserver"
	"github.com/MarharytaFilipovych/no-2/internal/shared/logger"
	sharedws "github.com/MarharytaFilipovych/no-2/internal/shared/websocket"
	userpg "github.com/MarharytaFilipovych/no-2/internal/user/infra/repository/postgres"
	"go.uber.org/zap"
)

func main() {
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting auction engine server...")

	cfg := config.Load()

	log.Info("Running database migrations...")
	if err := migrations.RunMigrations(); err != nil {
		log.Fatal("Database migration failed", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := db.GetPostgresDBPool(ctx)
	if err != nil {
		log.Fatal("Database connection failed", zap.Error(err))
	}
	defer pool.Close()

	// repositories
	auctionRepo := auctionpg.NewAuctionRepository(pool)
	bidRepo := auctionpg.NewBidRepository(pool)
	balanceRepo := auctionpg.NewBalanceRepository(pool)
	cycleRepo := auctionpg.NewCycleRepository(pool)
	userRepo := userpg.NewUserRepository(pool)

	// domain services
	clk := clock.System{}
	rules := auctiondomain.NewBiddingRules(cfg.Bidding.MaxBidAmount, cfg.Bidding.BalanceRatioLimit)
	seed := uint64(time.Now().UnixNano())
	selector := auctiondomain.NewWinnerSelectionService(rand.New(rand.NewPCG(seed, seed)))

	// use cases
	service := application.NewAuctionService(
		application.NewCreateAuctionUseCase(auctionRepo, clk),
		application.NewPlaceBidUseCase(auctionRepo, bidRepo, balanceRepo, rules, clk),
		application.NewWithdrawBidUseCase(bidRepo, auctionRepo, clk),
		application.NewFinalizeAuctionUseCase(auctionRepo, bidRepo, cycleRepo, clk, cfg.Payment, selector),
		application.NewConfirmPaymentUseCase(auctionRepo, balanceRepo, clk),
		application.NewProcessDeadlineUseCase(auctionRepo, bidRepo, cycleRepo, balanceRepo, userRepo, clk, cfg.Payment, selector),
		application.NewGetAuctionStateUseCase(auctionRepo, bidRepo),
		application.NewGetAuctionBidsUseCase(auctionRepo, bidRepo),
		application.NewListActiveAuctionsUseCase(auctionRepo, clk),
		application.NewDepositFundsUseCase(balanceRepo),
	)

	// websocket hub and handler
	hub := sharedws.NewHub()
	go hub.Run(ctx)
	wsHandler := auctionws.NewAuctionWSHandler(service, hub)
	go wsHandler.ListenForMessages(ctx)

	// lifecycle scheduler pushes state changes to connected clients
	sched := scheduler.NewScheduler(auctionRepo, clk, cfg.Server.SchedulerInterval, wsHandler.BroadcastAuctionState)
	go sched.Run(ctx)

	// HTTP and websocket transports
	server := httpserver.NewServer()
	auctionhttp.NewAuctionHandler(service).RegisterRoutes(server.App())
	auctionws.RegisterRoutes(server.App(), hub, wsHandler, ctx)

	if err := server.Start(cfg.Server.Addr); err != nil {
		log.Fatal("HTTP server failed", zap.Error(err))
	}
}
