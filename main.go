package main

import (
	"context"
	"os"

	"snapbid/internal/auction"
	"snapbid/internal/config"
	"snapbid/internal/ledger"
	"snapbid/internal/notify"
	"snapbid/internal/payment"
	"snapbid/internal/repository"
	"snapbid/internal/server"
	"snapbid/internal/social"
	"snapbid/internal/sweep"
	"snapbid/utils"

	auctionhandler "snapbid/services/auction/handler"
	ledgerhandler "snapbid/services/ledger/handler"
	notificationhandler "snapbid/services/notification/handler"
	socialhandler "snapbid/services/social/handler"
)

func main() {
	cfg := config.Parse()
	utils.SetLevel(cfg.Log.Level)

	store, cleanup := openStore(cfg)
	defer cleanup()

	dispatcher := notify.NewDispatcher(store)
	locks := auction.NewKeyedMutex()

	auctionSvc := auction.NewAuctionService(store, store, store, store, dispatcher, cfg.Auction, locks)
	ledgerSvc := ledger.NewLedgerService(store)
	gateway := payment.NewHTTPGateway(cfg.Payment.GatewayURL, cfg.Payment.SecretKey)
	paymentSvc := payment.NewPaymentService(store, ledgerSvc, gateway, dispatcher, cfg.Payment.ReturnURL)
	imageSvc := social.NewImageService(store, store, dispatcher, cfg.Auction, locks)
	commentSvc := social.NewCommentService(store, store, store, dispatcher)
	followSvc := social.NewFollowService(store, store, dispatcher)
	boardSvc := social.NewBoardService(store, store)
	userSvc := social.NewUserService(store)
	notificationSvc := notify.NewNotificationService(store)

	sweeper := sweep.NewSweeper(store, store, store, dispatcher, locks)
	scheduler, err := sweep.NewScheduler(sweeper, cfg.Auction.SweepInterval)
	if err != nil {
		utils.Fatal("failed to create settlement scheduler", map[string]any{"error": err.Error()})
	}
	scheduler.Start()
	defer scheduler.Stop()

	router := server.SetupRouter(server.Handlers{
		Auction:      auctionhandler.NewAuctionHandler(auctionSvc),
		Ledger:       ledgerhandler.NewLedgerHandler(ledgerSvc, paymentSvc),
		Image:        socialhandler.NewImageHandler(imageSvc, auctionSvc),
		Comment:      socialhandler.NewCommentHandler(commentSvc),
		Follow:       socialhandler.NewFollowHandler(followSvc),
		Board:        socialhandler.NewBoardHandler(boardSvc),
		User:         socialhandler.NewUserHandler(userSvc),
		Notification: notificationhandler.NewNotificationHandler(notificationSvc),
	}, cfg.Auth.JWTSecret)

	utils.Info("starting server", map[string]any{"addr": cfg.Server.Addr})
	if err := router.Run(cfg.Server.Addr); err != nil {
		utils.Error("server stopped", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// openStore selects the persistence backend from configuration
func openStore(cfg config.Config) (repository.Store, func()) {
	if cfg.UseMemoryStore() {
		utils.Info("using in-memory store", nil)
		return repository.NewMemoryStore(), func() {}
	}

	store, err := repository.NewPostgresStore(context.Background(), cfg.DB.DSN())
	if err != nil {
		utils.Fatal("failed to connect to postgres", map[string]any{"error": err.Error()})
	}
	utils.Info("connected to postgres", map[string]any{
		"host":     cfg.DB.Host,
		"database": cfg.DB.Database,
	})
	return store, store.Close
}
