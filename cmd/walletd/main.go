// walletd is the adaptive wallet daemon: it manages the extension and
// embedded wallet providers, the connection state machine and the device
// classification behind a JSON HTTP API.
//
// @title        Adaptive Wallet API
// @version      1.0
// @description  Wallet connection, signing and key management for Stellar accounts
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/srwa-platform/adaptive-wallet/internal/adaptive"
	"github.com/srwa-platform/adaptive-wallet/internal/api"
	"github.com/srwa-platform/adaptive-wallet/internal/balance"
	"github.com/srwa-platform/adaptive-wallet/internal/config"
	"github.com/srwa-platform/adaptive-wallet/internal/connection"
	"github.com/srwa-platform/adaptive-wallet/internal/device"
	"github.com/srwa-platform/adaptive-wallet/internal/network"
	"github.com/srwa-platform/adaptive-wallet/internal/storage"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet/embedded"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet/extension"

	_ "github.com/srwa-platform/adaptive-wallet/docs"

	"go.uber.org/zap"
)

func main() {
	if err := config.Init(); err != nil {
		panic(err)
	}
	cfg := config.Get()

	log, err := buildLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := config.PromptForPassword(); err != nil {
		log.Fatal("wallet password required", zap.Error(err))
	}

	wallet.ConfigureHorizonURLs(cfg.HorizonTestnetURL, cfg.HorizonMainnetURL)
	netInfo, err := wallet.Network(wallet.NetworkType(cfg.StellarNetwork))
	if err != nil {
		log.Fatal("invalid STELLAR_NETWORK", zap.String("value", cfg.StellarNetwork), zap.Error(err))
	}
	log.Info("starting walletd",
		zap.String("network", string(netInfo.Type)),
		zap.String("horizon", netInfo.HorizonURL))

	detector := device.NewDetector(log)
	store := storage.NewService(cfg.StateDir, time.Duration(cfg.RecordMaxAgeDays)*24*time.Hour, log)
	manager := connection.NewManager(store, time.Duration(cfg.SessionCheckSeconds)*time.Second, log)

	var funder embedded.Funder
	if netInfo.Type == wallet.NetworkTestnet {
		funder = embedded.NewFriendbotClient(cfg.FriendbotURL, netInfo.HorizonURL)
	}
	embeddedWallet := embedded.NewAdapter(cfg.WalletFilePath, config.GetWalletPasswordBytes, netInfo, funder, log)
	extensionWallet := extension.NewAdapter(extension.NewHTTPBridge(cfg.ExtensionBridgeURL), log)

	networks := network.NewService(netInfo, log)
	controller := adaptive.NewController(
		detector,
		manager,
		extensionWallet,
		embeddedWallet,
		balance.NewService(log),
		networks,
		log,
	)

	// Silent session restoration must not delay serving.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if controller.RestoreSession(ctx) {
			log.Info("previous wallet session restored")
		}
	}()

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: api.SetupRouter(controller, detector, networks, manager),
	}

	go func() {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("shutdown was not clean", zap.Error(err))
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
