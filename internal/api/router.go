package api

import (
	"net/http"

	"github.com/srwa-platform/adaptive-wallet/internal/adaptive"
	"github.com/srwa-platform/adaptive-wallet/internal/connection"
	"github.com/srwa-platform/adaptive-wallet/internal/device"
	"github.com/srwa-platform/adaptive-wallet/internal/handler"
	"github.com/srwa-platform/adaptive-wallet/internal/network"

	httpSwagger "github.com/swaggo/http-swagger"
)

// SetupRouter sets up router with handlers
func SetupRouter(
	controller *adaptive.Controller,
	detector *device.Detector,
	networks *network.Service,
	manager *connection.Manager,
) http.Handler {
	walletHandler := handler.NewWalletHandler(controller)
	deviceHandler := handler.NewDeviceHandler(detector)
	networkHandler := handler.NewNetworkHandler(networks, manager)

	mux := http.NewServeMux()

	// Swagger UI
	mux.HandleFunc("/swagger/", httpSwagger.WrapHandler)

	// Wallet endpoints
	mux.HandleFunc("/wallet/connect", walletHandler.Connect)
	mux.HandleFunc("/wallet/disconnect", walletHandler.Disconnect)
	mux.HandleFunc("/wallet/status", walletHandler.Status)
	mux.HandleFunc("/wallet/supported", walletHandler.Supported)
	mux.HandleFunc("/wallet/sign", walletHandler.Sign)
	mux.HandleFunc("/wallet/balance", walletHandler.Balance)
	mux.HandleFunc("/wallet/balances", walletHandler.AllBalances)
	mux.HandleFunc("/wallet/balance/refresh", walletHandler.RefreshBalance)
	mux.HandleFunc("/wallet/export", walletHandler.Export)
	mux.HandleFunc("/wallet/import", walletHandler.Import)
	mux.HandleFunc("/wallet/backup-qr", walletHandler.BackupQR)
	mux.HandleFunc("/wallet/mode", walletHandler.Mode)

	// Device endpoints
	mux.HandleFunc("/device", deviceHandler.Current)
	mux.HandleFunc("/device/viewport", deviceHandler.Viewport)

	// Network endpoints
	mux.HandleFunc("/network", networkHandler.Current)
	mux.HandleFunc("/network/explorer-url", networkHandler.ExplorerURL)

	return mux
}
