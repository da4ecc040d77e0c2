package handler

import (
	"net/http"

	"github.com/srwa-platform/adaptive-wallet/internal/connection"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/network"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"
)

// NetworkHandler exposes network identity and explorer links.
type NetworkHandler struct {
	networks *network.Service
	manager  *connection.Manager
}

// NewNetworkHandler creates a new NetworkHandler.
func NewNetworkHandler(networks *network.Service, manager *connection.Manager) *NetworkHandler {
	return &NetworkHandler{networks: networks, manager: manager}
}

// Current handles GET /network
// @Summary      Current network
// @Description  Returns the network of the active wallet, or the configured network when idle
// @Tags         network
// @Produce      json
// @Success      200  {object}  wallet.NetworkInfo
// @Failure      400  {object}  model.ErrorResponse
// @Router       /network [get]
func (h *NetworkHandler) Current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	n, err := h.networks.CurrentNetwork(r.Context(), h.manager.Adapter())
	if err != nil {
		writeWalletError(w, wallet.Normalize(err))
		return
	}
	writeJSON(w, http.StatusOK, n)
}

// ExplorerURL handles GET /network/explorer-url
// @Summary      Explorer link
// @Description  Builds a stellar.expert link for an account or transaction on the configured network
// @Tags         network
// @Produce      json
// @Param        resource  query     string  true  "Resource kind: account or tx"
// @Param        id        query     string  true  "Account address or transaction hash"
// @Success      200       {object}  model.ExplorerURLResponse
// @Failure      400       {object}  model.ErrorResponse
// @Router       /network/explorer-url [get]
func (h *NetworkHandler) ExplorerURL(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	resource := r.URL.Query().Get("resource")
	id := r.URL.Query().Get("id")

	u, err := network.ExplorerURL(h.networks.Configured().Type, resource, id)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.CodeOf(err))
		return
	}
	writeJSON(w, http.StatusOK, model.ExplorerURLResponse{URL: u})
}
