package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/srwa-platform/adaptive-wallet/internal/adaptive"
	"github.com/srwa-platform/adaptive-wallet/internal/common"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"
)

const exportWarning = "Never share this secret. Anyone holding it controls the wallet."

// WalletHandler exposes wallet connection, signing and key management.
type WalletHandler struct {
	controller *adaptive.Controller
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(controller *adaptive.Controller) *WalletHandler {
	return &WalletHandler{controller: controller}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string, code wallet.ErrorCode) {
	writeJSON(w, status, model.ErrorResponse{Error: msg, Code: string(code)})
}

func writeWalletError(w http.ResponseWriter, e *wallet.Error) {
	writeError(w, httpStatus(e.Code), e.Message, e.Code)
}

// httpStatus maps taxonomy codes onto HTTP statuses.
func httpStatus(code wallet.ErrorCode) int {
	switch code {
	case wallet.ErrConnectionRejected, wallet.ErrTransactionRejected:
		return http.StatusForbidden
	case wallet.ErrWalletNotInstalled:
		return http.StatusFailedDependency
	case wallet.ErrNoWalletConnected:
		return http.StatusConflict
	case wallet.ErrNetworkUnrecognized:
		return http.StatusBadRequest
	case wallet.ErrStorageUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func statusResponse(st adaptive.State) model.StatusResponse {
	resp := model.StatusResponse{
		IsConnected:    st.IsConnected,
		IsConnecting:   st.IsConnecting,
		Address:        st.Address,
		WalletMode:     string(st.WalletMode),
		WalletProvider: string(st.WalletProvider),
		Balance:        st.Balance,
	}
	if st.Network != nil {
		resp.Network = string(st.Network.Type)
	}
	if st.Err != nil {
		resp.Error = st.Err.Message
		resp.ErrorCode = string(st.Err.Code)
	}
	return resp
}

// Connect handles POST /wallet/connect
// @Summary      Connect a wallet
// @Description  Opens a wallet session with the provider for the current device mode, or a requested one
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ConnectRequest  false  "Optional wallet type override"
// @Success      200      {object}  model.StatusResponse
// @Failure      403      {object}  model.ErrorResponse
// @Router       /wallet/connect [post]
func (h *WalletHandler) Connect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.ErrUnknown)
		return
	}

	res := h.controller.Connect(r.Context(), wallet.Type(req.WalletType))
	if !res.Success {
		writeWalletError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse(h.controller.State()))
}

// Disconnect handles POST /wallet/disconnect
// @Summary      Disconnect the wallet
// @Description  Closes the active session; always succeeds
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/disconnect [post]
func (h *WalletHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	h.controller.Disconnect(r.Context())
	writeJSON(w, http.StatusOK, statusResponse(h.controller.State()))
}

// Status handles GET /wallet/status
// @Summary      Wallet status
// @Description  Returns the normalized wallet state snapshot
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.StatusResponse
// @Router       /wallet/status [get]
func (h *WalletHandler) Status(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, statusResponse(h.controller.State()))
}

// Supported handles GET /wallet/supported
// @Summary      Supported wallets
// @Description  Lists the known wallet providers and whether each is currently available
// @Tags         wallet
// @Produce      json
// @Success      200  {array}  wallet.Info
// @Router       /wallet/supported [get]
func (h *WalletHandler) Supported(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.controller.SupportedWallets(r.Context()))
}

// Sign handles POST /wallet/sign
// @Summary      Sign a transaction
// @Description  Signs a base64 XDR transaction envelope with the connected wallet
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignRequest  true  "Transaction to sign"
// @Success      200      {object}  model.SignResponse
// @Failure      403      {object}  model.ErrorResponse
// @Failure      409      {object}  model.ErrorResponse
// @Router       /wallet/sign [post]
func (h *WalletHandler) Sign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.SignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.ErrUnknown)
		return
	}
	if req.XDR == "" {
		writeError(w, http.StatusBadRequest, "xdr is required", wallet.ErrUnknown)
		return
	}

	res := h.controller.SignTransaction(r.Context(), req.XDR, nil)
	if !res.Success {
		writeWalletError(w, res.Err)
		return
	}
	writeJSON(w, http.StatusOK, model.SignResponse{SignedXDR: res.SignedTransaction})
}

// Balance handles GET /wallet/balance
// @Summary      Get wallet balance
// @Description  Returns the last known native balance of the connected account
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/balance [get]
func (h *WalletHandler) Balance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	st := h.controller.State()
	if !st.IsConnected {
		writeError(w, http.StatusConflict, "no wallet connected", wallet.ErrNoWalletConnected)
		return
	}
	writeJSON(w, http.StatusOK, model.BalanceResponse{
		Address:   st.Address,
		Balance:   st.Balance,
		Formatted: common.FormatBalance(st.Balance, 2),
		Network:   string(st.Network.Type),
	})
}

// AllBalances handles GET /wallet/balances
// @Summary      List all balances
// @Description  Returns every balance line of the connected account, all assets included
// @Tags         wallet
// @Produce      json
// @Success      200  {array}   model.AssetBalance
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/balances [get]
func (h *WalletHandler) AllBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	balances, err := h.controller.AllBalances(r.Context())
	if err != nil {
		writeWalletError(w, wallet.Normalize(err))
		return
	}
	writeJSON(w, http.StatusOK, balances)
}

// RefreshBalance handles POST /wallet/balance/refresh
// @Summary      Refresh wallet balance
// @Description  Re-reads the native balance from horizon
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BalanceResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/balance/refresh [post]
func (h *WalletHandler) RefreshBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	balance, err := h.controller.RefreshBalance(r.Context())
	if err != nil {
		writeWalletError(w, wallet.Normalize(err))
		return
	}
	st := h.controller.State()
	writeJSON(w, http.StatusOK, model.BalanceResponse{
		Address:   st.Address,
		Balance:   balance,
		Formatted: common.FormatBalance(balance, 2),
		Network:   string(st.Network.Type),
	})
}

// Export handles POST /wallet/export
// @Summary      Export the device wallet secret
// @Description  Returns the raw secret seed of the embedded wallet. The response is sensitive.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.ExportResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/export [post]
func (h *WalletHandler) Export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	secret, err := h.controller.Export()
	if err != nil {
		writeWalletError(w, wallet.Normalize(err))
		return
	}
	writeJSON(w, http.StatusOK, model.ExportResponse{
		Secret:    secret,
		Sensitive: true,
		Warning:   exportWarning,
	})
}

// Import handles POST /wallet/import
// @Summary      Import a device wallet
// @Description  Replaces the embedded wallet with the given secret seed
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ImportRequest  true  "Secret seed"
// @Success      200      {object}  model.ImportResponse
// @Failure      400      {object}  model.ImportResponse
// @Router       /wallet/import [post]
func (h *WalletHandler) Import(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ImportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.ErrUnknown)
		return
	}

	address, ok := h.controller.Import(req.Secret)
	if !ok {
		writeJSON(w, http.StatusBadRequest, model.ImportResponse{
			Success: false,
			Error:   "invalid secret seed",
		})
		return
	}
	writeJSON(w, http.StatusOK, model.ImportResponse{Success: true, Address: address})
}

// BackupQR handles GET /wallet/backup-qr
// @Summary      Backup QR code
// @Description  Returns a QR code PNG (base64) embedding the wallet restore payload. The response is sensitive.
// @Tags         wallet
// @Produce      json
// @Success      200  {object}  model.BackupQRResponse
// @Failure      409  {object}  model.ErrorResponse
// @Router       /wallet/backup-qr [get]
func (h *WalletHandler) BackupQR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	qr, err := h.controller.BackupQR()
	if err != nil {
		writeWalletError(w, wallet.Normalize(err))
		return
	}
	writeJSON(w, http.StatusOK, model.BackupQRResponse{QRPNG: qr, Sensitive: true})
}

// Mode handles POST /wallet/mode
// @Summary      Switch wallet mode
// @Description  Switches between the desktop (extension) and mobile (device wallet) flows
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        request  body      model.ModeRequest  true  "Target mode"
// @Success      200      {object}  model.StatusResponse
// @Failure      400      {object}  model.ErrorResponse
// @Router       /wallet/mode [post]
func (h *WalletHandler) Mode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.ErrUnknown)
		return
	}

	switch adaptive.Mode(req.Mode) {
	case adaptive.ModeMobile:
		h.controller.SwitchToMobileMode(r.Context())
	case adaptive.ModeDesktop:
		h.controller.SwitchToDesktopMode(r.Context())
	default:
		writeError(w, http.StatusBadRequest, "mode must be \"desktop\" or \"mobile\"", wallet.ErrUnknown)
		return
	}
	writeJSON(w, http.StatusOK, statusResponse(h.controller.State()))
}
