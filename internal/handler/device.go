package handler

import (
	"encoding/json"
	"net/http"

	"github.com/srwa-platform/adaptive-wallet/internal/device"
	"github.com/srwa-platform/adaptive-wallet/internal/model"
	"github.com/srwa-platform/adaptive-wallet/internal/wallet"
)

// DeviceHandler exposes device classification.
type DeviceHandler struct {
	detector *device.Detector
}

// NewDeviceHandler creates a new DeviceHandler.
func NewDeviceHandler(detector *device.Detector) *DeviceHandler {
	return &DeviceHandler{detector: detector}
}

// Viewport handles POST /device/viewport
// @Summary      Report viewport
// @Description  Reports the client viewport width; the user agent comes from the request headers
// @Tags         device
// @Accept       json
// @Produce      json
// @Param        request  body      model.ViewportRequest  true  "Viewport width in CSS pixels"
// @Success      200      {object}  device.Classification
// @Failure      400      {object}  model.ErrorResponse
// @Router       /device/viewport [post]
func (h *DeviceHandler) Viewport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed. Should be POST", http.StatusMethodNotAllowed)
		return
	}

	var req model.ViewportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), wallet.ErrUnknown)
		return
	}
	if req.Width <= 0 {
		writeError(w, http.StatusBadRequest, "width must be positive", wallet.ErrUnknown)
		return
	}

	cls := h.detector.Update(r.UserAgent(), req.Width)
	writeJSON(w, http.StatusOK, cls)
}

// Current handles GET /device
// @Summary      Current device classification
// @Description  Returns the latest mobile/tablet/desktop classification
// @Tags         device
// @Produce      json
// @Success      200  {object}  device.Classification
// @Router       /device [get]
func (h *DeviceHandler) Current(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed. Should be GET", http.StatusMethodNotAllowed)
		return
	}

	writeJSON(w, http.StatusOK, h.detector.Current())
}
