package httpapi

import (
	"io"
	"net/http"

	"github.com/AkalankaJayasinghe/visit-sri-lanka-backend/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type TripPlanHandler struct {
	uc     *usecase.TripPlanUsecase
	logger *zap.Logger
}

func NewTripPlanHandler(uc *usecase.TripPlanUsecase, logger *zap.Logger) *TripPlanHandler {
	return &TripPlanHandler{uc: uc, logger: logger}
}

func (h *TripPlanHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	views, err := h.uc.ListMine(r.Context(), UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *TripPlanHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	view, err := h.uc.GetByID(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TripPlanHandler) Create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	view, err := h.uc.Create(r.Context(), UserID(r.Context()), body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

func (h *TripPlanHandler) Update(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxUploadBytes))
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	view, err := h.uc.Update(r.Context(), chi.URLParam(r, "id"), UserID(r.Context()), body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *TripPlanHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.uc.Delete(r.Context(), chi.URLParam(r, "id"), UserID(r.Context())); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "deleted")
}
