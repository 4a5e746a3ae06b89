package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmeier/smartfridge/internal/service"
)

// FridgeHandler manages fridge CRUD and the stock routes nested under a
// fridge. Stock lives here rather than in its own handler because every
// stock URL is anchored on a fridge or an entry id — the routes read
// naturally as operations on a container.
type FridgeHandler struct {
	fridges *service.FridgeService
	stock   *service.StockService
	logger  *slog.Logger
}

func NewFridgeHandler(fridges *service.FridgeService, stock *service.StockService, logger *slog.Logger) *FridgeHandler {
	return &FridgeHandler{fridges: fridges, stock: stock, logger: logger}
}

type createFridgeRequest struct {
	UserID int64  `json:"user_id"`
	Title  string `json:"title"`
}

// HandleCreate creates a fridge.
//
// HTTP: POST /api/fridges
// Body: {"user_id": 1, "title": "Kitchen"}
func (h *FridgeHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req createFridgeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	fridge, err := h.fridges.Create(r.Context(), req.UserID, req.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, fridge)
}

// HandleListByUser returns all of a user's fridges.
//
// HTTP: GET /api/users/{id}/fridges
func (h *FridgeHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	fridges, err := h.fridges.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fridges)
}

// HandleGetByID returns a single fridge.
//
// HTTP: GET /api/fridges/{id}
func (h *FridgeHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	fridge, err := h.fridges.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, fridge)
}

type renameFridgeRequest struct {
	Title string `json:"title"`
}

// HandleRename changes a fridge's title.
//
// HTTP: PUT /api/fridges/{id}
func (h *FridgeHandler) HandleRename(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req renameFridgeRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.fridges.Rename(r.Context(), id, req.Title); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "fridge updated"})
}

// HandleDelete removes a fridge and its stock entries.
//
// HTTP: DELETE /api/fridges/{id}
func (h *FridgeHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.fridges.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleContents returns the denormalized contents of a fridge.
//
// HTTP: GET /api/fridges/{id}/contents
// An empty fridge returns [], an unknown fridge id returns 404.
func (h *FridgeHandler) HandleContents(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	items, err := h.stock.FridgeContents(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, items)
}

type storeStockRequest struct {
	ProductID int64   `json:"product_id"`
	Quantity  float64 `json:"quantity"`
	ExpiresOn string  `json:"expires_on"`
	StockedOn string  `json:"stocked_on"`
}

// HandleStore puts a quantity of a product into a fridge.
//
// HTTP: POST /api/fridges/{id}/stock
// Body: {"product_id": 3, "quantity": 1.5, "expires_on": "2025-06-05", "stocked_on": "2025-05-20"}
func (h *FridgeHandler) HandleStore(w http.ResponseWriter, r *http.Request) {
	fridgeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req storeStockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	entry, err := h.stock.Store(r.Context(), req.ProductID, fridgeID, req.Quantity, req.ExpiresOn, req.StockedOn)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

type updateStockRequest struct {
	Quantity  float64 `json:"quantity"`
	ExpiresOn string  `json:"expires_on"`
	StockedOn string  `json:"stocked_on"`
}

// HandleUpdateStock replaces the quantity and dates of a stock entry.
// Quantity zero or below removes the entry.
//
// HTTP: PUT /api/stock/{id}
func (h *FridgeHandler) HandleUpdateStock(w http.ResponseWriter, r *http.Request) {
	entryID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req updateStockRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if err := h.stock.Update(r.Context(), entryID, req.Quantity, req.ExpiresOn, req.StockedOn); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "stock entry updated"})
}

// HandleRemoveStock removes every entry of a product from a fridge.
//
// HTTP: DELETE /api/fridges/{id}/products/{productID}
func (h *FridgeHandler) HandleRemoveStock(w http.ResponseWriter, r *http.Request) {
	fridgeID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}
	productID, err := pathID(r, "productID")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.stock.Remove(r.Context(), productID, fridgeID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
