package handler

import (
	"log/slog"
	"net/http"

	"github.com/jmeier/smartfridge/internal/service"
)

// ProductHandler manages the product catalog routes.
type ProductHandler struct {
	products *service.ProductService
	logger   *slog.Logger
}

func NewProductHandler(products *service.ProductService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{products: products, logger: logger}
}

type productRequest struct {
	UserID   int64  `json:"user_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	ImageURL string `json:"image_url"`
	Unit     string `json:"unit"`
	Barcode  string `json:"barcode"`
}

func (req *productRequest) input() service.ProductInput {
	return service.ProductInput{
		Name:     req.Name,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Unit:     req.Unit,
		Barcode:  req.Barcode,
	}
}

// HandleCreate adds a product to a user's catalog.
//
// HTTP: POST /api/products
// Body: {"user_id": 1, "name": "Milk", "unit": "L", ...}
func (h *ProductHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Create(r.Context(), req.UserID, req.input())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// HandleListByUser returns a user's catalog.
//
// HTTP: GET /api/users/{id}/products
func (h *ProductHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	products, err := h.products.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleGetByID returns a single product.
//
// HTTP: GET /api/products/{id}
func (h *ProductHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleUpdate replaces a product's mutable fields.
//
// HTTP: PUT /api/products/{id}
// The user_id in the body, if any, is ignored — products never change owner.
func (h *ProductHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err)
		return
	}

	product, err := h.products.Update(r.Context(), id, req.input())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// HandleDelete removes a product and its stock entries everywhere.
//
// HTTP: DELETE /api/products/{id}
func (h *ProductHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, err)
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
