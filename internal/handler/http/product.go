package http

import (
	"net/http"

	"github.com/MKhiriev/remy-site/internal/utils"
	"github.com/MKhiriev/remy-site/models"
)

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.ProductService.GetProduct(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.NewProductResponse(product), http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.services.ProductService.CreateProduct(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true, ID: product.ID}, http.StatusOK)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var update models.ProductUpdate
	if err := decodeJSONBody(w, r, &update); err != nil {
		h.writeError(w, r, err)
		return
	}

	product, err := h.services.ProductService.UpdateProduct(r.Context(), update)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	utils.WriteJSON(w, models.OKResponse{OK: true, ID: product.ID}, http.StatusOK)
}
