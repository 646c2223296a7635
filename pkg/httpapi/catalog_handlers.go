package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/you/storefront/pkg/model"
)

func (h *Handlers) getProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	product, err := h.products.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("product with id %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, product)
}

func (h *Handlers) listProducts(w http.ResponseWriter, r *http.Request) {
	page, count, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.products.List(r.Context(), page, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if products == nil {
		products = []model.Product{}
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handlers) getOrder(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	order, err := h.orders.GetByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if order == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("order with id %s not found", id))
		return
	}
	writeJSON(w, http.StatusOK, order)
}

func (h *Handlers) listOrders(w http.ResponseWriter, r *http.Request) {
	page, count, err := parseListParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	orders, err := h.orders.List(r.Context(), page, count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []model.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}
