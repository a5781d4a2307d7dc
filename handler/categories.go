package handler

import "net/http"

// ListCategories godoc
// @Summary List the distinct categories in the catalog
// @Description Lists every category present in the full store in ascending order, independent of any listing filter
// @Tags categories
// @Produce json
// @Success 200 {array} string
// @Failure 500
// @Router /v1/categories [get]
func (h *Handler) listCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.ListCategories()
	if err != nil {
		h.serverErrorResponse(w, r, err)
		return
	}
	// The category listing is the one response served as a bare JSON array:
	// the facet consumer expects string[], not an envelope.
	err = h.encodeJSON(w, http.StatusOK, categories, nil)
	if err != nil {
		h.serverErrorResponse(w, r, err)
	}
}
