package catalog

import (
	"net/http"
	"net/url"
	"tindahan_server/handling"
	"tindahan_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (crm *CatalogRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	opts, err := handling.ParseCatalogListOptions(r)
	if err != nil {
		handling.HandleError(err, "Invalid query parameters", crm.logger, w)
		return
	}

	products, err := crm.catalogService.ListCatalog(r.Context(), *opts)
	if err != nil {
		handling.HandleError(err, "Unable to list products", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(
			lib.ValidationFailed(lib.FieldError{Field: "id", Message: "must be a valid UUID"}),
			"Invalid product id", crm.logger, w,
		)
		return
	}

	view, err := crm.catalogService.GetProductView(r.Context(), id)
	if err != nil {
		handling.HandleError(err, "Unable to fetch product", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(view),
		gecho.Send(),
	)
}

func (crm *CatalogRoutesManager) GetSizesForColor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		handling.HandleError(
			lib.ValidationFailed(lib.FieldError{Field: "id", Message: "must be a valid UUID"}),
			"Invalid product id", crm.logger, w,
		)
		return
	}

	// Color labels may carry spaces and unicode; the router keeps them escaped
	color, err := url.PathUnescape(chi.URLParam(r, "color"))
	if err != nil || color == "" {
		handling.HandleError(
			lib.ValidationFailed(lib.FieldError{Field: "color", Message: "is required"}),
			"Invalid color", crm.logger, w,
		)
		return
	}

	sizes, err := crm.catalogService.SizesForColor(r.Context(), id, color)
	if err != nil {
		handling.HandleError(err, "Unable to fetch sizes", crm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(sizes),
		gecho.Send(),
	)
}
