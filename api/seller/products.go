package seller

import (
	"net/http"
	"tindahan_server/handling"
	"tindahan_server/lib"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func productIDFromRequest(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, lib.ValidationFailed(lib.FieldError{Field: "id", Message: "must be a valid UUID"})
	}
	return id, nil
}

func (srm *SellerRoutesManager) ListProducts(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	status, page, pageSize, err := handling.ParseSellerListOptions(r)
	if err != nil {
		handling.HandleError(err, "Invalid query parameters", srm.logger, w)
		return
	}

	products, err := srm.catalogService.ListSellerProducts(r.Context(), sellerID, status, page, pageSize)
	if err != nil {
		handling.HandleError(err, "Unable to list products", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(products),
		gecho.Send(),
	)
}

func (srm *SellerRoutesManager) EditProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromRequest(r)
	if err != nil {
		handling.HandleError(err, "Invalid product id", srm.logger, w)
		return
	}

	payload, err := lib.ExtractAndValidateBody[structs.ComposePayload](r)
	if err != nil {
		handling.HandleError(err, "Invalid edit payload", srm.logger, w)
		return
	}

	product, err := srm.composerService.EditProduct(r.Context(), sellerID, productID, *payload)
	if err != nil {
		handling.HandleError(err, "Unable to edit product", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.WithMessage("Product updated"),
		gecho.Send(),
	)
}

type statusRequest struct {
	Status structs.ProductStatus `json:"status" validate:"required"`
}

func (srm *SellerRoutesManager) SetProductStatus(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromRequest(r)
	if err != nil {
		handling.HandleError(err, "Invalid product id", srm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[statusRequest](r)
	if err != nil {
		handling.HandleError(err, "Invalid status payload", srm.logger, w)
		return
	}

	if err := srm.productService.SetStatus(r.Context(), sellerID, productID, body.Status); err != nil {
		handling.HandleError(err, "Unable to change product status", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product status updated"),
		gecho.Send(),
	)
}

type stockRequest struct {
	Color string `json:"color" validate:"required"`
	Size  string `json:"size" validate:"required"`
	Delta int    `json:"delta" validate:"required"`
}

func (srm *SellerRoutesManager) AdjustProductStock(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromRequest(r)
	if err != nil {
		handling.HandleError(err, "Invalid product id", srm.logger, w)
		return
	}

	body, err := lib.ExtractAndValidateBody[stockRequest](r)
	if err != nil {
		handling.HandleError(err, "Invalid stock payload", srm.logger, w)
		return
	}

	product, err := srm.productService.AdjustStock(r.Context(), sellerID, productID, body.Color, body.Size, body.Delta)
	if err != nil {
		handling.HandleError(err, "Unable to adjust stock", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(product),
		gecho.WithMessage("Stock updated"),
		gecho.Send(),
	)
}

func (srm *SellerRoutesManager) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	productID, err := productIDFromRequest(r)
	if err != nil {
		handling.HandleError(err, "Invalid product id", srm.logger, w)
		return
	}

	if err := srm.productService.Delete(r.Context(), sellerID, productID); err != nil {
		handling.HandleError(err, "Unable to delete product", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product deleted"),
		gecho.Send(),
	)
}
