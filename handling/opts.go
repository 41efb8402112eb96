package handling

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"tindahan_server/lib"
	"tindahan_server/services"
	"tindahan_server/structs"
)

// ParseCatalogListOptions parses HTTP query parameters into CatalogListOptions
func ParseCatalogListOptions(r *http.Request) (*services.CatalogListOptions, error) {
	query := r.URL.Query()

	opts := &services.CatalogListOptions{}

	if page := query.Get("page"); page != "" {
		valInt, err := strconv.Atoi(page)
		if err != nil {
			return nil, lib.ValidationFailed(lib.FieldError{Field: "page", Message: "must be an integer"})
		}
		opts.Page = valInt
	}

	if pageSize := query.Get("page_size"); pageSize != "" {
		valInt, err := strconv.Atoi(pageSize)
		if err != nil {
			return nil, lib.ValidationFailed(lib.FieldError{Field: "page_size", Message: "must be an integer"})
		}
		opts.PageSize = valInt
	}

	opts.Category = strings.TrimSpace(query.Get("category"))
	opts.NamePrefix = strings.TrimSpace(query.Get("q"))

	return opts, nil
}

// ParseSellerListOptions parses the seller product listing parameters
func ParseSellerListOptions(r *http.Request) (structs.ProductStatus, int, int, error) {
	query := r.URL.Query()

	status := structs.ProductStatus(strings.TrimSpace(query.Get("status")))
	if status != "" && !status.Valid() {
		return "", 0, 0, lib.ValidationFailed(lib.FieldError{Field: "status", Message: "is invalid"})
	}

	page := 0
	if raw := query.Get("page"); raw != "" {
		valInt, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, 0, lib.ValidationFailed(lib.FieldError{Field: "page", Message: "must be an integer"})
		}
		page = valInt
	}

	pageSize := 0
	if raw := query.Get("page_size"); raw != "" {
		valInt, err := strconv.Atoi(raw)
		if err != nil {
			return "", 0, 0, lib.ValidationFailed(lib.FieldError{Field: "page_size", Message: "must be an integer"})
		}
		pageSize = valInt
	}

	return status, page, pageSize, nil
}

// ParseStepOneForm maps a browser form post onto the step-1 payload. Numeric
// fields stay strings; the composer parses them during validation.
func ParseStepOneForm(r *http.Request) (*structs.Step1Request, error) {
	if err := r.ParseForm(); err != nil {
		return nil, lib.ValidationFailed(lib.FieldError{Field: "body", Message: "unparsable form body"})
	}

	return &structs.Step1Request{
		ProductName:    strings.TrimSpace(r.PostFormValue("productName")),
		Category:       strings.TrimSpace(r.PostFormValue("category")),
		Subcategory:    strings.TrimSpace(r.PostFormValue("subcategory")),
		Price:          strings.TrimSpace(r.PostFormValue("price")),
		DiscountType:   strings.TrimSpace(r.PostFormValue("discountType")),
		DiscountValue:  strings.TrimSpace(r.PostFormValue("discountValue")),
		VoucherType:    strings.TrimSpace(r.PostFormValue("voucherType")),
		PrimaryImage:   strings.TrimSpace(r.PostFormValue("primaryImage")),
		SecondaryImage: strings.TrimSpace(r.PostFormValue("secondaryImage")),
	}, nil
}

// ParseStepTwoForm maps a browser form post onto the step-2 payload. The
// list-valued fields repeat (sizeGuide=a&sizeGuide=b).
func ParseStepTwoForm(r *http.Request) (*structs.Step2Request, error) {
	if err := r.ParseForm(); err != nil {
		return nil, lib.ValidationFailed(lib.FieldError{Field: "body", Message: "unparsable form body"})
	}

	return &structs.Step2Request{
		Description:    strings.TrimSpace(r.PostFormValue("description")),
		Materials:      strings.TrimSpace(r.PostFormValue("materials")),
		DetailsFit:     strings.TrimSpace(r.PostFormValue("detailsFit")),
		SizeGuide:      trimmedValues(r.PostForm["sizeGuide"]),
		Certifications: trimmedValues(r.PostForm["certifications"]),
		Subitems:       trimmedValues(r.PostForm["subitems"]),
	}, nil
}

func trimmedValues(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// formVariantRow mirrors one indexed group of variant form fields
type formVariantRow struct {
	SKU        string          `json:"sku,omitempty"`
	Color      string          `json:"color"`
	ColorHex   string          `json:"colorHex,omitempty"`
	Photo      string          `json:"photo,omitempty"`
	LowStock   *int            `json:"lowStock,omitempty"`
	SizeStocks json.RawMessage `json:"sizeStocks"`
}

// ParseStepThreeForm assembles a variant payload from indexed form fields
// (sku_0, color_0, color_picker_0, lowStock_0, sizeStocks_0=<json>, ...).
// The result feeds the same normalization path as the JSON surface.
func ParseStepThreeForm(r *http.Request) (*structs.Step3Request, error) {
	if err := r.ParseForm(); err != nil {
		return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable form body", err)
	}

	var rows []formVariantRow
	for i := 0; ; i++ {
		suffix := "_" + strconv.Itoa(i)
		color := strings.TrimSpace(r.PostFormValue("color" + suffix))
		sizeStocks := strings.TrimSpace(r.PostFormValue("sizeStocks" + suffix))
		if color == "" && sizeStocks == "" {
			break
		}

		row := formVariantRow{
			SKU:      strings.TrimSpace(r.PostFormValue("sku" + suffix)),
			Color:    color,
			ColorHex: strings.TrimSpace(r.PostFormValue("color_picker" + suffix)),
			Photo:    strings.TrimSpace(r.PostFormValue("photo" + suffix)),
		}

		if raw := strings.TrimSpace(r.PostFormValue("lowStock" + suffix)); raw != "" {
			low, err := strconv.Atoi(raw)
			if err != nil {
				return nil, lib.ValidationFailed(lib.FieldError{Field: "lowStock" + suffix, Message: "must be an integer"})
			}
			row.LowStock = &low
		}

		if sizeStocks == "" {
			return nil, lib.ValidationFailed(lib.FieldError{Field: "sizeStocks" + suffix, Message: "is required"})
		}
		if !json.Valid([]byte(sizeStocks)) {
			return nil, lib.ValidationFailed(lib.FieldError{Field: "sizeStocks" + suffix, Message: "must be valid JSON"})
		}
		row.SizeStocks = json.RawMessage(sizeStocks)

		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, lib.NewError(lib.KindMalformedVariants, "no variant rows in form body")
	}

	raw, err := json.Marshal(rows)
	if err != nil {
		return nil, lib.WrapError(lib.KindMalformedVariants, "failed to encode variant rows", err)
	}

	return &structs.Step3Request{Variants: raw}, nil
}
