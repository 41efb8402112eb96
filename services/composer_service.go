package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"tindahan_server/lib"
	"tindahan_server/structs"
	"tindahan_server/structs/tables"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ComposerService drives the multi-step authoring flow: step submits write
// validated sections into the draft store, preview projects the merged draft
// without touching it, and commit turns a ready draft into exactly one
// active product.
type ComposerService struct {
	logger   *gecho.Logger
	config   *structs.Config
	media    *MediaService
	drafts   *DraftService
	products *ProductService
	catalog  *CatalogService

	// editLocks serializes edits per product
	editLocks *lib.KeyedMutex[uuid.UUID]
}

func NewComposerService(
	logger *gecho.Logger,
	cfg *structs.Config,
	media *MediaService,
	drafts *DraftService,
	products *ProductService,
	catalog *CatalogService,
) *ComposerService {
	return &ComposerService{
		logger:    logger,
		config:    cfg,
		media:     media,
		drafts:    drafts,
		products:  products,
		catalog:   catalog,
		editLocks: lib.NewKeyedMutex[uuid.UUID](),
	}
}

// ============================================================================
// Step submission
// ============================================================================

// SubmitStep1 validates and stores the basic-info section. An empty draft id
// starts a fresh draft.
func (cs *ComposerService) SubmitStep1(ctx context.Context, sellerID uuid.UUID, draftID string, req structs.Step1Request) (*structs.Draft, error) {
	basic, err := cs.validateStep1(req)
	if err != nil {
		return nil, err
	}

	if draftID == "" {
		draftID = uuid.New().String()
	}

	unlock := cs.drafts.Lock(sellerID, draftID)
	defer unlock()

	draft, err := cs.loadOrCreate(sellerID, draftID)
	if err != nil {
		return nil, err
	}

	draft.SetStep1(*basic)
	if err := cs.drafts.Save(draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// SubmitStep2 stores the description section. Attribute image lists (size
// guides, certifications) may arrive as data URLs and are ingested here.
func (cs *ComposerService) SubmitStep2(ctx context.Context, sellerID uuid.UUID, draftID string, req structs.Step2Request) (*structs.Draft, error) {
	desc, err := cs.buildStep2(req)
	if err != nil {
		return nil, err
	}

	unlock := cs.drafts.Lock(sellerID, draftID)
	defer unlock()

	draft, err := cs.loadOrCreate(sellerID, draftID)
	if err != nil {
		return nil, err
	}

	draft.SetStep2(*desc)
	if err := cs.drafts.Save(draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// SubmitStep3 normalizes the variant matrix and stores it. Whatever shape
// the client sent, the draft only ever holds the canonical list.
func (cs *ComposerService) SubmitStep3(ctx context.Context, sellerID uuid.UUID, draftID string, req structs.Step3Request) (*structs.Draft, error) {
	variants, err := cs.buildStep3(req)
	if err != nil {
		return nil, err
	}

	unlock := cs.drafts.Lock(sellerID, draftID)
	defer unlock()

	draft, err := cs.loadOrCreate(sellerID, draftID)
	if err != nil {
		return nil, err
	}

	draft.SetStep3(variants)
	if err := cs.drafts.Save(draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// SubmitSections applies a combined {step1, step2, step3} payload in one
// draft write. The step-3 endpoint accepts this shape from JSON clients that
// author the whole product at once.
func (cs *ComposerService) SubmitSections(ctx context.Context, sellerID uuid.UUID, draftID string, payload structs.ComposePayload) (*structs.Draft, error) {
	unlock := cs.drafts.Lock(sellerID, draftID)
	defer unlock()

	draft, err := cs.loadOrCreate(sellerID, draftID)
	if err != nil {
		return nil, err
	}

	if err := cs.applyPayload(draft, &payload); err != nil {
		return nil, err
	}
	if err := cs.drafts.Save(draft); err != nil {
		return nil, err
	}

	return draft, nil
}

// ============================================================================
// Preview
// ============================================================================

// Preview projects the merged draft into the catalog read model without
// mutating the draft. The blocker list tells the seller exactly what still
// stands between them and commit.
func (cs *ComposerService) Preview(ctx context.Context, sellerID uuid.UUID, draftID string) (*structs.PreviewResult, error) {
	draft, err := cs.drafts.Load(sellerID, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		return nil, lib.NewError(lib.KindNoDraft, "no draft in progress")
	}

	blockers := cs.commitBlockers(draft)

	result := &structs.PreviewResult{
		Errors: blockers,
		Draft:  draft,
		Ready:  len(blockers) == 0,
	}

	product := cs.assembleProduct(draft)
	result.Product = cs.catalog.BuildProductView(product)

	return result, nil
}

// ============================================================================
// Commit
// ============================================================================

// Commit atomically turns a ready draft into one active product. Committing
// the same draft twice returns a conflict carrying the product id of the
// first commit instead of creating a second row.
func (cs *ComposerService) Commit(ctx context.Context, sellerID uuid.UUID, draftID string, payload *structs.ComposePayload) (*tables.Product, error) {
	unlock := cs.drafts.Lock(sellerID, draftID)
	defer unlock()

	if committedID, err := cs.drafts.CommittedID(sellerID, draftID); err != nil {
		return nil, err
	} else if committedID != uuid.Nil {
		return nil, lib.AlreadyCommitted(committedID.String())
	}

	draft, err := cs.drafts.Load(sellerID, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		if payload == nil || (payload.Step1 == nil && payload.Step3 == nil) {
			return nil, lib.NewError(lib.KindNoDraft, "no draft in progress")
		}
		draft = &structs.Draft{SellerID: sellerID, DraftID: draftID}
	}

	// Sections supplied with the commit request override the stored draft
	if payload != nil {
		if err := cs.applyPayload(draft, payload); err != nil {
			return nil, err
		}
	}

	if blockers := cs.commitBlockers(draft); len(blockers) > 0 {
		fields := make([]lib.FieldError, 0, len(blockers))
		for _, b := range blockers {
			fields = append(fields, lib.FieldError{Field: b.Field, Message: b.Reason})
		}
		return nil, lib.ValidationFailed(fields...)
	}

	product := cs.assembleProduct(draft)

	// The commit marker is written inside the insert transaction: if the
	// marker cannot be claimed (redis down, or another commit won the race)
	// the row rolls back, so a retry can never produce a second product.
	inserted, err := cs.products.InsertActive(ctx, product, func(p *tables.Product) error {
		return cs.drafts.MarkCommitted(sellerID, draftID, p.ID)
	})
	if err != nil {
		return nil, err
	}

	// Marker exists from here on; a failed cleanup just leaves a draft that
	// can no longer be committed
	if err := cs.drafts.Delete(sellerID, draftID); err != nil {
		cs.logger.Warn("Draft cleanup failed after commit",
			gecho.Field("draft_id", draftID),
			gecho.Field("error", err),
		)
	}

	return inserted, nil
}

// ============================================================================
// Edit
// ============================================================================

// EditProduct applies section payloads to an existing committed product.
// Media ingestion happens up front; the row itself is reloaded and written
// inside one transaction so each edit lands on fresh state.
func (cs *ComposerService) EditProduct(ctx context.Context, sellerID, productID uuid.UUID, payload structs.ComposePayload) (*tables.Product, error) {
	unlock := cs.editLocks.Lock(productID)
	defer unlock()

	var basic *structs.DraftBasic
	var desc *structs.DraftDescription
	var variants structs.VariantList
	var err error

	if payload.Step1 != nil {
		if basic, err = cs.validateStep1(*payload.Step1); err != nil {
			return nil, err
		}
	}
	if payload.Step2 != nil {
		if desc, err = cs.buildStep2(*payload.Step2); err != nil {
			return nil, err
		}
	}
	if payload.Step3 != nil {
		if variants, err = cs.buildStep3(*payload.Step3); err != nil {
			return nil, err
		}
	}

	return cs.products.EditOwned(ctx, sellerID, productID, func(product *tables.Product) error {
		if basic != nil {
			applyBasic(product, basic)
		}
		if desc != nil {
			applyDescription(product, desc)
		}
		if variants != nil {
			product.Variants = variants
		}
		return nil
	})
}

// ============================================================================
// Section validation and assembly
// ============================================================================

// validateStep1 checks every field and reports all failures at once rather
// than stopping at the first.
func (cs *ComposerService) validateStep1(req structs.Step1Request) (*structs.DraftBasic, error) {
	var fields []lib.FieldError

	name := strings.TrimSpace(req.ProductName)
	if name == "" {
		fields = append(fields, lib.FieldError{Field: "productName", Message: "is required"})
	} else if len(name) > structs.MaxNameLength {
		fields = append(fields, lib.FieldError{Field: "productName", Message: fmt.Sprintf("must be at most %d characters", structs.MaxNameLength)})
	}

	category := strings.TrimSpace(req.Category)
	if category == "" {
		fields = append(fields, lib.FieldError{Field: "category", Message: "is required"})
	} else if len(category) > structs.MaxCategoryLength {
		fields = append(fields, lib.FieldError{Field: "category", Message: fmt.Sprintf("must be at most %d characters", structs.MaxCategoryLength)})
	}

	subcategory := strings.TrimSpace(req.Subcategory)
	if len(subcategory) > structs.MaxSubcategoryLength {
		fields = append(fields, lib.FieldError{Field: "subcategory", Message: fmt.Sprintf("must be at most %d characters", structs.MaxSubcategoryLength)})
	}

	price, err := decimal.NewFromString(strings.TrimSpace(req.Price))
	if err != nil {
		fields = append(fields, lib.FieldError{Field: "price", Message: "must be a decimal number"})
	} else if price.IsNegative() {
		fields = append(fields, lib.FieldError{Field: "price", Message: "must not be negative"})
	}

	discountType := structs.DiscountType(strings.TrimSpace(req.DiscountType))
	if discountType == "" {
		discountType = structs.DiscountNone
	}
	if !discountType.Valid() {
		fields = append(fields, lib.FieldError{Field: "discountType", Message: "must be one of none, percentage, fixed"})
	}

	discountValue := decimal.Zero
	if raw := strings.TrimSpace(req.DiscountValue); raw != "" {
		discountValue, err = decimal.NewFromString(raw)
		if err != nil {
			fields = append(fields, lib.FieldError{Field: "discountValue", Message: "must be a decimal number"})
		} else if discountValue.IsNegative() {
			fields = append(fields, lib.FieldError{Field: "discountValue", Message: "must not be negative"})
		}
	}

	if len(fields) > 0 {
		return nil, lib.ValidationFailed(fields...)
	}

	primary, err := cs.media.IngestImageRef(req.PrimaryImage, BucketProducts)
	if err != nil {
		return nil, err
	}
	secondary, err := cs.media.IngestImageRef(req.SecondaryImage, BucketProducts)
	if err != nil {
		return nil, err
	}

	return &structs.DraftBasic{
		Name:           name,
		Category:       category,
		Subcategory:    subcategory,
		Price:          price,
		DiscountType:   discountType,
		DiscountValue:  discountValue,
		VoucherType:    strings.TrimSpace(req.VoucherType),
		PrimaryImage:   primary,
		SecondaryImage: secondary,
	}, nil
}

func (cs *ComposerService) buildStep2(req structs.Step2Request) (*structs.DraftDescription, error) {
	sizeGuides, err := cs.ingestImageList(req.SizeGuide, BucketSizeGuides)
	if err != nil {
		return nil, err
	}
	certifications, err := cs.ingestImageList(req.Certifications, BucketCertifications)
	if err != nil {
		return nil, err
	}

	return &structs.DraftDescription{
		Description:    strings.TrimSpace(req.Description),
		Materials:      strings.TrimSpace(req.Materials),
		DetailsFit:     strings.TrimSpace(req.DetailsFit),
		SizeGuides:     sizeGuides,
		Certifications: certifications,
		Subitems:       req.Subitems,
	}, nil
}

func (cs *ComposerService) buildStep3(req structs.Step3Request) (structs.VariantList, error) {
	variants, err := structs.NormalizeVariants(req.Variants)
	if err != nil {
		return nil, err
	}

	// Swatch photos may arrive inline as data URLs
	for i := range variants {
		photo, err := cs.media.IngestImageRef(variants[i].Photo, BucketVariants)
		if err != nil {
			return nil, err
		}
		variants[i].Photo = photo
	}

	return variants, nil
}

func (cs *ComposerService) ingestImageList(refs []string, bucket string) ([]string, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		url, err := cs.media.IngestImageRef(ref, bucket)
		if err != nil {
			return nil, err
		}
		if url != "" {
			out = append(out, url)
		}
	}
	return out, nil
}

func (cs *ComposerService) applyPayload(draft *structs.Draft, payload *structs.ComposePayload) error {
	if payload.Step1 != nil {
		basic, err := cs.validateStep1(*payload.Step1)
		if err != nil {
			return err
		}
		draft.SetStep1(*basic)
	}
	if payload.Step2 != nil {
		desc, err := cs.buildStep2(*payload.Step2)
		if err != nil {
			return err
		}
		draft.SetStep2(*desc)
	}
	if payload.Step3 != nil {
		variants, err := cs.buildStep3(*payload.Step3)
		if err != nil {
			return err
		}
		draft.SetStep3(variants)
	}
	return nil
}

func (cs *ComposerService) loadOrCreate(sellerID uuid.UUID, draftID string) (*structs.Draft, error) {
	draft, err := cs.drafts.Load(sellerID, draftID)
	if err != nil {
		return nil, err
	}
	if draft == nil {
		draft = &structs.Draft{
			SellerID:  sellerID,
			DraftID:   draftID,
			UpdatedAt: time.Now().UTC(),
		}
	}
	return draft, nil
}

// commitBlockers lists everything preventing the draft from committing.
// Stored image references are re-checked here: a draft can outlive the files
// it points at, and a committed product must never reference missing media.
func (cs *ComposerService) commitBlockers(draft *structs.Draft) []structs.PreviewBlocker {
	var blockers []structs.PreviewBlocker

	missing := func(field, url string) {
		if url != "" && !cs.media.StoredURLExists(url) {
			blockers = append(blockers, structs.PreviewBlocker{Field: field, Reason: "references an image that no longer exists"})
		}
	}

	if draft.Step1 == nil {
		blockers = append(blockers, structs.PreviewBlocker{Field: "step1", Reason: "basic info has not been submitted"})
	} else {
		if draft.Step1.PrimaryImage == "" {
			blockers = append(blockers, structs.PreviewBlocker{Field: "primaryImage", Reason: "a primary image is required"})
		}
		missing("primaryImage", draft.Step1.PrimaryImage)
		missing("secondaryImage", draft.Step1.SecondaryImage)
	}

	if draft.Step2 != nil {
		for _, url := range draft.Step2.SizeGuides {
			missing("sizeGuide", url)
		}
		for _, url := range draft.Step2.Certifications {
			missing("certifications", url)
		}
	}

	if draft.Step3 == nil || len(draft.Step3.Variants) == 0 {
		blockers = append(blockers, structs.PreviewBlocker{Field: "variants", Reason: "at least one variant is required"})
	} else {
		for _, v := range draft.Step3.Variants {
			missing("variants."+v.Color, v.Photo)
		}
	}

	return blockers
}

// assembleProduct merges the draft sections into an unsaved product row.
// Pricing is derived here; totals are recomputed at the write boundary.
func (cs *ComposerService) assembleProduct(draft *structs.Draft) *tables.Product {
	product := &tables.Product{
		SellerID:          draft.SellerID,
		Status:            structs.StatusDraft,
		LowStockThreshold: structs.DefaultLowStockThreshold,
		Attributes:        structs.Attributes{},
		UpdatedAt:         draft.UpdatedAt,
	}

	if draft.Step1 != nil {
		pricing := structs.ComputePricing(draft.Step1.Price, draft.Step1.DiscountType, draft.Step1.DiscountValue)
		product.Name = draft.Step1.Name
		product.Category = draft.Step1.Category
		product.Subcategory = draft.Step1.Subcategory
		product.SalePrice = pricing.SalePrice
		product.CompareAtPrice = pricing.CompareAtPrice
		product.DiscountType = draft.Step1.DiscountType
		product.DiscountValue = draft.Step1.DiscountValue
		product.VoucherType = draft.Step1.VoucherType
		product.PrimaryImage = draft.Step1.PrimaryImage
		product.SecondaryImage = draft.Step1.SecondaryImage
	}

	if draft.Step2 != nil {
		product.Description = draft.Step2.Description
		product.Materials = draft.Step2.Materials
		product.DetailsFit = draft.Step2.DetailsFit
		product.Attributes.SetStringList(structs.AttrSizeGuides, draft.Step2.SizeGuides)
		product.Attributes.SetStringList(structs.AttrCertifications, draft.Step2.Certifications)
		product.Attributes.SetStringList(structs.AttrSubitems, draft.Step2.Subitems)
	}

	if draft.Step3 != nil {
		product.Variants = draft.Step3.Variants
		product.TotalStock = draft.Step3.Variants.TotalStock()
	}

	return product
}

// applyBasic maps a validated basic-info section onto an existing row
func applyBasic(product *tables.Product, basic *structs.DraftBasic) {
	pricing := structs.ComputePricing(basic.Price, basic.DiscountType, basic.DiscountValue)
	product.Name = basic.Name
	product.Category = basic.Category
	product.Subcategory = basic.Subcategory
	product.SalePrice = pricing.SalePrice
	product.CompareAtPrice = pricing.CompareAtPrice
	product.DiscountType = basic.DiscountType
	product.DiscountValue = basic.DiscountValue
	product.VoucherType = basic.VoucherType
	if basic.PrimaryImage != "" {
		product.PrimaryImage = basic.PrimaryImage
	}
	if basic.SecondaryImage != "" {
		product.SecondaryImage = basic.SecondaryImage
	}
}

// applyDescription maps a description section onto an existing row
func applyDescription(product *tables.Product, desc *structs.DraftDescription) {
	product.Description = desc.Description
	product.Materials = desc.Materials
	product.DetailsFit = desc.DetailsFit
	if product.Attributes == nil {
		product.Attributes = structs.Attributes{}
	}
	product.Attributes.SetStringList(structs.AttrSizeGuides, desc.SizeGuides)
	product.Attributes.SetStringList(structs.AttrCertifications, desc.Certifications)
	product.Attributes.SetStringList(structs.AttrSubitems, desc.Subitems)
}
