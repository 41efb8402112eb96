package seller

import (
	"net/http"
	"strings"
	"tindahan_server/api/middleware"
	"tindahan_server/handling"
	"tindahan_server/lib"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// defaultDraftID is used when the client does not name a draft; each seller
// gets one implicit draft in progress.
const defaultDraftID = "current"

func draftIDFromRequest(r *http.Request) string {
	if id := strings.TrimSpace(r.URL.Query().Get("draft_id")); id != "" {
		return id
	}
	return defaultDraftID
}

func sellerFromRequest(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sellerID, ok := middleware.GetSellerIDFromContext(r.Context())
	if !ok {
		gecho.Unauthorized(w, gecho.WithMessage("Missing seller session"), gecho.Send())
		return uuid.Nil, false
	}
	return sellerID, true
}

// wantsJSON distinguishes API clients from browser form posts; the latter
// get redirected through the authoring flow.
func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func stepSaved(w http.ResponseWriter, r *http.Request, draft *structs.Draft, next, message string) {
	if !wantsJSON(r) {
		http.Redirect(w, r, next, http.StatusSeeOther)
		return
	}
	gecho.Success(w,
		gecho.WithData(draft),
		gecho.WithMessage(message),
		gecho.Send(),
	)
}

func (srm *SellerRoutesManager) SubmitStepOne(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	var body *structs.Step1Request
	var err error
	if isFormRequest(r) {
		body, err = handling.ParseStepOneForm(r)
	} else {
		body, err = lib.ExtractAndValidateBody[structs.Step1Request](r)
	}
	if err != nil {
		handling.HandleError(err, "Invalid step 1 payload", srm.logger, w)
		return
	}

	draft, err := srm.composerService.SubmitStep1(r.Context(), sellerID, draftIDFromRequest(r), *body)
	if err != nil {
		handling.HandleError(err, "Unable to save basic info", srm.logger, w)
		return
	}

	stepSaved(w, r, draft, "/seller/add_product_description", "Basic info saved")
}

func (srm *SellerRoutesManager) SubmitStepTwo(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	var body *structs.Step2Request
	var err error
	if isFormRequest(r) {
		body, err = handling.ParseStepTwoForm(r)
	} else {
		body, err = lib.ExtractAndValidateBody[structs.Step2Request](r)
	}
	if err != nil {
		handling.HandleError(err, "Invalid step 2 payload", srm.logger, w)
		return
	}

	draft, err := srm.composerService.SubmitStep2(r.Context(), sellerID, draftIDFromRequest(r), *body)
	if err != nil {
		handling.HandleError(err, "Unable to save description", srm.logger, w)
		return
	}

	stepSaved(w, r, draft, "/seller/add_product_stocks", "Description saved")
}

// SubmitStepThree accepts the variant matrix as the indexed form fields the
// legacy authoring page posts, or a full {step1, step2, step3} JSON body for
// clients that author the whole product at once.
func (srm *SellerRoutesManager) SubmitStepThree(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	draftID := draftIDFromRequest(r)

	var draft *structs.Draft
	var err error
	if isFormRequest(r) {
		var req *structs.Step3Request
		req, err = handling.ParseStepThreeForm(r)
		if err == nil {
			draft, err = srm.composerService.SubmitStep3(r.Context(), sellerID, draftID, *req)
		}
	} else {
		var payload *structs.ComposePayload
		payload, err = lib.ExtractAndValidateBody[structs.ComposePayload](r)
		if err == nil && payload.Step1 == nil && payload.Step2 == nil && payload.Step3 == nil {
			err = lib.ValidationFailed(lib.FieldError{Field: "payload", Message: "must include at least one of step1, step2, step3"})
		}
		if err == nil {
			draft, err = srm.composerService.SubmitSections(r.Context(), sellerID, draftID, *payload)
		}
	}
	if err != nil {
		handling.HandleError(err, "Invalid step 3 payload", srm.logger, w)
		return
	}

	stepSaved(w, r, draft, "/seller/add_product_preview", "Variants saved")
}

func isFormRequest(r *http.Request) bool {
	contentType := r.Header.Get("Content-Type")
	return strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data")
}
