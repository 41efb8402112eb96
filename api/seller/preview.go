package seller

import (
	"net/http"
	"tindahan_server/api/health"
	"tindahan_server/handling"
	"tindahan_server/lib"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/prometheus/client_golang/prometheus"
)

func (srm *SellerRoutesManager) PreviewDraft(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	preview, err := srm.composerService.Preview(r.Context(), sellerID, draftIDFromRequest(r))
	if err != nil {
		handling.HandleError(err, "Unable to build preview", srm.logger, w)
		return
	}

	gecho.Success(w,
		gecho.WithData(preview),
		gecho.Send(),
	)
}

// CommitDraft turns the draft into an active product. The commit body may
// carry {step1, step2, step3} overrides for the stored sections. Browser
// form posts get a redirect to the product list; API clients get JSON.
func (srm *SellerRoutesManager) CommitDraft(w http.ResponseWriter, r *http.Request) {
	sellerID, ok := sellerFromRequest(w, r)
	if !ok {
		return
	}

	var payload *structs.ComposePayload
	if r.ContentLength != 0 {
		body, err := lib.ExtractAndValidateBody[structs.ComposePayload](r)
		if err != nil {
			handling.HandleError(err, "Invalid commit payload", srm.logger, w)
			return
		}
		payload = body
	}

	product, err := srm.composerService.Commit(r.Context(), sellerID, draftIDFromRequest(r), payload)
	if err != nil {
		outcome := "error"
		if lib.IsKind(err, lib.KindAlreadyCommitted) {
			outcome = "duplicate"
		} else if lib.IsKind(err, lib.KindValidationFailed) || lib.IsKind(err, lib.KindNoDraft) {
			outcome = "rejected"
		}
		health.ProductCommits.With(prometheus.Labels{"outcome": outcome}).Inc()

		handling.HandleError(err, "Unable to commit product", srm.logger, w)
		return
	}

	health.ProductCommits.With(prometheus.Labels{"outcome": "committed"}).Inc()

	if !wantsJSON(r) {
		http.Redirect(w, r, "/seller/products", http.StatusSeeOther)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{"ok": true, "id": product.ID}),
		gecho.WithMessage("Product committed"),
		gecho.Send(),
	)
}
