package handling

import (
	"net/http"
	"tindahan_server/lib"

	"github.com/MonkyMars/gecho"
)

// HandleError maps a domain error onto the HTTP response envelope. Anything
// that is not a domain error is logged and answered with a 500.
func HandleError(err error, msg string, logger *gecho.Logger, w http.ResponseWriter) {
	domainErr, ok := lib.AsError(err)
	if !ok {
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
		return
	}

	switch domainErr.Kind {
	case lib.KindUnauthorized:
		gecho.Unauthorized(w, gecho.WithMessage(domainErr.Msg), gecho.Send())

	case lib.KindForbidden:
		gecho.Forbidden(w, gecho.WithMessage(domainErr.Msg), gecho.Send())

	case lib.KindNotFound, lib.KindNoDraft:
		gecho.NotFound(w, gecho.WithMessage(domainErr.Msg), gecho.Send())

	case lib.KindValidationFailed:
		gecho.BadRequest(w,
			gecho.WithMessage(domainErr.Msg),
			gecho.WithData(map[string]any{"fields": domainErr.Fields}),
			gecho.Send(),
		)

	case lib.KindDuplicateVariantCell,
		lib.KindInvalidColorHex,
		lib.KindMalformedVariants,
		lib.KindNegativeStock,
		lib.KindUnsupportedMediaType,
		lib.KindInvalidEncoding:
		gecho.BadRequest(w,
			gecho.WithMessage(domainErr.Msg),
			gecho.WithData(map[string]any{"kind": domainErr.Kind}),
			gecho.Send(),
		)

	case lib.KindPayloadTooLarge:
		gecho.BadRequest(w,
			gecho.WithStatus(http.StatusRequestEntityTooLarge),
			gecho.WithMessage(domainErr.Msg),
			gecho.WithData(map[string]any{"kind": domainErr.Kind}),
			gecho.Send(),
		)

	case lib.KindInUse:
		gecho.Conflict(w, gecho.WithMessage(domainErr.Msg), gecho.Send())

	case lib.KindAlreadyCommitted:
		gecho.Conflict(w,
			gecho.WithMessage(domainErr.Msg),
			gecho.WithData(map[string]any{"product_id": domainErr.ProductID}),
			gecho.Send(),
		)

	case lib.KindStorageUnavailable, lib.KindMediaFailed:
		logger.Error("Transient backend failure", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.ServiceUnavailable(w, gecho.WithMessage(domainErr.Msg), gecho.Send())

	default:
		logger.Error("An error occurred", gecho.Field("error", err), gecho.Field("msg", msg), gecho.WithCallerSkip(3))
		gecho.InternalServerError(w, gecho.WithMessage(msg), gecho.Send())
	}
}
