package services

import (
	"encoding/json"
	"fmt"
	"tindahan_server/lib"
	"tindahan_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// DraftService keeps in-progress product drafts in Redis. Drafts are keyed
// per seller and expire after the configured TTL; every save refreshes the
// clock so an active authoring session never loses work.
type DraftService struct {
	logger *gecho.Logger
	config *structs.Config
	cache  *CacheService
	locks  *lib.KeyedMutex[string]
}

func NewDraftService(logger *gecho.Logger, cfg *structs.Config, cache *CacheService) *DraftService {
	return &DraftService{
		logger: logger,
		config: cfg,
		cache:  cache,
		locks:  lib.NewKeyedMutex[string](),
	}
}

func draftKey(sellerID uuid.UUID, draftID string) string {
	return fmt.Sprintf("draft:%s:%s", sellerID.String(), draftID)
}

func committedKey(sellerID uuid.UUID, draftID string) string {
	return draftKey(sellerID, draftID) + ":committed"
}

// Lock serializes writers for one draft and returns the release function.
// Callers hold it across read-modify-write cycles so concurrent step
// submissions cannot interleave.
func (ds *DraftService) Lock(sellerID uuid.UUID, draftID string) func() {
	return ds.locks.Lock(draftKey(sellerID, draftID))
}

// Load fetches a draft. Returns nil (not an error) when no draft exists.
func (ds *DraftService) Load(sellerID uuid.UUID, draftID string) (*structs.Draft, error) {
	val, err := ds.cache.Get(draftKey(sellerID, draftID))
	if err != nil {
		return nil, lib.WrapError(lib.KindStorageUnavailable, "draft store unavailable", err)
	}
	if val == "" {
		return nil, nil
	}

	var draft structs.Draft
	if err := json.Unmarshal([]byte(val), &draft); err != nil {
		// A corrupt draft blob is unrecoverable; treat it as absent
		ds.logger.Error("Dropping corrupt draft",
			gecho.Field("seller_id", sellerID.String()),
			gecho.Field("draft_id", draftID),
			gecho.Field("error", err),
		)
		_ = ds.cache.Delete(draftKey(sellerID, draftID))
		return nil, nil
	}

	// Redis TTL handles expiry on its own clock; this covers blobs written
	// under an older, longer TTL configuration.
	if draft.Expired(ds.config.Drafts.TTL) {
		_ = ds.cache.Delete(draftKey(sellerID, draftID))
		return nil, nil
	}

	return &draft, nil
}

// Save persists a draft and refreshes its TTL
func (ds *DraftService) Save(draft *structs.Draft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return lib.WrapError(lib.KindStorageUnavailable, "failed to encode draft", err)
	}

	key := draftKey(draft.SellerID, draft.DraftID)
	if err := ds.cache.Set(key, data, ds.config.Drafts.TTL); err != nil {
		return lib.WrapError(lib.KindStorageUnavailable, "draft store unavailable", err)
	}

	return nil
}

// Delete removes a draft
func (ds *DraftService) Delete(sellerID uuid.UUID, draftID string) error {
	if err := ds.cache.Delete(draftKey(sellerID, draftID)); err != nil {
		return lib.WrapError(lib.KindStorageUnavailable, "draft store unavailable", err)
	}
	return nil
}

// MarkCommitted records the product a draft produced. The marker is written
// with SETNX so exactly one commit can ever claim a draft: losing the race
// surfaces the winner's product id as an already-committed conflict.
func (ds *DraftService) MarkCommitted(sellerID uuid.UUID, draftID string, productID uuid.UUID) error {
	key := committedKey(sellerID, draftID)
	set, err := ds.cache.SetNX(key, productID.String(), ds.config.Drafts.TTL)
	if err != nil {
		return lib.WrapError(lib.KindStorageUnavailable, "draft store unavailable", err)
	}
	if !set {
		existing, err := ds.CommittedID(sellerID, draftID)
		if err != nil {
			return err
		}
		return lib.AlreadyCommitted(existing.String())
	}
	return nil
}

// CommittedID returns the product id of a prior commit of this draft, or
// uuid.Nil when the draft has not been committed.
func (ds *DraftService) CommittedID(sellerID uuid.UUID, draftID string) (uuid.UUID, error) {
	val, err := ds.cache.Get(committedKey(sellerID, draftID))
	if err != nil {
		return uuid.Nil, lib.WrapError(lib.KindStorageUnavailable, "draft store unavailable", err)
	}
	if val == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, nil
	}
	return id, nil
}
