package structs

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Attribute sub-keys the composition workflow writes. Anything else found in
// the blob is preserved untouched on round-trip.
const (
	AttrSubitems       = "subitems"
	AttrSizeGuides     = "size_guides"
	AttrCertifications = "certifications"
)

// Attributes is the open key→value blob stored alongside a product.
type Attributes map[string]json.RawMessage

// StringList decodes one of the known list-valued sub-keys.
func (a Attributes) StringList(key string) []string {
	raw, ok := a[key]
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}

// SetStringList replaces a list-valued sub-key; an empty list removes it.
func (a Attributes) SetStringList(key string, values []string) {
	if len(values) == 0 {
		delete(a, key)
		return
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return
	}
	a[key] = raw
}

// Value implements driver.Valuer so attributes persist as one jsonb blob.
func (a Attributes) Value() (driver.Value, error) {
	if a == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(a)
}

func (a *Attributes) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*a = nil
		return nil
	case []byte:
		return json.Unmarshal(data, a)
	case string:
		return json.Unmarshal([]byte(data), a)
	default:
		return fmt.Errorf("unsupported attributes column type %T", src)
	}
}
