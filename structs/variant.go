package structs

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"tindahan_server/lib"
)

// SizeStock is one cell of the color × size matrix.
type SizeStock struct {
	Size  string `json:"size"`
	Stock int    `json:"stock"`
}

// Variant is the canonical color row: one color with its per-size cells.
// This is the only shape that reaches storage and the catalog.
type Variant struct {
	SKU        string      `json:"sku,omitempty"`
	Color      string      `json:"color"`
	ColorHex   string      `json:"colorHex"`
	Photo      string      `json:"photo,omitempty"`
	LowStock   *int        `json:"lowStock,omitempty"`
	SizeStocks []SizeStock `json:"sizeStocks"`
}

type VariantList []Variant

// SizeInfo is the per-size projection served to product pages.
type SizeInfo struct {
	Size    string `json:"size"`
	Stock   int    `json:"stock"`
	InStock bool   `json:"in_stock"`
}

var colorHexPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// flatRow is the legacy one-row-per-size submission shape.
type flatRow struct {
	SKU      string `json:"sku"`
	Color    string `json:"color"`
	ColorHex string `json:"colorHex"`
	Size     string `json:"size"`
	Stock    int    `json:"stock"`
	LowStock *int   `json:"lowStock"`
}

// NormalizeVariants reduces any accepted inbound variant shape to the
// canonical one and validates it. Accepted shapes:
//   - canonical: [{sku, color, colorHex, photo?, lowStock?, sizeStocks: [...]}]
//   - flat rows: [{sku, color, colorHex, size, stock, lowStock}]
//   - dict-keyed: {"Red": {"M": 3, "L": 1}, ...}
//   - any of the above JSON-encoded as a string (parsed once)
//
// The result is stable: normalizing an already-canonical list is a no-op.
func NormalizeVariants(raw []byte) (VariantList, error) {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil, lib.NewError(lib.KindMalformedVariants, "empty variant payload")
	}

	if data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant payload", err)
		}
		data = bytes.TrimSpace([]byte(inner))
		if len(data) == 0 || data[0] == '"' {
			return nil, lib.NewError(lib.KindMalformedVariants, "unparsable variant payload")
		}
	}

	switch data[0] {
	case '[':
		return normalizeList(data)
	case '{':
		return normalizeDict(data)
	default:
		return nil, lib.NewError(lib.KindMalformedVariants, "unrecognized variant shape")
	}
}

func normalizeList(data []byte) (VariantList, error) {
	var rows []json.RawMessage
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant list", err)
	}

	list := make(VariantList, 0, len(rows))
	// Flat rows of the same (color, colorHex) fold into one canonical row;
	// index tracks where that row sits in list.
	index := make(map[string]int)

	for _, row := range rows {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(row, &probe); err != nil {
			return nil, lib.WrapError(lib.KindMalformedVariants, "variant row is not an object", err)
		}

		if _, isFlat := probe["size"]; isFlat {
			var fr flatRow
			if err := json.Unmarshal(row, &fr); err != nil {
				return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable flat variant row", err)
			}
			key := fr.Color + "\x00" + fr.ColorHex
			i, ok := index[key]
			if !ok {
				list = append(list, Variant{
					SKU:      fr.SKU,
					Color:    fr.Color,
					ColorHex: fr.ColorHex,
					LowStock: fr.LowStock,
				})
				i = len(list) - 1
				index[key] = i
			}
			list[i].SizeStocks = append(list[i].SizeStocks, SizeStock{Size: fr.Size, Stock: fr.Stock})
			if list[i].SKU == "" {
				list[i].SKU = fr.SKU
			}
			if list[i].LowStock == nil {
				list[i].LowStock = fr.LowStock
			}
			continue
		}

		var v Variant
		if err := json.Unmarshal(row, &v); err != nil {
			return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant row", err)
		}
		list = append(list, v)
	}

	return canonicalize(list, false)
}

// normalizeDict walks the {"color": {"size": stock}} shape with a token
// decoder so the document order of colors and sizes survives; a plain map
// would scramble first-appearance order.
func normalizeDict(data []byte) (VariantList, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var list VariantList
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant dict", err)
		}
		color, _ := tok.(string)

		v := Variant{Color: color}
		if err := expectDelim(dec, '{'); err != nil {
			return nil, err
		}
		for dec.More() {
			sizeTok, err := dec.Token()
			if err != nil {
				return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant dict", err)
			}
			size, _ := sizeTok.(string)

			numTok, err := dec.Token()
			if err != nil {
				return nil, lib.WrapError(lib.KindMalformedVariants, "unparsable variant dict", err)
			}
			num, ok := numTok.(json.Number)
			if !ok {
				return nil, lib.NewError(lib.KindMalformedVariants, fmt.Sprintf("stock for %s/%s is not a number", color, size))
			}
			stock, err := num.Int64()
			if err != nil {
				return nil, lib.WrapError(lib.KindMalformedVariants, "stock is not an integer", err)
			}
			v.SizeStocks = append(v.SizeStocks, SizeStock{Size: size, Stock: int(stock)})
		}
		if err := expectDelim(dec, '}'); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}

	// The dict shape has nowhere to carry a hex; #000000 is the documented
	// placeholder for it. A provided-but-invalid hex is still rejected.
	return canonicalize(list, true)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return lib.WrapError(lib.KindMalformedVariants, "unparsable variant dict", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return lib.NewError(lib.KindMalformedVariants, "unparsable variant dict")
	}
	return nil
}

func canonicalize(list VariantList, allowMissingHex bool) (VariantList, error) {
	seen := make(map[string]struct{})

	for i := range list {
		v := &list[i]

		v.Color = strings.TrimSpace(v.Color)
		if v.Color == "" {
			return nil, lib.NewError(lib.KindMalformedVariants, "variant color is required")
		}
		v.SKU = strings.TrimSpace(v.SKU)
		v.Photo = strings.TrimSpace(v.Photo)

		hex := strings.TrimSpace(v.ColorHex)
		switch {
		case hex == "" && allowMissingHex:
			hex = "#000000"
		case colorHexPattern.MatchString(hex):
			hex = strings.ToLower(hex)
		default:
			return nil, lib.NewError(lib.KindInvalidColorHex, fmt.Sprintf("invalid color hex %q for color %q", v.ColorHex, v.Color))
		}
		v.ColorHex = hex

		if v.LowStock != nil && *v.LowStock < 0 {
			return nil, lib.NewError(lib.KindNegativeStock, fmt.Sprintf("negative low-stock override for color %q", v.Color))
		}

		for j := range v.SizeStocks {
			cell := &v.SizeStocks[j]
			cell.Size = strings.TrimSpace(cell.Size)
			if cell.Size == "" {
				return nil, lib.NewError(lib.KindMalformedVariants, fmt.Sprintf("empty size label for color %q", v.Color))
			}
			if cell.Stock < 0 {
				return nil, lib.NewError(lib.KindNegativeStock, fmt.Sprintf("negative stock for %s/%s", v.Color, cell.Size))
			}
			key := v.Color + "\x00" + cell.Size
			if _, dup := seen[key]; dup {
				return nil, lib.NewError(lib.KindDuplicateVariantCell, fmt.Sprintf("duplicate cell %s/%s", v.Color, cell.Size))
			}
			seen[key] = struct{}{}
		}
	}

	return list, nil
}

// Colors returns the distinct color names in first-appearance order.
func (vl VariantList) Colors() []string {
	seen := make(map[string]struct{}, len(vl))
	colors := make([]string, 0, len(vl))
	for _, v := range vl {
		if _, ok := seen[v.Color]; ok {
			continue
		}
		seen[v.Color] = struct{}{}
		colors = append(colors, v.Color)
	}
	return colors
}

// TotalStock sums every cell across every color row.
func (vl VariantList) TotalStock() int {
	total := 0
	for _, v := range vl {
		for _, c := range v.SizeStocks {
			total += c.Stock
		}
	}
	return total
}

// SizesFor returns the size cells of a color in canonical display order.
func (vl VariantList) SizesFor(color string) []SizeInfo {
	var infos []SizeInfo
	for _, v := range vl {
		if v.Color != color {
			continue
		}
		for _, c := range v.SizeStocks {
			infos = append(infos, SizeInfo{Size: c.Size, Stock: c.Stock, InStock: c.Stock > 0})
		}
	}
	SortSizeInfos(infos)
	return infos
}

// HexFor returns the hex of a color's first row, or "" if the color is unknown.
func (vl VariantList) HexFor(color string) string {
	for _, v := range vl {
		if v.Color == color {
			return v.ColorHex
		}
	}
	return ""
}

// PhotoFor returns the first per-color photo set for the color, or "".
func (vl VariantList) PhotoFor(color string) string {
	for _, v := range vl {
		if v.Color == color && v.Photo != "" {
			return v.Photo
		}
	}
	return ""
}

// InStock reports whether any cell of the color has stock.
func (vl VariantList) InStock(color string) bool {
	for _, v := range vl {
		if v.Color != color {
			continue
		}
		for _, c := range v.SizeStocks {
			if c.Stock > 0 {
				return true
			}
		}
	}
	return false
}

// StockLevel buckets a stock figure against a low-stock threshold.
type StockLevel string

const (
	StockOut StockLevel = "out"
	StockLow StockLevel = "low"
	StockOK  StockLevel = "ok"
)

func LevelForStock(stock, threshold int) StockLevel {
	switch {
	case stock <= 0:
		return StockOut
	case stock <= threshold:
		return StockLow
	default:
		return StockOK
	}
}

// Value implements driver.Valuer so the list persists as one jsonb blob.
func (vl VariantList) Value() (driver.Value, error) {
	if vl == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(vl)
}

func (vl *VariantList) Scan(src any) error {
	switch data := src.(type) {
	case nil:
		*vl = nil
		return nil
	case []byte:
		return json.Unmarshal(data, vl)
	case string:
		return json.Unmarshal([]byte(data), vl)
	default:
		return fmt.Errorf("unsupported variant column type %T", src)
	}
}
