package webflow

import (
	"encoding/json"
)

// Item is one product together with its SKUs, as returned by the
// e-commerce endpoints.
type Item struct {
	Product ProductData `json:"product"`
	SKUs    []SKU       `json:"skus"`
}

type ProductData struct {
	ID            string    `json:"id"`
	LastPublished string    `json:"lastPublished"`
	LastUpdated   string    `json:"lastUpdated"`
	FieldData     FieldData `json:"fieldData"`
}

type SKU struct {
	ID        string    `json:"id"`
	FieldData FieldData `json:"fieldData"`
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
	Total  int `json:"total"`
}

// ProductsResponse represents one page of the product listing.
type ProductsResponse struct {
	Items      []Item     `json:"items"`
	Pagination Pagination `json:"pagination"`
}

// Collection describes a CMS collection's field schema.
type Collection struct {
	ID     string  `json:"id"`
	Slug   string  `json:"slug"`
	Fields []Field `json:"fields"`
}

type Field struct {
	ID          string            `json:"id"`
	Slug        string            `json:"slug"`
	DisplayName string            `json:"displayName"`
	Type        string            `json:"type"`
	Validations *FieldValidations `json:"validations"`
}

type FieldValidations struct {
	Options []Option `json:"options"`
}

type Option struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IsOption reports whether the field's stored values are references into a
// finite enumerated set of choices.
func (f *Field) IsOption() bool {
	return f.Type == "Option" || f.Type == "MultiOption"
}

// Price is the vendor's minor-unit price representation.
type Price struct {
	Value    interface{} `json:"value"`
	Unit     string      `json:"unit"`
	Currency string      `json:"currency"`
}

// CurrencyCode returns the unit code, falling back to the currency field.
func (p *Price) CurrencyCode() string {
	if p.Unit != "" {
		return p.Unit
	}
	return p.Currency
}

// FieldData is the vendor's loosely-typed key/value field map. Values are
// kept raw and decoded through the typed accessors below so the mapping
// boundary never passes a blind dynamic dictionary around.
type FieldData map[string]json.RawMessage

// String returns the field's value if it is a JSON string.
func (f FieldData) String(key string) (string, bool) {
	raw, ok := f[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

// StringSlice returns the field's value as a list of strings. A single
// string value yields a one-element list.
func (f FieldData) StringSlice(key string) []string {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []string{s}
	}
	return nil
}

// Price decodes the field as a minor-unit price, or nil if absent or
// malformed.
func (f FieldData) Price(key string) *Price {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var p Price
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// StringMap decodes the field as a string-to-string map (e.g. sku-values:
// option-slot id -> selected option id).
func (f FieldData) StringMap(key string) map[string]string {
	raw, ok := f[key]
	if !ok {
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// Raw decodes the entire field map into plain values, for payload
// preservation.
func (f FieldData) Raw() map[string]interface{} {
	out := make(map[string]interface{}, len(f))
	for k, raw := range f {
		var v interface{}
		if err := json.Unmarshal(raw, &v); err != nil {
			continue
		}
		out[k] = v
	}
	return out
}
