package webflow

import (
	"strings"

	"github.com/shopspring/decimal"

	"shopchat/internal/models"
)

// Field slugs the mapper gives special treatment beyond generic option
// resolution.
const (
	fieldManufacturer = "manufacturer"
	fieldBrand        = "brand"
	fieldDefaultSKU   = "default-sku"
	fieldSKUValues    = "sku-values"
)

// OptionResolution distinguishes a resolved display name from an option id
// that is absent from the lookup table. Unresolved ids are dropped by the
// mapper, not surfaced as errors.
type OptionResolution struct {
	Name     string
	Resolved bool
}

// OptionResolver resolves (field slug, option id) pairs against the synced
// lookup table.
type OptionResolver struct {
	lookup map[string]map[string]string
}

func NewOptionResolver(entries []models.OptionLookup) *OptionResolver {
	lookup := make(map[string]map[string]string)
	for _, e := range entries {
		if lookup[e.FieldSlug] == nil {
			lookup[e.FieldSlug] = make(map[string]string)
		}
		lookup[e.FieldSlug][e.OptionID] = e.Name
	}
	return &OptionResolver{lookup: lookup}
}

func (r *OptionResolver) Resolve(fieldSlug, optionID string) OptionResolution {
	name, ok := r.lookup[fieldSlug][optionID]
	return OptionResolution{Name: name, Resolved: ok}
}

// ResolveAll resolves a list of option ids, dropping unresolved ones.
func (r *OptionResolver) ResolveAll(fieldSlug string, optionIDs []string) []string {
	var names []string
	for _, id := range optionIDs {
		if res := r.Resolve(fieldSlug, id); res.Resolved {
			names = append(names, res.Name)
		}
	}
	return names
}

// IsOptionField reports whether any lookup entries exist for the field.
func (r *OptionResolver) IsOptionField(fieldSlug string) bool {
	return len(r.lookup[fieldSlug]) > 0
}

type Transformer struct {
	catalogBaseURL string
	resolver       *OptionResolver
}

func NewTransformer(catalogBaseURL string, resolver *OptionResolver) *Transformer {
	return &Transformer{
		catalogBaseURL: strings.TrimSuffix(catalogBaseURL, "/"),
		resolver:       resolver,
	}
}

// TransformProduct converts a vendor product and its SKUs into the
// normalized product row. The raw field map and the resolved option names
// are preserved in the payload column.
func (t *Transformer) TransformProduct(item *Item) *models.Product {
	fd := item.Product.FieldData

	name, _ := fd.String("name")
	slug, _ := fd.String("slug")

	resolved := t.resolveOptions(fd)

	// Brand prefers the resolved manufacturer option over the raw field
	var brand *string
	if id, ok := fd.String(fieldManufacturer); ok {
		if res := t.resolver.Resolve(fieldManufacturer, id); res.Resolved {
			brand = &res.Name
		}
	}
	if brand == nil {
		if raw, ok := fd.String(fieldBrand); ok && raw != "" {
			brand = &raw
		}
	}

	canonical := canonicalSKU(item)

	price := NormalizePrice(fd.Price("price"))
	if price == nil {
		price = minVariantPrice(item.SKUs)
	}

	currency := "USD"
	if p := fd.Price("price"); p != nil && p.CurrencyCode() != "" {
		currency = strings.ToUpper(p.CurrencyCode())
	} else if canonical != nil {
		if p := canonical.FieldData.Price("price"); p != nil && p.CurrencyCode() != "" {
			currency = strings.ToUpper(p.CurrencyCode())
		}
	}

	url := ""
	if slug != "" {
		url = t.catalogBaseURL + "/product/" + slug
	}

	return &models.Product{
		WebflowID:        item.Product.ID,
		Slug:             slug,
		Name:             name,
		Brand:            brand,
		Price:            nullDecimal(price),
		Currency:         currency,
		Description:      optString(fd, "description"),
		ShortDescription: optString(fd, "short-description"),
		SEOTitle:         optString(fd, "seo-title"),
		SEODescription:   optString(fd, "seo-description"),
		URL:              url,
		Payload: map[string]interface{}{
			"fieldData":       fd.Raw(),
			"resolvedOptions": resolved,
		},
	}
}

// TransformVariant converts one vendor SKU into a variant row referencing
// the already-upserted parent product.
func (t *Transformer) TransformVariant(product *models.Product, sku *SKU) *models.ProductVariant {
	fd := sku.FieldData

	name, _ := fd.String("name")
	slug, _ := fd.String("slug")
	code, _ := fd.String("sku")

	price := NormalizePrice(fd.Price("price"))
	currency := product.Currency
	if p := fd.Price("price"); p != nil && p.CurrencyCode() != "" {
		currency = strings.ToUpper(p.CurrencyCode())
	}

	return &models.ProductVariant{
		WebflowSKUID:     sku.ID,
		WebflowProductID: product.WebflowID,
		ProductID:        product.ID,
		SKU:              code,
		Name:             name,
		Slug:             slug,
		Price:            nullDecimal(price),
		Currency:         currency,
		SKUValues:        fd.StringMap(fieldSKUValues),
		Payload: map[string]interface{}{
			"fieldData": fd.Raw(),
		},
	}
}

// resolveOptions maps every option-reference field in the record to its
// display name(s). A field whose ids all miss the lookup yields no entry.
func (t *Transformer) resolveOptions(fd FieldData) map[string]interface{} {
	resolved := make(map[string]interface{})
	for key := range fd {
		if !t.resolver.IsOptionField(key) {
			continue
		}
		if id, ok := fd.String(key); ok {
			if res := t.resolver.Resolve(key, id); res.Resolved {
				resolved[key] = res.Name
			}
			continue
		}
		if ids := fd.StringSlice(key); len(ids) > 0 {
			if names := t.resolver.ResolveAll(key, ids); len(names) > 0 {
				resolved[key] = names
			}
		}
	}
	return resolved
}

// canonicalSKU prefers the product's declared default SKU, then the first
// returned SKU.
func canonicalSKU(item *Item) *SKU {
	if len(item.SKUs) == 0 {
		return nil
	}
	if defaultID, ok := item.Product.FieldData.String(fieldDefaultSKU); ok {
		for i := range item.SKUs {
			if item.SKUs[i].ID == defaultID {
				return &item.SKUs[i]
			}
		}
	}
	return &item.SKUs[0]
}

func minVariantPrice(skus []SKU) *decimal.Decimal {
	var min *decimal.Decimal
	for i := range skus {
		p := NormalizePrice(skus[i].FieldData.Price("price"))
		if p == nil {
			continue
		}
		if min == nil || p.LessThan(*min) {
			min = p
		}
	}
	return min
}

func nullDecimal(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}

func optString(fd FieldData, key string) *string {
	if s, ok := fd.String(key); ok && s != "" {
		return &s
	}
	return nil
}
