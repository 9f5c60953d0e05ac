package storeprofile

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseCatalog decodes a catalog listing body and normalizes every product
// record against the site origin in baseURL.
//
// The body must be a JSON object with a "products" array (a null value is
// treated as an empty catalog). Returns EINVALID otherwise. Records that are
// not JSON objects are skipped; a record with unusable fields keeps those
// fields nil instead of failing the catalog.
func ParseCatalog(data []byte, baseURL string) ([]*Product, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, Errorf(EINVALID, "catalog is not a JSON object: %v", err)
	}
	raw, ok := envelope["products"]
	if !ok {
		return nil, Errorf(EINVALID, "catalog has no products field")
	}

	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, Errorf(EINVALID, "catalog products is not a list: %v", err)
	}

	origin := strings.TrimSuffix(baseURL, "/")
	products := make([]*Product, 0, len(records))
	for _, rec := range records {
		record, ok := decodeRecord(rec)
		if !ok {
			continue
		}
		products = append(products, normalizeProduct(record, origin))
	}
	return products, nil
}

// decodeRecord decodes a single product record, keeping numbers as
// json.Number so identifiers and prices survive without float rounding.
func decodeRecord(data json.RawMessage) (map[string]any, bool) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var record map[string]any
	if err := dec.Decode(&record); err != nil || record == nil {
		return nil, false
	}
	return record, true
}

func normalizeProduct(record map[string]any, origin string) *Product {
	p := &Product{
		ID:       recordID(record["id"]),
		Title:    recordString(record["title"]),
		Handle:   recordString(record["handle"]),
		Variants: recordVariants(record["variants"]),
		Tags:     recordTags(record["tags"]),
		Image:    recordImage(record["images"]),
		BodyHTML: recordString(record["body_html"]),
	}
	if p.Handle != nil && *p.Handle != "" {
		p.URL = ptr(origin + "/products/" + *p.Handle)
	}
	p.PriceMin, p.PriceMax = priceRange(p.Variants)
	return p
}

func recordID(v any) *int64 {
	switch id := v.(type) {
	case json.Number:
		if n, err := id.Int64(); err == nil {
			return &n
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func recordString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

// recordVariants keeps object-shaped variants verbatim and drops the rest.
func recordVariants(v any) []map[string]any {
	items, _ := v.([]any)
	variants := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			variants = append(variants, m)
		}
	}
	return variants
}

// recordTags accepts either a comma-joined string or a list of strings.
// Split tags are trimmed and empty ones dropped.
func recordTags(v any) []string {
	tags := []string{}
	switch t := v.(type) {
	case string:
		for _, tag := range strings.Split(t, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				tags = append(tags, tag)
			}
		}
	case []any:
		for _, item := range t {
			if tag, ok := item.(string); ok {
				tags = append(tags, tag)
			}
		}
	}
	return tags
}

// recordImage picks the first image, given either as a bare URL or as an
// object carrying a "src" field.
func recordImage(v any) *string {
	images, _ := v.([]any)
	if len(images) == 0 {
		return nil
	}
	switch img := images[0].(type) {
	case string:
		return &img
	case map[string]any:
		return recordString(img["src"])
	}
	return nil
}

// priceRange returns the minimum and maximum parseable variant price.
// Null, empty and unparseable prices are ignored.
func priceRange(variants []map[string]any) (lo, hi *float64) {
	for _, v := range variants {
		price, ok := parsePrice(v["price"])
		if !ok {
			continue
		}
		if lo == nil || price < *lo {
			lo = ptr(price)
		}
		if hi == nil || price > *hi {
			hi = ptr(price)
		}
	}
	return lo, hi
}

// parsePrice reads a variant price. NaN and infinities count as
// unparseable since they cannot be ordered or encoded as JSON.
func parsePrice(v any) (float64, bool) {
	var f float64
	switch p := v.(type) {
	case json.Number:
		n, err := strconv.ParseFloat(p.String(), 64)
		if err != nil {
			return 0, false
		}
		f = n
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return 0, false
		}
		f = n
	case float64:
		f = p
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}
