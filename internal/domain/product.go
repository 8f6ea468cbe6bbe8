package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ProductRecord is an immutable snapshot of a catalog product for one sync
// cycle. The catalog service owns the source of truth.
type ProductRecord struct {
	ID           int64
	Title        string
	Description  string
	CategoryID   int64
	CategoryName string
	Price        float64
	Rating       float64
	RatingCount  int64
	ImageURL     string
	ASIN         string
}

// HasID reports whether the record carries a usable external identifier.
func (p ProductRecord) HasID() bool { return p.ID > 0 }

// ProductFromWire normalizes a loose inbound product mapping into a
// ProductRecord. The wire format is untrusted: ids arrive as numbers or
// strings, the category as a nested object ({"id": 3, "nom": "..."}), and
// field names follow the catalog service's conventions. Validation and
// coercion happen once, here, never downstream.
func ProductFromWire(m map[string]any) ProductRecord {
	p := ProductRecord{
		ID:          wireInt(m["id"]),
		Title:       wireString(m["title"]),
		Description: wireString(m["description"]),
		Price:       wireFloat(m["price"]),
		Rating:      wireFloat(m["rating"]),
		RatingCount: wireInt(m["ratingCount"]),
		ImageURL:    wireString(m["imageUrl"]),
		ASIN:        wireString(m["asin"]),
	}

	cat, ok := m["categorie"].(map[string]any)
	if !ok {
		cat, _ = m["category"].(map[string]any)
	}
	if cat != nil {
		p.CategoryID = wireInt(cat["id"])
		p.CategoryName = wireString(cat["nom"])
		if p.CategoryName == "" {
			p.CategoryName = wireString(cat["name"])
		}
	}

	if p.Price < 0 {
		p.Price = 0
	}
	if p.Rating < 0 {
		p.Rating = 0
	} else if p.Rating > 5 {
		p.Rating = 5
	}
	if p.RatingCount < 0 {
		p.RatingCount = 0
	}

	return p
}

func wireString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

func wireFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case json.Number:
		f, _ := n.Float64()
		return f
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func wireInt(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			f, _ := n.Float64()
			return int64(f)
		}
		return i
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0
		}
		return i
	}
	return 0
}

// String implements fmt.Stringer for log output.
func (p ProductRecord) String() string {
	return fmt.Sprintf("product %d %q", p.ID, p.Title)
}
