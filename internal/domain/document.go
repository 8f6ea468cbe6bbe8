package domain

import (
	"strconv"
	"strings"
)

// DocIDPrefix prefixes every document id in the vector index. Stripping it
// recovers the catalog product id.
const DocIDPrefix = "product_"

// DocID builds the stable index document id for a product.
func DocID(productID int64) string {
	return DocIDPrefix + strconv.FormatInt(productID, 10)
}

// ParseDocID recovers the catalog product id from an index document id.
// Returns false for ids without the expected prefix or a non-numeric
// remainder (foreign or corrupted entries).
func ParseDocID(docID string) (int64, bool) {
	rest, ok := strings.CutPrefix(docID, DocIDPrefix)
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// Metadata is the typed per-document payload stored alongside the vector.
// Numeric fields stay natively typed in every index driver so that filter
// predicates compare numbers, never string-encoded numbers.
type Metadata struct {
	ProductID    int64   `json:"product_id"`
	Title        string  `json:"title"`
	Description  string  `json:"description"`
	Price        float64 `json:"price"`
	Rating       float64 `json:"rating"`
	RatingCount  int64   `json:"ratingCount"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name"`
	ImageURL     string  `json:"imageUrl"`
	ASIN         string  `json:"asin"`
	SyncedAt     string  `json:"synced_at"`
}

// Metadata field names, shared by filter building and the index drivers.
const (
	FieldProductID    = "product_id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldPrice        = "price"
	FieldRating       = "rating"
	FieldRatingCount  = "ratingCount"
	FieldCategoryID   = "category_id"
	FieldCategoryName = "category_name"
	FieldImageURL     = "imageUrl"
	FieldASIN         = "asin"
	FieldSyncedAt     = "synced_at"
)

// IndexedDocument is one upsert unit: a stable id, the composed text, its
// embedding, and the display metadata.
type IndexedDocument struct {
	ID       string
	Text     string
	Vector   []float32
	Metadata Metadata
}

// NewIndexedDocument derives a document from a product record, its composed
// text and vector. syncedAt is an RFC3339 timestamp of the sync cycle.
func NewIndexedDocument(p ProductRecord, text string, vector []float32, syncedAt string) IndexedDocument {
	return IndexedDocument{
		ID:     DocID(p.ID),
		Text:   text,
		Vector: vector,
		Metadata: Metadata{
			ProductID:    p.ID,
			Title:        p.Title,
			Description:  p.Description,
			Price:        p.Price,
			Rating:       p.Rating,
			RatingCount:  p.RatingCount,
			CategoryID:   p.CategoryID,
			CategoryName: p.CategoryName,
			ImageURL:     p.ImageURL,
			ASIN:         p.ASIN,
			SyncedAt:     syncedAt,
		},
	}
}
