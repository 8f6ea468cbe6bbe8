package qdrant

import (
	"github.com/qdrant/go-client/qdrant"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// contentField stores the composed document text alongside the metadata.
const contentField = "__content"

func buildPayload(doc domain.IndexedDocument) map[string]*qdrant.Value {
	m := doc.Metadata
	return qdrant.NewValueMap(map[string]any{
		contentField:              doc.Text,
		domain.FieldProductID:     m.ProductID,
		domain.FieldTitle:         m.Title,
		domain.FieldDescription:   m.Description,
		domain.FieldPrice:         m.Price,
		domain.FieldRating:        m.Rating,
		domain.FieldRatingCount:   m.RatingCount,
		domain.FieldCategoryID:    m.CategoryID,
		domain.FieldCategoryName:  m.CategoryName,
		domain.FieldImageURL:      m.ImageURL,
		domain.FieldASIN:          m.ASIN,
		domain.FieldSyncedAt:      m.SyncedAt,
	})
}

func parsePayload(payload map[string]*qdrant.Value) domain.Metadata {
	return domain.Metadata{
		ProductID:    payloadInt(payload, domain.FieldProductID),
		Title:        payloadString(payload, domain.FieldTitle),
		Description:  payloadString(payload, domain.FieldDescription),
		Price:        payloadFloat(payload, domain.FieldPrice),
		Rating:       payloadFloat(payload, domain.FieldRating),
		RatingCount:  payloadInt(payload, domain.FieldRatingCount),
		CategoryID:   payloadInt(payload, domain.FieldCategoryID),
		CategoryName: payloadString(payload, domain.FieldCategoryName),
		ImageURL:     payloadString(payload, domain.FieldImageURL),
		ASIN:         payloadString(payload, domain.FieldASIN),
		SyncedAt:     payloadString(payload, domain.FieldSyncedAt),
	}
}

func payloadString(payload map[string]*qdrant.Value, key string) string {
	if v, ok := payload[key]; ok {
		return v.GetStringValue()
	}
	return ""
}

func payloadInt(payload map[string]*qdrant.Value, key string) int64 {
	if v, ok := payload[key]; ok {
		return v.GetIntegerValue()
	}
	return 0
}

func payloadFloat(payload map[string]*qdrant.Value, key string) float64 {
	v, ok := payload[key]
	if !ok {
		return 0
	}
	// Whole numbers may come back as integers.
	if d := v.GetDoubleValue(); d != 0 {
		return d
	}
	return float64(v.GetIntegerValue())
}
