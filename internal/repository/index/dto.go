package index

import (
	"encoding/binary"
	"math"
	"strconv"

	"github.com/kailas-cloud/prodsearch/internal/domain"
)

// Reserved hash field names alongside the metadata fields.
const (
	contentField = "__content"
	vectorField  = "__vector"
	scoreField   = "__vector_score"
)

// buildHashFields flattens a document into HSET fields. Numeric metadata
// is written in decimal form that the NUMERIC index fields parse natively;
// the filter language therefore always compares numbers.
func buildHashFields(doc domain.IndexedDocument) map[string]string {
	md := doc.Metadata
	return map[string]string{
		contentField:             doc.Text,
		vectorField:              vectorToBytes(doc.Vector),
		domain.FieldProductID:    strconv.FormatInt(md.ProductID, 10),
		domain.FieldTitle:        md.Title,
		domain.FieldDescription:  md.Description,
		domain.FieldPrice:        strconv.FormatFloat(md.Price, 'f', -1, 64),
		domain.FieldRating:       strconv.FormatFloat(md.Rating, 'f', -1, 64),
		domain.FieldRatingCount:  strconv.FormatInt(md.RatingCount, 10),
		domain.FieldCategoryID:   strconv.FormatInt(md.CategoryID, 10),
		domain.FieldCategoryName: md.CategoryName,
		domain.FieldImageURL:     md.ImageURL,
		domain.FieldASIN:         md.ASIN,
		domain.FieldSyncedAt:     md.SyncedAt,
	}
}

// parseHashFields rebuilds typed metadata from returned hash fields.
func parseHashFields(fields map[string]string) domain.Metadata {
	md := domain.Metadata{
		Title:        fields[domain.FieldTitle],
		Description:  fields[domain.FieldDescription],
		CategoryName: fields[domain.FieldCategoryName],
		ImageURL:     fields[domain.FieldImageURL],
		ASIN:         fields[domain.FieldASIN],
		SyncedAt:     fields[domain.FieldSyncedAt],
	}
	md.ProductID, _ = strconv.ParseInt(fields[domain.FieldProductID], 10, 64)
	md.Price, _ = strconv.ParseFloat(fields[domain.FieldPrice], 64)
	md.Rating, _ = strconv.ParseFloat(fields[domain.FieldRating], 64)
	md.RatingCount, _ = strconv.ParseInt(fields[domain.FieldRatingCount], 10, 64)
	md.CategoryID, _ = strconv.ParseInt(fields[domain.FieldCategoryID], 10, 64)
	return md
}

// returnFields lists the fields FT.SEARCH should return: all metadata plus
// the computed distance, excluding the raw vector blob.
func returnFields() []string {
	return []string{
		domain.FieldProductID,
		domain.FieldTitle,
		domain.FieldDescription,
		domain.FieldPrice,
		domain.FieldRating,
		domain.FieldRatingCount,
		domain.FieldCategoryID,
		domain.FieldCategoryName,
		domain.FieldImageURL,
		domain.FieldASIN,
		domain.FieldSyncedAt,
		scoreField,
	}
}

func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}
