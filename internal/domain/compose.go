package domain

import "strings"

// textSeparator joins the segments of a composed product text.
const textSeparator = " | "

// ComposeText builds the canonical searchable text for a product: title,
// description, "Category: <name>", "ASIN: <code>", in that order, joined
// with " | ". Absent fields are skipped entirely. The order is fixed:
// embedding models are sensitive to token order, and a stable composition
// makes re-indexing reproducible (same record, same text, same vector).
func ComposeText(p ProductRecord) string {
	parts := make([]string, 0, 4)

	if p.Title != "" {
		parts = append(parts, p.Title)
	}
	if p.Description != "" {
		parts = append(parts, p.Description)
	}
	if p.CategoryName != "" {
		parts = append(parts, "Category: "+p.CategoryName)
	}
	if p.ASIN != "" {
		parts = append(parts, "ASIN: "+p.ASIN)
	}

	return strings.Join(parts, textSeparator)
}
