package search

import (
	"fmt"

	"github.com/kailas-cloud/prodsearch/internal/domain"
	"github.com/kailas-cloud/prodsearch/internal/domain/filter"
)

// BuildFilter composes the metadata predicate from the request's optional
// constraints. All clauses are conjunctive; no constraints yield the
// unrestricted expression.
func BuildFilter(req *domain.SearchRequest) (filter.Expression, error) {
	var conditions []filter.Condition

	// Each bound is its own clause; min and max price are never merged.
	if req.MinPrice != nil {
		cond, err := filter.NewRange(domain.FieldPrice, filter.GTE(*req.MinPrice))
		if err != nil {
			return filter.Expression{}, fmt.Errorf("min price filter: %w", err)
		}
		conditions = append(conditions, cond)
	}

	if req.MaxPrice != nil {
		cond, err := filter.NewRange(domain.FieldPrice, filter.LTE(*req.MaxPrice))
		if err != nil {
			return filter.Expression{}, fmt.Errorf("max price filter: %w", err)
		}
		conditions = append(conditions, cond)
	}

	if req.MinRating != nil {
		cond, err := filter.NewRange(domain.FieldRating, filter.GTE(*req.MinRating))
		if err != nil {
			return filter.Expression{}, fmt.Errorf("rating filter: %w", err)
		}
		conditions = append(conditions, cond)
	}

	if req.CategoryID != nil {
		cond, err := filter.NewEquals(domain.FieldCategoryID, *req.CategoryID)
		if err != nil {
			return filter.Expression{}, fmt.Errorf("category filter: %w", err)
		}
		conditions = append(conditions, cond)
	}

	return filter.NewExpression(conditions...), nil
}
