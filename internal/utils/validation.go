package utils

import (
	"errors"
)

// sortColumns maps the public sort fields to their database columns.
// Anything else is rejected before the store is touched.
var sortColumns = map[string]string{
	"dueDate":    "due_date",
	"totalScore": "total_score",
}

var ErrInvalidSortField = errors.New("Invalid sortBy parameter. Use 'dueDate' or 'totalScore'.")

// ValidateSortParams checks the sortBy/sortOrder query parameters and
// returns the column to order by. An empty sortBy means store-defined
// order. Any sortOrder other than "desc" sorts ascending.
func ValidateSortParams(sortBy string, sortOrder string) (string, bool, error) {
	if sortBy == "" {
		return "", false, nil
	}

	column, ok := sortColumns[sortBy]
	if !ok {
		return "", false, ErrInvalidSortField
	}

	return column, sortOrder == "desc", nil
}
