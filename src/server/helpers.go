package server

import (
	"strings"

	"market-pulse/src/models"
)

// -----------------------------------------------------------------------------

// parseCategories keeps the known category names, ignoring case and duplicates.
func parseCategories(names []string) []models.MCategory {
	var out []models.MCategory
	for _, n := range names {
		cat, ok := models.ParseCategory(strings.ToLower(strings.TrimSpace(n)))
		if ok && !contains(out, cat) {
			out = append(out, cat)
		}
	}
	return out
}

// -----------------------------------------------------------------------------

// filterByCategories narrows snapshot to cats and recomputes its totals. No
// categories means no filter.
func filterByCategories(snapshot models.MSnapshotResponse, cats []models.MCategory) models.MSnapshotResponse {
	if len(cats) == 0 {
		return snapshot
	}

	records := make([]models.MMarketRecord, 0, len(snapshot.Records))
	for _, r := range snapshot.Records {
		if contains(cats, r.Category) {
			records = append(records, r)
		}
	}

	return models.MSnapshotResponse{
		MMarketSnapshot: models.NewMarketSnapshot(records, snapshot.Timestamp),
		Source:          snapshot.Source,
	}
}

// -----------------------------------------------------------------------------

func contains[T comparable](slice []T, item T) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
