package filter

import (
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// ColumnDefs returns the filterable columns of the movie table in display
// order. ratingMode selects how the rating column is matched: MatchEquals
// compares numerically, MatchContains compares the stringified rating as
// text. Any other mode falls back to MatchEquals.
func ColumnDefs(ratingMode models.MatchMode) []models.ColumnDef {
	rating := models.ColumnDef{Key: models.ColumnRating, Header: "Rating", Mode: models.MatchEquals, Kind: models.KindNumber}
	if ratingMode == models.MatchContains {
		rating.Mode = models.MatchContains
		rating.Kind = models.KindText
	}

	return []models.ColumnDef{
		{Key: models.ColumnTitle, Header: "Title", Mode: models.MatchStartsWith, Kind: models.KindText},
		{Key: models.ColumnReleaseDate, Header: "Year", Mode: models.MatchEquals, Kind: models.KindText},
		{Key: models.ColumnLength, Header: "Running Time", Mode: models.MatchEquals, Kind: models.KindText},
		{Key: models.ColumnDirector, Header: "Director", Mode: models.MatchIn, Kind: models.KindSet},
		{Key: models.ColumnCertification, Header: "Certification", Mode: models.MatchEquals, Kind: models.KindText},
		rating,
	}
}

// ParseMatchMode maps a configuration string to a MatchMode
func ParseMatchMode(s string) (models.MatchMode, bool) {
	switch s {
	case "starts_with", "STARTS_WITH":
		return models.MatchStartsWith, true
	case "equals", "EQUALS":
		return models.MatchEquals, true
	case "contains", "CONTAINS":
		return models.MatchContains, true
	case "in", "IN":
		return models.MatchIn, true
	default:
		return "", false
	}
}

// DirectorOptions returns the distinct, non-empty director names in the
// order they first appear in records.
func DirectorOptions(records []models.MovieRecord) []string {
	seen := make(map[string]struct{}, len(records))
	var options []string
	for _, r := range records {
		if r.Director == "" {
			continue
		}
		if _, ok := seen[r.Director]; ok {
			continue
		}
		seen[r.Director] = struct{}{}
		options = append(options, r.Director)
	}
	return options
}

// CertificationOptions returns the fixed certification option set as strings
func CertificationOptions() []string {
	out := make([]string, len(models.Certifications))
	for i, c := range models.Certifications {
		out[i] = string(c)
	}
	return out
}
