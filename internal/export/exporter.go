package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rebeliceyang/lazymovies/internal/format"
	"github.com/rebeliceyang/lazymovies/internal/models"
)

// Format is an export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

// Header is the CSV header row
var Header = []string{"Title", "Year", "Running Time", "Director", "Certification", "Rating", "Cast", "Genre", "Plot"}

// ExportToCSV writes movies to a CSV file
func ExportToCSV(movies []models.MovieRecord, path string) error {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("failed to create CSV file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, m := range movies {
		row := []string{
			m.Title,
			m.ReleaseDate,
			m.Length,
			m.Director,
			m.Certification,
			format.Rating(m.Rating),
			format.List(m.Cast),
			format.List(m.Genre),
			m.Plot,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}
	return nil
}

// ExportToJSON writes movies to a JSON file as an indented array
func ExportToJSON(movies []models.MovieRecord, path string) error {
	if movies == nil {
		movies = []models.MovieRecord{}
	}

	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal movies to JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}

// Export writes movies in the given format
func Export(movies []models.MovieRecord, f Format, path string) error {
	switch f {
	case FormatCSV:
		return ExportToCSV(movies, path)
	case FormatJSON:
		return ExportToJSON(movies, path)
	default:
		return fmt.Errorf("unsupported export format %q", f)
	}
}

// ExportToDir writes movies into dir under a timestamped file name and
// returns the path written
func ExportToDir(movies []models.MovieRecord, f Format, dir string, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("movies-%s.%s", now.Format("20060102-150405"), f))
	if err := Export(movies, f, path); err != nil {
		return "", err
	}
	return path, nil
}
