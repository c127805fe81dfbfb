package models

import (
	"bytes"
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"
)

// Certification is the rating board classification of a movie
type Certification string

const (
	CertGeneral         Certification = "General"
	Cert14Accompaniment Certification = "14 Accompaniment"
	CertCAPG            Certification = "CA-PG"
)

// Certifications is the fixed option set offered by the certification filter
var Certifications = []Certification{CertGeneral, Cert14Accompaniment, CertCAPG}

// MovieRecord is a single movie as returned by the remote source.
// Records are treated as immutable once fetched.
type MovieRecord struct {
	Title         string   `json:"title" yaml:"title"`
	ReleaseDate   string   `json:"releaseDate" yaml:"release_date"`
	Length        string   `json:"length" yaml:"length"`
	Director      string   `json:"director" yaml:"director"`
	Certification string   `json:"certification" yaml:"certification"`
	Rating        float64  `json:"rating" yaml:"rating"`
	Cast          []string `json:"cast" yaml:"cast"`
	Genre         []string `json:"genre" yaml:"genre"`
	Plot          string   `json:"plot" yaml:"plot"`
}

// UnmarshalJSON accepts releaseDate and length as either strings or numbers,
// and rating as either a number or a numeric string.
func (m *MovieRecord) UnmarshalJSON(data []byte) error {
	var wire struct {
		Title         string          `json:"title"`
		ReleaseDate   json.RawMessage `json:"releaseDate"`
		Length        json.RawMessage `json:"length"`
		Director      string          `json:"director"`
		Certification string          `json:"certification"`
		Rating        json.RawMessage `json:"rating"`
		Cast          []string        `json:"cast"`
		Genre         []string        `json:"genre"`
		Plot          string          `json:"plot"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	releaseDate, err := scalarString(wire.ReleaseDate)
	if err != nil {
		return fmt.Errorf("releaseDate: %w", err)
	}
	length, err := scalarString(wire.Length)
	if err != nil {
		return fmt.Errorf("length: %w", err)
	}
	rating, err := scalarFloat(wire.Rating)
	if err != nil {
		return fmt.Errorf("rating: %w", err)
	}

	*m = MovieRecord{
		Title:         wire.Title,
		ReleaseDate:   releaseDate,
		Length:        length,
		Director:      wire.Director,
		Certification: wire.Certification,
		Rating:        rating,
		Cast:          wire.Cast,
		Genre:         wire.Genre,
		Plot:          wire.Plot,
	}
	return nil
}

// scalarString renders a JSON string or number as a Go string.
// null and absent values become "".
func scalarString(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	if _, err := strconv.ParseFloat(string(raw), 64); err != nil {
		return "", fmt.Errorf("expected string or number, got %s", raw)
	}
	return string(raw), nil
}

func scalarFloat(raw json.RawMessage) (float64, error) {
	s, err := scalarString(raw)
	if err != nil || s == "" {
		return 0, err
	}
	return strconv.ParseFloat(s, 64)
}

// Field returns the value of a filterable column: float64 for rating,
// string for everything else. Unknown columns return nil.
func (m MovieRecord) Field(column ColumnKey) any {
	switch column {
	case ColumnTitle:
		return m.Title
	case ColumnReleaseDate:
		return m.ReleaseDate
	case ColumnLength:
		return m.Length
	case ColumnDirector:
		return m.Director
	case ColumnCertification:
		return m.Certification
	case ColumnRating:
		return m.Rating
	default:
		return nil
	}
}

// SameMovie reports whether two records describe the same movie
func (m MovieRecord) SameMovie(other MovieRecord) bool {
	return m.Title == other.Title && m.ReleaseDate == other.ReleaseDate && m.Director == other.Director
}
