package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMovieRecord_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    MovieRecord
		wantErr bool
	}{
		{
			name:  "strings",
			input: `{"title":"Lucy","releaseDate":"2014","length":"89","director":"Luc Besson","certification":"14 Accompaniment","rating":3.5,"cast":["Scarlett Johansson"],"genre":["Action"],"plot":"A woman..."}`,
			want: MovieRecord{
				Title: "Lucy", ReleaseDate: "2014", Length: "89", Director: "Luc Besson",
				Certification: "14 Accompaniment", Rating: 3.5,
				Cast: []string{"Scarlett Johansson"}, Genre: []string{"Action"}, Plot: "A woman...",
			},
		},
		{
			name:  "numbers",
			input: `{"title":"Lucy","releaseDate":2014,"length":89,"rating":"3.5"}`,
			want:  MovieRecord{Title: "Lucy", ReleaseDate: "2014", Length: "89", Rating: 3.5},
		},
		{
			name:  "nulls and missing fields",
			input: `{"title":"Lucy","releaseDate":null,"rating":null}`,
			want:  MovieRecord{Title: "Lucy"},
		},
		{
			name:    "object where a scalar is expected",
			input:   `{"title":"Lucy","length":{"minutes":89}}`,
			wantErr: true,
		},
		{
			name:    "rating not numeric",
			input:   `{"title":"Lucy","rating":"great"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got MovieRecord
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMovieRecord_Field(t *testing.T) {
	m := MovieRecord{Title: "Lucy", ReleaseDate: "2014", Length: "89", Director: "Luc Besson", Certification: "CA-PG", Rating: 3.5}

	assert.Equal(t, "Lucy", m.Field(ColumnTitle))
	assert.Equal(t, "2014", m.Field(ColumnReleaseDate))
	assert.Equal(t, "89", m.Field(ColumnLength))
	assert.Equal(t, "Luc Besson", m.Field(ColumnDirector))
	assert.Equal(t, "CA-PG", m.Field(ColumnCertification))
	assert.Equal(t, 3.5, m.Field(ColumnRating))
	assert.Nil(t, m.Field("plot"))
}

func TestMovieRecord_SameMovie(t *testing.T) {
	a := MovieRecord{Title: "Lucy", ReleaseDate: "2014", Director: "Luc Besson", Rating: 3.5}
	b := a
	b.Rating = 4

	assert.True(t, a.SameMovie(b))

	b.ReleaseDate = "2015"
	assert.False(t, a.SameMovie(b))
}
