package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SergeyParamoshkin/cardfeed/internal/model"
)

var sample = []model.Article{
	{ID: "1", Title: "Atardecer en la ciudad", Description: "Un clip corto mostrando luces y movimiento."},
	{ID: "2", Title: "Cocina express", Description: "Recetas rápidas, limpias y con ritmo."},
}

func TestFilter(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"1", "2"}},
		{"   ", []string{"1", "2"}},
		{"cocina", []string{"2"}},
		{"COCINA", []string{"2"}},
		{"  Ciudad ", []string{"1"}},
		{"luces", []string{"1"}},
		{"rápidas", []string{"2"}},
		{"a", []string{"1", "2"}},
		{"zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Filter(sample, tt.query))
		})
	}
}

func TestFilterDoesNotTouchInput(t *testing.T) {
	in := append([]model.Article(nil), sample...)
	Filter(in, "cocina")
	assert.Equal(t, sample, in)
}
