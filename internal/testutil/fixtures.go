package testutil

import (
	"github.com/google/uuid"

	"github.com/lustraclean/vitrine/pkg/models"
)

// NewService returns a ServiceRecord with sensible defaults, suitable for
// test fixtures. Override individual fields via options as needed.
func NewService(opts ...func(*models.ServiceRecord)) models.ServiceRecord {
	r := models.ServiceRecord{
		ID:          uuid.New().String(),
		Name:        "Nettoyage de bureaux",
		Description: "Entretien des espaces de travail",
		Category:    models.CategoryBureaux,
		Frequency:   models.FrequencyHebdomadaire,
		Difficulty:  models.DifficultyEasy,
		Rating:      4.5,
		Reviews:     25,
		Features:    []string{"Depoussierage", "Desinfection"},
		Equipment:   []string{"Aspirateur"},
		Images:      []string{},
		Members:     []string{},
		Availability: models.Availability{
			IsAvailable: true,
			Schedule:    []string{"lun-ven"},
		},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// WithName sets the service name.
func WithName(name string) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Name = name }
}

// WithCategory sets the service category.
func WithCategory(c models.Category) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Category = c }
}

// WithFrequency sets the service frequency.
func WithFrequency(f models.Frequency) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Frequency = f }
}

// WithDifficulty sets the service difficulty.
func WithDifficulty(d models.Difficulty) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Difficulty = d }
}

// WithReviews sets the review count.
func WithReviews(n int) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Reviews = n }
}

// WithFeatures sets the feature list.
func WithFeatures(features ...string) func(*models.ServiceRecord) {
	return func(r *models.ServiceRecord) { r.Features = features }
}

// RawService converts a ServiceRecord into the raw source shape, for
// stubbing remote fetches.
func RawService(r models.ServiceRecord) models.RawServiceRecord {
	rating := r.Rating
	reviews := r.Reviews
	availability := r.Availability
	return models.RawServiceRecord{
		ID:           r.ID,
		Name:         r.Name,
		Description:  r.Description,
		Category:     string(r.Category),
		Frequency:    string(r.Frequency),
		Difficulty:   string(r.Difficulty),
		Rating:       &rating,
		Reviews:      &reviews,
		Features:     r.Features,
		Equipment:    r.Equipment,
		Images:       r.Images,
		Members:      r.Members,
		Availability: &availability,
	}
}
