package catalog

import "github.com/lustraclean/vitrine/pkg/models"

// Normalization defaults for optional raw fields. Everything downstream
// of the record store assumes a fully-populated record shape.
const (
	defaultDifficulty = models.DifficultyMedium
	defaultFrequency  = models.FrequencyPonctuel
)

// normalizeRecord converts a raw source record into a fully-populated
// ServiceRecord. Defaults: rating 0 (clamped to [0,5]), reviews 0,
// difficulty "medium", frequency "ponctuel", empty slices for features,
// equipment, images and members, and an available/no-schedule
// availability block.
func normalizeRecord(raw models.RawServiceRecord) models.ServiceRecord {
	r := models.ServiceRecord{
		ID:          raw.ID,
		Name:        raw.Name,
		Description: raw.Description,
		Category:    models.Category(raw.Category),
		Frequency:   models.Frequency(raw.Frequency),
		Difficulty:  models.Difficulty(raw.Difficulty),
		Features:    emptyIfNil(raw.Features),
		Equipment:   emptyIfNil(raw.Equipment),
		Images:      emptyIfNil(raw.Images),
		Members:     emptyIfNil(raw.Members),
	}

	if raw.Rating != nil {
		r.Rating = *raw.Rating
	}
	if r.Rating < 0 {
		r.Rating = 0
	}
	if r.Rating > 5 {
		r.Rating = 5
	}

	if raw.Reviews != nil && *raw.Reviews > 0 {
		r.Reviews = *raw.Reviews
	}

	if raw.Difficulty == "" {
		r.Difficulty = defaultDifficulty
	}
	if raw.Frequency == "" {
		r.Frequency = defaultFrequency
	}

	if raw.Availability != nil {
		r.Availability = *raw.Availability
		r.Availability.Schedule = emptyIfNil(r.Availability.Schedule)
	} else {
		r.Availability = models.Availability{IsAvailable: true, Schedule: []string{}}
	}

	return r
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
