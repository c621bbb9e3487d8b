// Package catalog implements the service catalog state engine: loading
// records (cache, remote source, or fallback), applying filter specs,
// and keeping the active selection consistent for the presentation layer.
package catalog

import (
	"strings"

	"github.com/lustraclean/vitrine/pkg/models"
)

// All is the unconstrained value for enum-like filter fields.
const All = "all"

// FilterSpec is the set of user-selected constraints applied to the
// record collection. The zero value matches everything.
type FilterSpec struct {
	Category       string `json:"category"`
	Frequency      string `json:"frequency"`
	Difficulty     string `json:"difficulty"`
	MinimumReviews int    `json:"minimum_reviews"`
	SearchText     string `json:"search_text"`
}

// Known enum values per field. Unrecognized values normalize to All
// rather than silently matching nothing.
var (
	knownCategories = map[string]bool{
		string(models.CategoryBureaux):     true,
		string(models.CategoryResidentiel): true,
		string(models.CategoryPiscine):     true,
		string(models.CategoryVitres):      true,
		string(models.CategoryIndustriel):  true,
		string(models.CategoryEvenement):   true,
	}
	knownFrequencies = map[string]bool{
		string(models.FrequencyPonctuel):     true,
		string(models.FrequencyHebdomadaire): true,
		string(models.FrequencyBimensuel):    true,
		string(models.FrequencyMensuel):      true,
	}
	knownDifficulties = map[string]bool{
		string(models.DifficultyEasy):   true,
		string(models.DifficultyMedium): true,
		string(models.DifficultyHard):   true,
	}
)

// Normalize returns a copy of the spec with malformed fields reduced to
// their unconstrained defaults. Two normalized specs are comparable with
// ==; that equality drives the index-reset decision on refresh.
func (s FilterSpec) Normalize() FilterSpec {
	s.Category = normalizeEnum(s.Category, knownCategories)
	s.Frequency = normalizeEnum(s.Frequency, knownFrequencies)
	s.Difficulty = normalizeEnum(s.Difficulty, knownDifficulties)
	if s.MinimumReviews < 0 {
		s.MinimumReviews = 0
	}
	s.SearchText = strings.TrimSpace(s.SearchText)
	return s
}

func normalizeEnum(value string, known map[string]bool) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == All || !known[value] {
		return All
	}
	return value
}

// Filter returns the records matching spec, preserving input order.
// It is pure: the input slice is never modified and a new slice is
// always returned, even for the identity spec.
func Filter(records []models.ServiceRecord, spec FilterSpec) []models.ServiceRecord {
	spec = spec.Normalize()
	search := strings.ToLower(spec.SearchText)

	result := make([]models.ServiceRecord, 0, len(records))
	for i := range records {
		if matches(&records[i], spec, search) {
			result = append(result, records[i])
		}
	}
	return result
}

// matches reports whether a single record passes every constraint.
func matches(r *models.ServiceRecord, spec FilterSpec, search string) bool {
	if spec.Category != All && spec.Category != string(r.Category) {
		return false
	}
	if spec.Frequency != All && spec.Frequency != string(r.Frequency) {
		return false
	}
	if spec.Difficulty != All && spec.Difficulty != string(r.Difficulty) {
		return false
	}
	if spec.MinimumReviews > r.Reviews {
		return false
	}
	if search != "" && !searchable(r, search) {
		return false
	}
	return true
}

// searchable reports whether the search term appears (case-insensitively)
// in the record's name, description, or any feature.
func searchable(r *models.ServiceRecord, search string) bool {
	if strings.Contains(strings.ToLower(r.Name), search) {
		return true
	}
	if strings.Contains(strings.ToLower(r.Description), search) {
		return true
	}
	for _, f := range r.Features {
		if strings.Contains(strings.ToLower(f), search) {
			return true
		}
	}
	return false
}
