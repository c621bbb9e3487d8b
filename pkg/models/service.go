package models

// Category groups services by the kind of space they cover.
type Category string

const (
	CategoryBureaux     Category = "bureaux"
	CategoryResidentiel Category = "residentiel"
	CategoryPiscine     Category = "piscine"
	CategoryVitres      Category = "vitres"
	CategoryIndustriel  Category = "industriel"
	CategoryEvenement   Category = "evenement"
)

// Frequency indicates how often a service is typically performed.
type Frequency string

const (
	FrequencyPonctuel     Frequency = "ponctuel"
	FrequencyHebdomadaire Frequency = "hebdomadaire"
	FrequencyBimensuel    Frequency = "bimensuel"
	FrequencyMensuel      Frequency = "mensuel"
)

// Difficulty rates how demanding a service is to perform.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Availability describes when a service can be booked.
type Availability struct {
	IsAvailable bool     `json:"is_available" yaml:"is_available"`
	Schedule    []string `json:"schedule,omitempty" yaml:"schedule,omitempty"`
}

// ServiceRecord is a fully-normalized catalog entry. The catalog engine
// never mutates records; it only reads them.
type ServiceRecord struct {
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Description  string       `json:"description" yaml:"description"`
	Category     Category     `json:"category" yaml:"category"`
	Frequency    Frequency    `json:"frequency" yaml:"frequency"`
	Difficulty   Difficulty   `json:"difficulty" yaml:"difficulty"`
	Rating       float64      `json:"rating" yaml:"rating"`
	Reviews      int          `json:"reviews" yaml:"reviews"`
	Features     []string     `json:"features" yaml:"features"`
	Equipment    []string     `json:"equipment" yaml:"equipment"`
	Images       []string     `json:"images" yaml:"images"`
	Members      []string     `json:"members" yaml:"members"`
	Availability Availability `json:"availability" yaml:"availability"`
}

// RawServiceRecord is the shape produced by the remote record source.
// Every field beyond the identifier is optional; normalization fills
// the gaps before records enter the engine.
type RawServiceRecord struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Category     string        `json:"category"`
	Frequency    string        `json:"frequency"`
	Difficulty   string        `json:"difficulty"`
	Rating       *float64      `json:"rating"`
	Reviews      *int          `json:"reviews"`
	Features     []string      `json:"features"`
	Equipment    []string      `json:"equipment"`
	Images       []string      `json:"images"`
	Members      []string      `json:"members"`
	Availability *Availability `json:"availability"`
}
