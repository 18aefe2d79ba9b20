// package models defines the data model for the lessonctl admin uploader
package models

import (
	"time"
)

// Model defines the base interface for all locally persisted models.
// Implementations include Session and Submission.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// StepRecord is one captioned step image inside a [LessonRecord].
//
// Image holds the storage path relative to the lesson folder (e.g. "steps/01.png").
type StepRecord struct {
	Frank string `json:"frank"`
	Image string `json:"image"`
}

// LessonRecord is the row shape inserted into the lessons table.
type LessonRecord struct {
	Title    string       `json:"title"`
	Slug     string       `json:"slug"`
	Category string       `json:"category"`
	Preview  string       `json:"preview"`
	Steps    []StepRecord `json:"steps"`
}

// VideoSource identifies where a curated video comes from.
type VideoSource struct {
	Platform string `json:"platform"`
	Channel  string `json:"channel"`
}

// VideoRecord is the row shape inserted into the videos table.
//
// ID is derived: join(category_key, youtube_id, format) with hyphens.
// DurationLabel is nil for shorts. Status is always "approved" at insert time.
type VideoRecord struct {
	ID                 string            `json:"id"`
	Format             string            `json:"format"`
	CategoryKey        string            `json:"category_key"`
	LanguageDependency string            `json:"language_dependency"`
	ContentLanguages   []string          `json:"content_languages"`
	Title              map[string]string `json:"title"`
	Source             VideoSource       `json:"source"`
	YouTubeID          string            `json:"youtube_id"`
	DurationLabel      *string           `json:"duration_label"`
	Status             string            `json:"status"`
}
