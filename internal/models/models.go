// package models defines the data model for the summarization client and service
package models

import (
	"time"
)

// Model defines the base interface for all persistent models.
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

// SummaryRequest is the JSON body sent to POST /summarize.
type SummaryRequest struct {
	URL string `json:"url"`
}

// SummaryResult is the JSON body of a successful summarize response.
type SummaryResult struct {
	Summary string `json:"summary"`
}

// ErrorBody is the JSON body of a failed response. Message is shown to the user verbatim.
type ErrorBody struct {
	Message string `json:"message"`
}

// Article is the readable content extracted from a web page.
type Article struct {
	URL      string
	Title    string
	Text     string
	Language string // ISO 639-1 code of the detected language, empty when unknown
}
