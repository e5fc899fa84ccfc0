package api

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/burnote/internal/noteservice"
)

const maxPublicIDLen = 128

// publicIDPattern keeps a share token within one path segment of /share/{publicID}.
var publicIDPattern = regexp.MustCompile(`^[^/]+$`)

// SaveRequest is the request body for saving a note.
type SaveRequest struct {
	Content  *string `json:"content" example:"hello" validate:"required"`
	IsShare  bool    `json:"is_share,omitempty" example:"false"`
	PublicID *string `json:"public_id,omitempty" example:"tok123"`
}

// Validate checks the save request.
func (r SaveRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Content, validation.NotNil),
		validation.Field(&r.PublicID,
			validation.Length(1, maxPublicIDLen),
			validation.Match(publicIDPattern).Error("must not contain '/'"),
		),
	)
}

// SaveResponse is returned after a successful save. PublicID is set for shares.
type SaveResponse struct {
	Success  bool   `json:"success" example:"true"`
	PublicID string `json:"public_id,omitempty" example:"5f0c6a1e-3f7b-4c1e-9a59-0d2f6d9b7c11"`
}

// DeleteRequest is the request body for deleting a note.
type DeleteRequest struct {
	ID *int64 `json:"id" example:"42" validate:"required"`
}

// Validate checks the delete request.
func (r DeleteRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.NotNil),
	)
}

// SuccessResponse acknowledges a mutation.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// SummaryRequest is the request body for a summary.
type SummaryRequest struct {
	Text string `json:"text" example:"Long meeting notes..." validate:"required"`
}

// Validate checks the summary request.
func (r SummaryRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Text, validation.Required),
	)
}

// SummaryResponse carries the model output, or the unavailable sentinel.
type SummaryResponse struct {
	Summary string `json:"summary" validate:"required"`
}

// ShareResponse carries the content of a burned share.
type ShareResponse struct {
	Content string `json:"content" validate:"required"`
}

// NoteListItem is an item in a list response (aliased from the domain layer).
type NoteListItem = noteservice.NoteListItem
