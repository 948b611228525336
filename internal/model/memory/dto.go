package memory

import "github.com/betimvpp/NlwSpacetimeServer/internal/validation"

var validate = validation.New()

// ------------------------------------------------------------

type ListMemoriesPayload struct{}

func (p *ListMemoriesPayload) Validate() error {
	return nil
}

// ------------------------------------------------------------

type GetMemoryPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *GetMemoryPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

// CreateMemoryPayload is the POST /memories body.
//
// Content and ConvertURL are pointers so that an absent field fails
// `required` while an empty string is accepted.
type CreateMemoryPayload struct {
	Content    *string                `json:"content" validate:"required"`
	ConvertURL *string                `json:"convertUrl" validate:"required"`
	IsPublic   validation.CoercedBool `json:"isPublic"`
}

func (p *CreateMemoryPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

// UpdateMemoryPayload is the PUT /memories/:id body. It replaces every
// mutable field, so an omitted isPublic sets the memory back to private.
type UpdateMemoryPayload struct {
	ID         string                 `param:"id" json:"-" validate:"required"`
	Content    *string                `json:"content" validate:"required"`
	ConvertURL *string                `json:"convertUrl" validate:"required"`
	IsPublic   validation.CoercedBool `json:"isPublic"`
}

func (p *UpdateMemoryPayload) Validate() error {
	return validate.Struct(p)
}

// ------------------------------------------------------------

type DeleteMemoryPayload struct {
	ID string `param:"id" json:"-" validate:"required"`
}

func (p *DeleteMemoryPayload) Validate() error {
	return validate.Struct(p)
}
