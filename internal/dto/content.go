package dto

import "github.com/iliyamo/azulu-crm/internal/model"

// CreateContentRequest represents the request to create a content fragment
type CreateContentRequest struct {
	Key              string   `json:"key" validate:"required,notblank,max=255"`
	StringCollection []string `json:"string_collection"`
	BigString        *string  `json:"big_string"`
}

// Content builds the row to insert.
func (r *CreateContentRequest) Content() *model.Content {
	return &model.Content{
		Key:              r.Key,
		StringCollection: nonNil(r.StringCollection),
		BigString:        r.BigString,
	}
}

// UpdateContentRequest patches the body of a fragment.  The key cannot be
// changed.
type UpdateContentRequest struct {
	StringCollection []string         `json:"string_collection"`
	BigString        Optional[string] `json:"big_string"`
}

// Apply copies every supplied field onto c; a null big_string clears it.
func (r *UpdateContentRequest) Apply(c *model.Content) {
	if r.StringCollection != nil {
		c.StringCollection = model.StringList(r.StringCollection)
	}
	r.BigString.applyTo(&c.BigString)
}
