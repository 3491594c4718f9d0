package dto

import "github.com/iliyamo/azulu-crm/internal/model"

// SocialsRequest carries the optional social handles of a DJ.  It is used
// both for creation and as a patch of an existing socials row.
type SocialsRequest struct {
	Instagram  Optional[string] `json:"instagram" validate:"omitempty,max=255"`
	TikTok     Optional[string] `json:"tiktok" validate:"omitempty,max=255"`
	Spotify    Optional[string] `json:"spotify" validate:"omitempty,max=255"`
	SoundCloud Optional[string] `json:"soundcloud" validate:"omitempty,max=255"`
	YouTube    Optional[string] `json:"youtube" validate:"omitempty,max=255"`
	AppleMusic Optional[string] `json:"apple_music" validate:"omitempty,max=255"`
}

// Socials builds a new socials row from the request.
func (r *SocialsRequest) Socials() *model.DjSocials {
	s := &model.DjSocials{}
	r.Apply(s)
	return s
}

// Apply copies every supplied handle onto s; null clears a handle.
func (r *SocialsRequest) Apply(s *model.DjSocials) {
	r.Instagram.applyTo(&s.Instagram)
	r.TikTok.applyTo(&s.TikTok)
	r.Spotify.applyTo(&s.Spotify)
	r.SoundCloud.applyTo(&s.SoundCloud)
	r.YouTube.applyTo(&s.YouTube)
	r.AppleMusic.applyTo(&s.AppleMusic)
}

// CreateDjRequest represents the request to create a DJ profile
type CreateDjRequest struct {
	Alias      string          `json:"alias" validate:"required,notblank,max=255"`
	ProfileURL string          `json:"profile_url" validate:"required,notblank,max=255"`
	Socials    *SocialsRequest `json:"socials"`
}

// Profile builds the profile row without its socials link.
func (r *CreateDjRequest) Profile() *model.DjProfile {
	return &model.DjProfile{Alias: r.Alias, ProfileURL: r.ProfileURL}
}

// UpdateDjRequest represents a partial update of a DJ profile.  Socials, when
// present, patches the linked socials row or creates one.
type UpdateDjRequest struct {
	Alias      *string         `json:"alias" validate:"omitempty,min=1,notblank,max=255"`
	ProfileURL *string         `json:"profile_url" validate:"omitempty,min=1,notblank,max=255"`
	Socials    *SocialsRequest `json:"socials"`
}

// Apply copies the supplied top-level fields onto d.  Socials are handled by
// the service because they may need a new row.
func (r *UpdateDjRequest) Apply(d *model.DjProfile) {
	if r.Alias != nil {
		d.Alias = *r.Alias
	}
	if r.ProfileURL != nil {
		d.ProfileURL = *r.ProfileURL
	}
}
