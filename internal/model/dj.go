package model

// DjSocials holds the optional social handles of a DJ.  A socials row has no
// life of its own: it is created, patched and deleted through its profile.
type DjSocials struct {
	ID         uint64  `json:"id"`          // dj_socials.id
	Instagram  *string `json:"instagram"`   // dj_socials.instagram
	TikTok     *string `json:"tiktok"`      // dj_socials.tiktok
	Spotify    *string `json:"spotify"`     // dj_socials.spotify
	SoundCloud *string `json:"soundcloud"`  // dj_socials.soundcloud
	YouTube    *string `json:"youtube"`     // dj_socials.youtube
	AppleMusic *string `json:"apple_music"` // dj_socials.apple_music
}

// DjProfile is a performer's public identity.  SocialID, when set, always
// points at an existing dj_socials row; Socials is the loaded row.
type DjProfile struct {
	ID         uint64     `json:"id"`          // djs.id
	Alias      string     `json:"alias"`       // djs.alias
	ProfileURL string     `json:"profile_url"` // djs.profile_url
	SocialID   *uint64    `json:"social_id"`   // djs.social_id (nullable)
	Socials    *DjSocials `json:"socials"`
}
