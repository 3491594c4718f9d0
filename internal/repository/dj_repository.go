package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/model"
)

// Profiles are read together with their socials row in one LEFT JOIN; the
// socials columns are all NULL when social_id is NULL.
const djSelect = `SELECT d.id, d.alias, d.profile_url, d.social_id,
	s.id, s.instagram, s.tiktok, s.spotify, s.soundcloud, s.youtube, s.apple_music
	FROM djs d LEFT JOIN dj_socials s ON s.id = d.social_id`

// DjRepo encapsulates all database queries related to DJ profiles and their
// owned socials rows.  It never cascades on its own; the service deletes the
// socials row explicitly inside the same transaction.
type DjRepo struct {
	scope
}

// NewDjRepo constructs a DjRepo with the provided DB handle.
func NewDjRepo(db *sql.DB) *DjRepo {
	return &DjRepo{scope: newScope(db)}
}

// InTx runs fn against a copy of the repo bound to one transaction.
func (r *DjRepo) InTx(ctx context.Context, fn func(DjRepository) error) error {
	return r.begin(ctx, func(s scope) error { return fn(&DjRepo{scope: s}) })
}

// CreateSocials inserts a socials row and fills in s.ID.
func (r *DjRepo) CreateSocials(ctx context.Context, s *model.DjSocials) error {
	const q = `INSERT INTO dj_socials (instagram, tiktok, spotify, soundcloud, youtube, apple_music)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.Instagram, s.TikTok, s.Spotify, s.SoundCloud, s.YouTube, s.AppleMusic)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	return nil
}

// UpdateSocials overwrites every handle of the row identified by s.ID.
func (r *DjRepo) UpdateSocials(ctx context.Context, s *model.DjSocials) error {
	const q = `UPDATE dj_socials SET instagram = ?, tiktok = ?, spotify = ?, soundcloud = ?,
	           youtube = ?, apple_music = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q, s.Instagram, s.TikTok, s.Spotify, s.SoundCloud, s.YouTube, s.AppleMusic, s.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSocialsNotFound
	}
	return nil
}

// DeleteSocials removes a socials row.  A missing row is not an error: the
// profile delete that calls this must not fail on an already orphaned link.
func (r *DjRepo) DeleteSocials(ctx context.Context, id uint64) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM dj_socials WHERE id = ?", id)
	return err
}

// Create inserts a profile.  d.SocialID must already reference a stored
// socials row when set.
func (r *DjRepo) Create(ctx context.Context, d *model.DjProfile) error {
	const q = "INSERT INTO djs (alias, profile_url, social_id) VALUES (?, ?, ?)"
	res, err := r.db.ExecContext(ctx, q, d.Alias, d.ProfileURL, d.SocialID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	d.ID = uint64(id)
	return nil
}

// GetByID fetches a profile with its socials.  It returns ErrDjNotFound if
// no row is found.
func (r *DjRepo) GetByID(ctx context.Context, id uint64) (*model.DjProfile, error) {
	q := djSelect + " WHERE d.id = ?" + r.lock()
	d, err := scanDj(r.db.QueryRowContext(ctx, q, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDjNotFound
		}
		return nil, err
	}
	return d, nil
}

// List returns one page of profiles ordered by id.
func (r *DjRepo) List(ctx context.Context, offset, limit int) ([]*model.DjProfile, error) {
	rows, err := r.db.QueryContext(ctx, djSelect+" ORDER BY d.id LIMIT ? OFFSET ?", limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.DjProfile{}
	for rows.Next() {
		d, err := scanDj(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites alias, profile_url and social_id of the profile.
func (r *DjRepo) Update(ctx context.Context, d *model.DjProfile) error {
	const q = "UPDATE djs SET alias = ?, profile_url = ?, social_id = ? WHERE id = ?"
	res, err := r.db.ExecContext(ctx, q, d.Alias, d.ProfileURL, d.SocialID, d.ID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDjNotFound
	}
	return nil
}

// Delete removes the profile row only.
func (r *DjRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM djs WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrDjNotFound
	}
	return nil
}

func scanDj(s rowScanner) (*model.DjProfile, error) {
	var (
		d        model.DjProfile
		socials  model.DjSocials
		socialID sql.NullInt64
		joinedID sql.NullInt64
	)
	if err := s.Scan(&d.ID, &d.Alias, &d.ProfileURL, &socialID,
		&joinedID, &socials.Instagram, &socials.TikTok, &socials.Spotify,
		&socials.SoundCloud, &socials.YouTube, &socials.AppleMusic); err != nil {
		return nil, err
	}
	if socialID.Valid {
		sid := uint64(socialID.Int64)
		d.SocialID = &sid
	}
	if joinedID.Valid {
		socials.ID = uint64(joinedID.Int64)
		d.Socials = &socials
	}
	return &d, nil
}
