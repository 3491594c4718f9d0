package service

import (
	"context"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/repository"
)

// djService implements DjService.  A socials row belongs to exactly one
// profile; every write touching both runs in one transaction.
type djService struct {
	repo repository.DjRepository
	runner
}

// NewDjService creates a new DjService
func NewDjService(repo repository.DjRepository, opts Options) DjService {
	return &djService{repo: repo, runner: newRunner(opts)}
}

// CreateDj inserts the socials row first so the profile can reference it.
func (s *djService) CreateDj(ctx context.Context, req *dto.CreateDjRequest) (*model.DjProfile, error) {
	var out *model.DjProfile
	err := s.runWrite(ctx, "dj.create", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.DjRepository) error {
			d := req.Profile()
			if req.Socials != nil {
				socials := req.Socials.Socials()
				if err := tx.CreateSocials(ctx, socials); err != nil {
					return err
				}
				d.SocialID = &socials.ID
			}
			if err := tx.Create(ctx, d); err != nil {
				return err
			}
			stored, err := tx.GetByID(ctx, d.ID)
			if err != nil {
				return err
			}
			out = stored
			return nil
		})
	})
	return out, err
}

func (s *djService) GetDj(ctx context.Context, id uint64) (*model.DjProfile, error) {
	var out *model.DjProfile
	err := s.run(ctx, "dj.get", func(ctx context.Context) error {
		d, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return djErr(err, id)
		}
		out = d
		return nil
	})
	return out, err
}

func (s *djService) ListDjs(ctx context.Context, offset, limit int) ([]*model.DjProfile, error) {
	offset, limit = page(offset, limit)
	var out []*model.DjProfile
	err := s.run(ctx, "dj.list", func(ctx context.Context) error {
		items, err := s.repo.List(ctx, offset, limit)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	return out, err
}

// UpdateDj patches the linked socials row in place, or creates and links one
// when the profile has none.
func (s *djService) UpdateDj(ctx context.Context, id uint64, req *dto.UpdateDjRequest) (*model.DjProfile, error) {
	var out *model.DjProfile
	err := s.run(ctx, "dj.update", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.DjRepository) error {
			d, err := tx.GetByID(ctx, id)
			if err != nil {
				return djErr(err, id)
			}
			req.Apply(d)

			if req.Socials != nil {
				if d.Socials != nil {
					req.Socials.Apply(d.Socials)
					if err := tx.UpdateSocials(ctx, d.Socials); err != nil {
						return err
					}
				} else {
					socials := req.Socials.Socials()
					if err := tx.CreateSocials(ctx, socials); err != nil {
						return err
					}
					d.SocialID = &socials.ID
				}
			}
			if err := tx.Update(ctx, d); err != nil {
				return djErr(err, id)
			}
			stored, err := tx.GetByID(ctx, id)
			if err != nil {
				return djErr(err, id)
			}
			out = stored
			return nil
		})
	})
	return out, err
}

// DeleteDj removes the profile and then its socials row; the row goes after
// the profile because djs.social_id references it.
func (s *djService) DeleteDj(ctx context.Context, id uint64) error {
	return s.runWrite(ctx, "dj.delete", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.DjRepository) error {
			d, err := tx.GetByID(ctx, id)
			if err != nil {
				return djErr(err, id)
			}
			if err := tx.Delete(ctx, id); err != nil {
				return djErr(err, id)
			}
			if d.SocialID != nil {
				if err := tx.DeleteSocials(ctx, *d.SocialID); err != nil {
					return err
				}
			}
			return nil
		})
	})
}

func djErr(err error, id uint64) error {
	if errors.Is(err, repository.ErrDjNotFound) {
		return apperr.NotFound("DJ %d not found", id)
	}
	return err
}
