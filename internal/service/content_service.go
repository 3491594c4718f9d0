package service

import (
	"context"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/repository"
)

// contentService implements ContentService.  Keys are create-once: a second
// create with the same key is a conflict, never an upsert.
type contentService struct {
	repo repository.ContentRepository
	runner
}

// NewContentService creates a new ContentService
func NewContentService(repo repository.ContentRepository, opts Options) ContentService {
	return &contentService{repo: repo, runner: newRunner(opts)}
}

func (s *contentService) CreateContent(ctx context.Context, req *dto.CreateContentRequest) (*model.Content, error) {
	var out *model.Content
	err := s.runWrite(ctx, "content.create", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.ContentRepository) error {
			_, err := tx.GetByKey(ctx, req.Key)
			switch {
			case err == nil:
				return contentExists(req.Key)
			case !errors.Is(err, repository.ErrContentNotFound):
				return err
			}
			c := req.Content()
			if err := tx.Create(ctx, c); err != nil {
				// a concurrent create won the race on the unique key
				if errors.Is(err, repository.ErrDuplicate) {
					return contentExists(req.Key)
				}
				return err
			}
			out = c
			return nil
		})
	})
	return out, err
}

func (s *contentService) GetContent(ctx context.Context, key string) (*model.Content, error) {
	var out *model.Content
	err := s.run(ctx, "content.get", func(ctx context.Context) error {
		c, err := s.repo.GetByKey(ctx, key)
		if err != nil {
			return contentErr(err, key)
		}
		out = c
		return nil
	})
	return out, err
}

func (s *contentService) ListContent(ctx context.Context, offset, limit int) ([]*model.Content, error) {
	offset, limit = page(offset, limit)
	var out []*model.Content
	err := s.run(ctx, "content.list", func(ctx context.Context) error {
		items, err := s.repo.List(ctx, offset, limit)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	return out, err
}

func (s *contentService) UpdateContent(ctx context.Context, key string, req *dto.UpdateContentRequest) (*model.Content, error) {
	var out *model.Content
	err := s.run(ctx, "content.update", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.ContentRepository) error {
			c, err := tx.GetByKey(ctx, key)
			if err != nil {
				return contentErr(err, key)
			}
			req.Apply(c)
			if err := tx.Update(ctx, c); err != nil {
				return contentErr(err, key)
			}
			out = c
			return nil
		})
	})
	return out, err
}

func (s *contentService) DeleteContent(ctx context.Context, key string) error {
	return s.runWrite(ctx, "content.delete", func(ctx context.Context) error {
		return contentErr(s.repo.DeleteByKey(ctx, key), key)
	})
}

func contentExists(key string) error {
	return apperr.Conflict("Content with key '%s' already exists", key)
}

func contentErr(err error, key string) error {
	if errors.Is(err, repository.ErrContentNotFound) {
		return apperr.NotFound("Content with key '%s' not found", key)
	}
	return err
}
