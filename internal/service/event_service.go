package service

import (
	"context"
	"errors"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/repository"
)

// eventService implements EventService
type eventService struct {
	repo repository.EventRepository
	runner
}

// NewEventService creates a new EventService
func NewEventService(repo repository.EventRepository, opts Options) EventService {
	return &eventService{repo: repo, runner: newRunner(opts)}
}

func (s *eventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*model.Event, error) {
	var out *model.Event
	err := s.runWrite(ctx, "event.create", func(ctx context.Context) error {
		e := req.Event()
		if err := s.repo.Create(ctx, e); err != nil {
			return err
		}
		out = e
		return nil
	})
	return out, err
}

func (s *eventService) GetEvent(ctx context.Context, id uint64) (*model.Event, error) {
	var out *model.Event
	err := s.run(ctx, "event.get", func(ctx context.Context) error {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return eventErr(err, id)
		}
		out = e
		return nil
	})
	return out, err
}

// ListEvents partitions on today's UTC date taken once per call.
func (s *eventService) ListEvents(ctx context.Context, f model.EventFilter) ([]*model.Event, error) {
	f.Offset, f.Limit = page(f.Offset, f.Limit)
	today := s.today()

	var out []*model.Event
	err := s.run(ctx, "event.list", func(ctx context.Context) error {
		items, err := s.repo.List(ctx, f, today)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	return out, err
}

func (s *eventService) UpdateEvent(ctx context.Context, id uint64, req *dto.UpdateEventRequest) (*model.Event, error) {
	var out *model.Event
	err := s.run(ctx, "event.update", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.EventRepository) error {
			e, err := tx.GetByID(ctx, id)
			if err != nil {
				return eventErr(err, id)
			}
			req.Apply(e)
			if err := tx.Update(ctx, e); err != nil {
				return eventErr(err, id)
			}
			out = e
			return nil
		})
	})
	return out, err
}

func (s *eventService) DeleteEvent(ctx context.Context, id uint64) error {
	return s.runWrite(ctx, "event.delete", func(ctx context.Context) error {
		return eventErr(s.repo.Delete(ctx, id), id)
	})
}

func eventErr(err error, id uint64) error {
	if errors.Is(err, repository.ErrEventNotFound) {
		return apperr.NotFound("Event %d not found", id)
	}
	return err
}
