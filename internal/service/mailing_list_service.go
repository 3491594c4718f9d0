package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/queue"
	"github.com/iliyamo/azulu-crm/internal/repository"
)

// publishTimeout bounds the best-effort event publish after a commit.
const publishTimeout = 3 * time.Second

// mailingListService implements MailingListService.  Email is unique across
// every row whatever its state, so a returning subscriber reactivates the
// old row instead of getting a new one.
type mailingListService struct {
	repo      repository.MailingListRepository
	publisher queue.Publisher
	runner
}

// NewMailingListService creates a new MailingListService.  A nil publisher
// disables lifecycle events.
func NewMailingListService(repo repository.MailingListRepository, publisher queue.Publisher, opts Options) MailingListService {
	if publisher == nil {
		publisher = queue.NopPublisher{}
	}
	return &mailingListService{repo: repo, publisher: publisher, runner: newRunner(opts)}
}

func (s *mailingListService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*model.MailingListEntry, model.SubscribeOutcome, error) {
	req.Normalize()

	var (
		out     *model.MailingListEntry
		outcome model.SubscribeOutcome
	)
	err := s.runWrite(ctx, "mailing_list.subscribe", func(ctx context.Context) error {
		return s.repo.InTx(ctx, func(tx repository.MailingListRepository) error {
			existing, err := tx.GetByEmail(ctx, req.Email)
			switch {
			case err == nil && existing.Subscribed:
				out, outcome = existing, model.SubscribeAlreadyActive
				return nil
			case err == nil:
				existing.Subscribed = true
				existing.Name = req.Name
				if err := tx.Update(ctx, existing); err != nil {
					return err
				}
				out, outcome = existing, model.SubscribeReactivated
				return nil
			case !errors.Is(err, repository.ErrEntryNotFound):
				return err
			}

			e := &model.MailingListEntry{Name: req.Name, Email: req.Email, Subscribed: true}
			if err := tx.Create(ctx, e); err != nil {
				if errors.Is(err, repository.ErrDuplicate) {
					return apperr.Conflict("This email is already subscribed")
				}
				return err
			}
			out, outcome = e, model.SubscribeCreated
			return nil
		})
	})
	if err != nil {
		return nil, 0, err
	}

	switch outcome {
	case model.SubscribeCreated:
		s.publish(ctx, queue.EventSubscribed, out)
	case model.SubscribeReactivated:
		s.publish(ctx, queue.EventResubscribed, out)
	}
	return out, outcome, nil
}

func (s *mailingListService) Unsubscribe(ctx context.Context, email string) error {
	email = dto.NormalizeEmail(email)

	var (
		entry   *model.MailingListEntry
		changed bool
	)
	err := s.run(ctx, "mailing_list.unsubscribe", func(ctx context.Context) error {
		changed = false
		return s.repo.InTx(ctx, func(tx repository.MailingListRepository) error {
			e, err := tx.GetByEmail(ctx, email)
			if err != nil {
				if errors.Is(err, repository.ErrEntryNotFound) {
					return apperr.NotFound("Email not found in mailing list")
				}
				return err
			}
			entry = e
			if !e.Subscribed {
				return nil
			}
			e.Subscribed = false
			if err := tx.Update(ctx, e); err != nil {
				return err
			}
			changed = true
			return nil
		})
	})
	if err != nil {
		return err
	}
	if changed {
		s.publish(ctx, queue.EventUnsubscribed, entry)
	}
	return nil
}

func (s *mailingListService) ListEntries(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error) {
	offset, limit = page(offset, limit)
	var out []*model.MailingListEntry
	err := s.run(ctx, "mailing_list.list", func(ctx context.Context) error {
		items, err := s.repo.List(ctx, subscribedOnly, offset, limit)
		if err != nil {
			return err
		}
		out = items
		return nil
	})
	return out, err
}

func (s *mailingListService) GetEntry(ctx context.Context, id uint64) (*model.MailingListEntry, error) {
	var out *model.MailingListEntry
	err := s.run(ctx, "mailing_list.get", func(ctx context.Context) error {
		e, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return entryErr(err, id)
		}
		out = e
		return nil
	})
	return out, err
}

func (s *mailingListService) DeleteEntry(ctx context.Context, id uint64) error {
	return s.runWrite(ctx, "mailing_list.delete", func(ctx context.Context) error {
		return entryErr(s.repo.Delete(ctx, id), id)
	})
}

// publish emits a lifecycle event after commit.  The request has already
// succeeded, so failures are only logged.
func (s *mailingListService) publish(ctx context.Context, typ queue.SubscriptionEventType, e *model.MailingListEntry) {
	pctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	ev := queue.SubscriptionEvent{
		Type:       typ,
		EntryID:    e.ID,
		Name:       e.Name,
		Email:      e.Email,
		OccurredAt: s.now().UTC(),
	}
	if err := s.publisher.Publish(pctx, ev); err != nil {
		s.log.Warn("subscription event not published",
			zap.String("type", string(typ)), zap.Uint64("entry_id", e.ID), zap.Error(err))
	}
}

func entryErr(err error, id uint64) error {
	if errors.Is(err, repository.ErrEntryNotFound) {
		return apperr.NotFound("Mailing list entry with ID %d not found", id)
	}
	return err
}
