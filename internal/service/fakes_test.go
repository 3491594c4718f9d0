package service

import (
	"context"
	"sort"
	"time"

	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/iliyamo/azulu-crm/internal/model"
	"github.com/iliyamo/azulu-crm/internal/queue"
	"github.com/iliyamo/azulu-crm/internal/repository"
	"github.com/iliyamo/azulu-crm/internal/retry"
)

var fixedNow = time.Date(2026, 10, 16, 15, 4, 5, 0, time.UTC)

func testOptions() Options {
	return Options{
		Retrier: retry.New(&retry.Config{
			MaxRetries:      3,
			InitialInterval: time.Millisecond,
			MaxInterval:     time.Millisecond,
			Multiplier:      1,
		}),
		Logger: zap.NewNop(),
		Now:    func() time.Time { return fixedNow },
	}
}

// faults hands out injected errors, one per repository call.
type faults struct {
	errs  []error
	calls int
}

func (f *faults) next() error {
	f.calls++
	if len(f.errs) == 0 {
		return nil
	}
	err := f.errs[0]
	f.errs = f.errs[1:]
	return err
}

func copyMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

// --- events ---

type fakeEventRepo struct {
	faults
	rows   map[uint64]model.Event
	nextID uint64
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{rows: map[uint64]model.Event{}}
}

func (f *fakeEventRepo) InTx(ctx context.Context, fn func(repository.EventRepository) error) error {
	snap, id := copyMap(f.rows), f.nextID
	if err := fn(f); err != nil {
		f.rows, f.nextID = snap, id
		return err
	}
	return nil
}

func (f *fakeEventRepo) Create(ctx context.Context, e *model.Event) error {
	if err := f.next(); err != nil {
		return err
	}
	f.nextID++
	e.ID = f.nextID
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	e, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	return &e, nil
}

func (f *fakeEventRepo) List(ctx context.Context, filter model.EventFilter, today model.Date) ([]*model.Event, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	var out []*model.Event
	for _, e := range f.rows {
		upcoming := !e.StartDate.Before(today.Time)
		if upcoming == filter.Upcoming {
			e := e
			out = append(out, &e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate.Time) {
			return out[i].StartDate.Before(out[j].StartDate.Time)
		}
		return out[i].ID < out[j].ID
	})
	return paginate(out, filter.Offset, filter.Limit), nil
}

func (f *fakeEventRepo) Update(ctx context.Context, e *model.Event) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[e.ID]; !ok {
		return repository.ErrEventNotFound
	}
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeEventRepo) Delete(ctx context.Context, id uint64) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(f.rows, id)
	return nil
}

// --- content ---

type fakeContentRepo struct {
	faults
	rows   map[string]model.Content
	nextID uint64
	// raceOnCreate makes Create report a unique-key violation, as if a
	// concurrent request inserted the key after our lookup.
	raceOnCreate bool
}

func newFakeContentRepo() *fakeContentRepo {
	return &fakeContentRepo{rows: map[string]model.Content{}}
}

func (f *fakeContentRepo) InTx(ctx context.Context, fn func(repository.ContentRepository) error) error {
	snap, id := copyMap(f.rows), f.nextID
	if err := fn(f); err != nil {
		f.rows, f.nextID = snap, id
		return err
	}
	return nil
}

func (f *fakeContentRepo) Create(ctx context.Context, c *model.Content) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[c.Key]; ok || f.raceOnCreate {
		return repository.ErrDuplicate
	}
	f.nextID++
	c.ID = f.nextID
	f.rows[c.Key] = *c
	return nil
}

func (f *fakeContentRepo) GetByKey(ctx context.Context, key string) (*model.Content, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	c, ok := f.rows[key]
	if !ok {
		return nil, repository.ErrContentNotFound
	}
	return &c, nil
}

func (f *fakeContentRepo) List(ctx context.Context, offset, limit int) ([]*model.Content, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	var out []*model.Content
	for _, c := range f.rows {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, offset, limit), nil
}

func (f *fakeContentRepo) Update(ctx context.Context, c *model.Content) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[c.Key]; !ok {
		return repository.ErrContentNotFound
	}
	f.rows[c.Key] = *c
	return nil
}

func (f *fakeContentRepo) DeleteByKey(ctx context.Context, key string) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[key]; !ok {
		return repository.ErrContentNotFound
	}
	delete(f.rows, key)
	return nil
}

// --- djs ---

type fakeDjRepo struct {
	faults
	profiles  map[uint64]model.DjProfile
	socials   map[uint64]model.DjSocials
	nextDj    uint64
	nextSoc   uint64
	createErr error
}

func newFakeDjRepo() *fakeDjRepo {
	return &fakeDjRepo{profiles: map[uint64]model.DjProfile{}, socials: map[uint64]model.DjSocials{}}
}

func (f *fakeDjRepo) InTx(ctx context.Context, fn func(repository.DjRepository) error) error {
	p, s, nd, ns := copyMap(f.profiles), copyMap(f.socials), f.nextDj, f.nextSoc
	if err := fn(f); err != nil {
		f.profiles, f.socials, f.nextDj, f.nextSoc = p, s, nd, ns
		return err
	}
	return nil
}

func (f *fakeDjRepo) CreateSocials(ctx context.Context, s *model.DjSocials) error {
	if err := f.next(); err != nil {
		return err
	}
	f.nextSoc++
	s.ID = f.nextSoc
	f.socials[s.ID] = *s
	return nil
}

func (f *fakeDjRepo) UpdateSocials(ctx context.Context, s *model.DjSocials) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.socials[s.ID]; !ok {
		return repository.ErrSocialsNotFound
	}
	f.socials[s.ID] = *s
	return nil
}

func (f *fakeDjRepo) DeleteSocials(ctx context.Context, id uint64) error {
	if err := f.next(); err != nil {
		return err
	}
	delete(f.socials, id)
	return nil
}

func (f *fakeDjRepo) Create(ctx context.Context, d *model.DjProfile) error {
	if err := f.next(); err != nil {
		return err
	}
	if f.createErr != nil {
		return f.createErr
	}
	f.nextDj++
	d.ID = f.nextDj
	stored := *d
	stored.Socials = nil
	f.profiles[d.ID] = stored
	return nil
}

func (f *fakeDjRepo) load(d model.DjProfile) *model.DjProfile {
	d.Socials = nil
	if d.SocialID != nil {
		if s, ok := f.socials[*d.SocialID]; ok {
			d.Socials = &s
		}
	}
	return &d
}

func (f *fakeDjRepo) GetByID(ctx context.Context, id uint64) (*model.DjProfile, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	d, ok := f.profiles[id]
	if !ok {
		return nil, repository.ErrDjNotFound
	}
	return f.load(d), nil
}

func (f *fakeDjRepo) List(ctx context.Context, offset, limit int) ([]*model.DjProfile, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	var out []*model.DjProfile
	for _, d := range f.profiles {
		out = append(out, f.load(d))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, offset, limit), nil
}

func (f *fakeDjRepo) Update(ctx context.Context, d *model.DjProfile) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.profiles[d.ID]; !ok {
		return repository.ErrDjNotFound
	}
	stored := *d
	stored.Socials = nil
	f.profiles[d.ID] = stored
	return nil
}

func (f *fakeDjRepo) Delete(ctx context.Context, id uint64) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.profiles[id]; !ok {
		return repository.ErrDjNotFound
	}
	delete(f.profiles, id)
	return nil
}

// --- mailing list ---

type fakeMailingListRepo struct {
	faults
	rows   map[uint64]model.MailingListEntry
	nextID uint64
	// raceOnCreate makes Create report a unique-key violation.
	raceOnCreate bool
}

func newFakeMailingListRepo() *fakeMailingListRepo {
	return &fakeMailingListRepo{rows: map[uint64]model.MailingListEntry{}}
}

func (f *fakeMailingListRepo) InTx(ctx context.Context, fn func(repository.MailingListRepository) error) error {
	snap, id := copyMap(f.rows), f.nextID
	if err := fn(f); err != nil {
		f.rows, f.nextID = snap, id
		return err
	}
	return nil
}

func (f *fakeMailingListRepo) Create(ctx context.Context, e *model.MailingListEntry) error {
	if err := f.next(); err != nil {
		return err
	}
	if f.raceOnCreate {
		return repository.ErrDuplicate
	}
	for _, row := range f.rows {
		if row.Email == e.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	e.ID = f.nextID
	e.CreatedAt = fixedNow
	f.rows[e.ID] = *e
	return nil
}

func (f *fakeMailingListRepo) GetByID(ctx context.Context, id uint64) (*model.MailingListEntry, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	e, ok := f.rows[id]
	if !ok {
		return nil, repository.ErrEntryNotFound
	}
	return &e, nil
}

func (f *fakeMailingListRepo) GetByEmail(ctx context.Context, email string) (*model.MailingListEntry, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	for _, e := range f.rows {
		if e.Email == email {
			e := e
			return &e, nil
		}
	}
	return nil, repository.ErrEntryNotFound
}

func (f *fakeMailingListRepo) List(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error) {
	if err := f.next(); err != nil {
		return nil, err
	}
	var out []*model.MailingListEntry
	for _, e := range f.rows {
		if subscribedOnly && !e.Subscribed {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return paginate(out, offset, limit), nil
}

func (f *fakeMailingListRepo) Update(ctx context.Context, e *model.MailingListEntry) error {
	if err := f.next(); err != nil {
		return err
	}
	row, ok := f.rows[e.ID]
	if !ok {
		return repository.ErrEntryNotFound
	}
	row.Name, row.Subscribed = e.Name, e.Subscribed
	f.rows[e.ID] = row
	return nil
}

func (f *fakeMailingListRepo) Delete(ctx context.Context, id uint64) error {
	if err := f.next(); err != nil {
		return err
	}
	if _, ok := f.rows[id]; !ok {
		return repository.ErrEntryNotFound
	}
	delete(f.rows, id)
	return nil
}

// MockPublisher is a testify mock of queue.Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, ev queue.SubscriptionEvent) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}
