package handler

import (
	"context"
	"io"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/media"
	"github.com/iliyamo/azulu-crm/internal/model"
)

// MockEventService is a testify mock of service.EventService
type MockEventService struct{ mock.Mock }

func (m *MockEventService) CreateEvent(ctx context.Context, req *dto.CreateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, req)
	ev, _ := args.Get(0).(*model.Event)
	return ev, args.Error(1)
}

func (m *MockEventService) GetEvent(ctx context.Context, id uint64) (*model.Event, error) {
	args := m.Called(ctx, id)
	ev, _ := args.Get(0).(*model.Event)
	return ev, args.Error(1)
}

func (m *MockEventService) ListEvents(ctx context.Context, f model.EventFilter) ([]*model.Event, error) {
	args := m.Called(ctx, f)
	items, _ := args.Get(0).([]*model.Event)
	return items, args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id uint64, req *dto.UpdateEventRequest) (*model.Event, error) {
	args := m.Called(ctx, id, req)
	ev, _ := args.Get(0).(*model.Event)
	return ev, args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

// MockContentService is a testify mock of service.ContentService
type MockContentService struct{ mock.Mock }

func (m *MockContentService) CreateContent(ctx context.Context, req *dto.CreateContentRequest) (*model.Content, error) {
	args := m.Called(ctx, req)
	c, _ := args.Get(0).(*model.Content)
	return c, args.Error(1)
}

func (m *MockContentService) GetContent(ctx context.Context, key string) (*model.Content, error) {
	args := m.Called(ctx, key)
	c, _ := args.Get(0).(*model.Content)
	return c, args.Error(1)
}

func (m *MockContentService) ListContent(ctx context.Context, offset, limit int) ([]*model.Content, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]*model.Content)
	return items, args.Error(1)
}

func (m *MockContentService) UpdateContent(ctx context.Context, key string, req *dto.UpdateContentRequest) (*model.Content, error) {
	args := m.Called(ctx, key, req)
	c, _ := args.Get(0).(*model.Content)
	return c, args.Error(1)
}

func (m *MockContentService) DeleteContent(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

// MockDjService is a testify mock of service.DjService
type MockDjService struct{ mock.Mock }

func (m *MockDjService) CreateDj(ctx context.Context, req *dto.CreateDjRequest) (*model.DjProfile, error) {
	args := m.Called(ctx, req)
	d, _ := args.Get(0).(*model.DjProfile)
	return d, args.Error(1)
}

func (m *MockDjService) GetDj(ctx context.Context, id uint64) (*model.DjProfile, error) {
	args := m.Called(ctx, id)
	d, _ := args.Get(0).(*model.DjProfile)
	return d, args.Error(1)
}

func (m *MockDjService) ListDjs(ctx context.Context, offset, limit int) ([]*model.DjProfile, error) {
	args := m.Called(ctx, offset, limit)
	items, _ := args.Get(0).([]*model.DjProfile)
	return items, args.Error(1)
}

func (m *MockDjService) UpdateDj(ctx context.Context, id uint64, req *dto.UpdateDjRequest) (*model.DjProfile, error) {
	args := m.Called(ctx, id, req)
	d, _ := args.Get(0).(*model.DjProfile)
	return d, args.Error(1)
}

func (m *MockDjService) DeleteDj(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

// MockMailingListService is a testify mock of service.MailingListService
type MockMailingListService struct{ mock.Mock }

func (m *MockMailingListService) Subscribe(ctx context.Context, req *dto.SubscribeRequest) (*model.MailingListEntry, model.SubscribeOutcome, error) {
	args := m.Called(ctx, req)
	e, _ := args.Get(0).(*model.MailingListEntry)
	return e, args.Get(1).(model.SubscribeOutcome), args.Error(2)
}

func (m *MockMailingListService) Unsubscribe(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockMailingListService) ListEntries(ctx context.Context, subscribedOnly bool, offset, limit int) ([]*model.MailingListEntry, error) {
	args := m.Called(ctx, subscribedOnly, offset, limit)
	items, _ := args.Get(0).([]*model.MailingListEntry)
	return items, args.Error(1)
}

func (m *MockMailingListService) GetEntry(ctx context.Context, id uint64) (*model.MailingListEntry, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.MailingListEntry)
	return e, args.Error(1)
}

func (m *MockMailingListService) DeleteEntry(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

// MockUploader is a testify mock of media.Uploader
type MockUploader struct{ mock.Mock }

func (m *MockUploader) Sign() (*media.Signature, error) {
	args := m.Called()
	s, _ := args.Get(0).(*media.Signature)
	return s, args.Error(1)
}

func (m *MockUploader) Upload(ctx context.Context, file io.Reader, folder string) (*media.Image, error) {
	args := m.Called(ctx, file, folder)
	img, _ := args.Get(0).(*media.Image)
	return img, args.Error(1)
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = dto.NewValidator()
	return e
}

// do sends a request through e and returns the recorder.
func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

var anyCtx = mock.Anything

func strPtr(s string) *string { return &s }

