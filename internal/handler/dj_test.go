package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/dto"
	"github.com/iliyamo/azulu-crm/internal/model"
)

func TestDjHandler(t *testing.T) {
	svc := new(MockDjService)
	h := NewDjHandler(svc, nil)
	e := newEcho()
	e.POST("/djs", h.Create)
	e.GET("/djs", h.List)
	e.GET("/djs/:id", h.Get)
	e.PUT("/djs/:id", h.Update)
	e.DELETE("/djs/:id", h.Delete)

	socialID := uint64(4)
	created := &model.DjProfile{
		ID: 9, Alias: "Nova", ProfileURL: "https://cdn/nova.jpg", SocialID: &socialID,
		Socials: &model.DjSocials{ID: 4, Instagram: strPtr("@nova")},
	}

	svc.On("CreateDj", anyCtx, mock.MatchedBy(func(r *dto.CreateDjRequest) bool {
		return r.Alias == "Nova" && r.Socials.Instagram.Value == "@nova"
	})).Return(created, nil)
	svc.On("ListDjs", anyCtx, 10, 0).Return([]*model.DjProfile{created}, nil)
	svc.On("GetDj", anyCtx, uint64(9)).Return(created, nil)
	svc.On("UpdateDj", anyCtx, uint64(9), mock.MatchedBy(func(r *dto.UpdateDjRequest) bool {
		return r.Alias == nil && r.Socials != nil && r.Socials.TikTok.Set
	})).Return(created, nil)
	svc.On("DeleteDj", anyCtx, uint64(10)).Return(apperr.NotFound("DJ %d not found", 10))

	rec := do(e, http.MethodPost, "/djs", `{"alias":"Nova","profile_url":"https://cdn/nova.jpg","socials":{"instagram":"@nova"}}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"socials":{"id":4,"instagram":"@nova"`)

	rec = do(e, http.MethodPost, "/djs", `{"profile_url":"https://cdn/nova.jpg","socials":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"alias"`)

	rec = do(e, http.MethodGet, "/djs?skip=10", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/djs/9", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodPut, "/djs/9", `{"socials":{"tiktok":"@nova.tt"}}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodDelete, "/djs/10", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"DJ 10 not found"}`, rec.Body.String())

	rec = do(e, http.MethodDelete, "/djs/0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertExpectations(t)
}
