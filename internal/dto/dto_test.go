package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/azulu-crm/internal/apperr"
	"github.com/iliyamo/azulu-crm/internal/model"
)

func strPtr(s string) *string { return &s }

func validEvent() *CreateEventRequest {
	d := model.NewDate(time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC))
	return &CreateEventRequest{
		Name: "Azulu Night", VenueName: "Club", Address: "1 Main St",
		StartDate: &d, StartTime: "22:00", EndTime: "04:00",
		TimeZone: "Europe/Amsterdam", TicketStatus: "Available",
		Description: strPtr(""),
	}
}

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	require.Equal(t, apperr.KindValidation, ae.Kind)
	out := map[string]string{}
	for _, f := range ae.Fields {
		out[f.Field] = f.Rule
	}
	return out
}

func TestValidate_CreateEvent(t *testing.T) {
	v := NewValidator()

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, v.Validate(validEvent()))
	})

	t.Run("end before start is accepted", func(t *testing.T) {
		r := validEvent()
		r.StartTime, r.EndTime = "23:00", "01:00"
		assert.NoError(t, v.Validate(r))
	})

	t.Run("missing fields are all reported", func(t *testing.T) {
		fields := fieldsOf(t, v.Validate(&CreateEventRequest{}))
		for _, name := range []string{"name", "venue_name", "address", "start_date", "start_time",
			"end_time", "time_zone", "ticket_status", "description"} {
			assert.Equal(t, "required", fields[name], name)
		}
	})

	t.Run("bad formats", func(t *testing.T) {
		r := validEvent()
		r.StartTime = "24:00"
		r.EndTime = "9:30"
		r.TimeZone = "Mars/Olympus"
		r.TicketStatus = "Maybe"
		r.Currency = "DOLLARSDOLLARS"
		fields := fieldsOf(t, v.Validate(r))
		assert.Equal(t, "clock", fields["start_time"])
		assert.Equal(t, "clock", fields["end_time"])
		assert.Equal(t, "timezone", fields["time_zone"])
		assert.Equal(t, "ticket_status", fields["ticket_status"])
		assert.Equal(t, "max", fields["currency"])
	})
}

func TestValidate_UpdateEvent(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&UpdateEventRequest{}))
	assert.NoError(t, v.Validate(&UpdateEventRequest{TicketStatus: strPtr("Sold At The Door")}))

	fields := fieldsOf(t, v.Validate(&UpdateEventRequest{
		Name:         strPtr(""),
		StartTime:    strPtr("7pm"),
		TicketStatus: strPtr("sold out"),
	}))
	assert.Equal(t, "min", fields["name"])
	assert.Equal(t, "clock", fields["start_time"])
	assert.Equal(t, "ticket_status", fields["ticket_status"])
}

func TestCreateEventRequest_Event_Defaults(t *testing.T) {
	e := validEvent().Event()
	assert.Equal(t, model.DefaultCurrency, e.Currency)
	assert.NotNil(t, e.Lineup)
	assert.NotNil(t, e.Genres)
	assert.Equal(t, "2026-11-01", e.StartDate.String())
	assert.Equal(t, model.TicketAvailable, e.TicketStatus)
}

func TestUpdateEventRequest_Apply_OnlySuppliedFields(t *testing.T) {
	orig := validEvent().Event()
	orig.ID = 3
	orig.Lineup = model.StringList{"A"}

	var patch UpdateEventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Renamed","genres":[],"price":12.5}`), &patch))

	got := *orig
	patch.Apply(&got)

	assert.Equal(t, "Renamed", got.Name)
	assert.Equal(t, model.StringList{}, got.Genres)
	require.NotNil(t, got.Price)
	assert.Equal(t, 12.5, *got.Price)

	got.Name, got.Genres, got.Price = orig.Name, orig.Genres, orig.Price
	assert.Equal(t, *orig, got)
}

func TestValidate_Content(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&CreateContentRequest{Key: "faq"}))

	fields := fieldsOf(t, v.Validate(&CreateContentRequest{}))
	assert.Equal(t, "required", fields["key"])

	c := (&CreateContentRequest{Key: "faq"}).Content()
	assert.Equal(t, model.StringList{}, c.StringCollection)
	assert.Nil(t, c.BigString)
}

func TestUpdateContentRequest_Apply(t *testing.T) {
	c := &model.Content{ID: 1, Key: "faq", StringCollection: model.StringList{"a"}, BigString: strPtr("old")}

	(&UpdateContentRequest{BigString: Some("new")}).Apply(c)
	assert.Equal(t, model.StringList{"a"}, c.StringCollection)
	assert.Equal(t, "new", *c.BigString)
	assert.Equal(t, "faq", c.Key)
}

func TestValidate_Dj_NestedSocials(t *testing.T) {
	v := NewValidator()
	long := string(make([]byte, 256))

	assert.NoError(t, v.Validate(&CreateDjRequest{Alias: "Azul", ProfileURL: "https://x"}))

	fields := fieldsOf(t, v.Validate(&CreateDjRequest{
		Alias:   "Azul",
		Socials: &SocialsRequest{TikTok: Some(long)},
	}))
	assert.Equal(t, "required", fields["profile_url"])
	assert.Equal(t, "max", fields["socials.tiktok"])
}

func TestSocialsRequest_ApplyPatchesInPlace(t *testing.T) {
	s := &model.DjSocials{ID: 4, Instagram: strPtr("@old"), Spotify: strPtr("sp")}
	(&SocialsRequest{Instagram: Some("@new"), YouTube: Some("yt")}).Apply(s)

	assert.Equal(t, uint64(4), s.ID)
	assert.Equal(t, "@new", *s.Instagram)
	assert.Equal(t, "sp", *s.Spotify)
	assert.Equal(t, "yt", *s.YouTube)
	assert.Nil(t, s.TikTok)
}

func TestValidate_Subscribe(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&SubscribeRequest{Name: "A", Email: "a@x.com"}))

	fields := fieldsOf(t, v.Validate(&SubscribeRequest{Name: "A", Email: "not-an-email"}))
	assert.Equal(t, "email", fields["email"])

	r := &SubscribeRequest{Name: "  A ", Email: " A@X.Com "}
	r.Normalize()
	assert.Equal(t, "A", r.Name)
	assert.Equal(t, "a@x.com", r.Email)
}

func TestOptional_UnmarshalJSON(t *testing.T) {
	var r struct {
		A Optional[string]  `json:"a"`
		B Optional[string]  `json:"b"`
		C Optional[float64] `json:"c"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":"x","b":null}`), &r))

	assert.Equal(t, Some("x"), r.A)
	assert.Equal(t, Null[string](), r.B)
	assert.False(t, r.C.Set)
	assert.Nil(t, r.B.Ptr())
	require.NotNil(t, r.A.Ptr())
	assert.Equal(t, "x", *r.A.Ptr())

	assert.Error(t, json.Unmarshal([]byte(`{"c":"ten"}`), &r))
}

func TestUpdateEventRequest_Apply_NullClearsNullableColumns(t *testing.T) {
	price := 10.0
	stored := validEvent().Event()
	stored.PosterURL = strPtr("http://p")
	stored.TicketLink = strPtr("http://t")
	stored.Price = &price

	var patch UpdateEventRequest
	require.NoError(t, json.Unmarshal([]byte(`{"poster_url":null,"price":null}`), &patch))
	patch.Apply(stored)

	assert.Nil(t, stored.PosterURL)
	assert.Nil(t, stored.Price)
	require.NotNil(t, stored.TicketLink, "absent field must survive")
	assert.Equal(t, "http://t", *stored.TicketLink)

	require.NoError(t, json.Unmarshal([]byte(`{"ticket_link":"http://new"}`), &patch))
	patch.Apply(stored)
	assert.Equal(t, "http://new", *stored.TicketLink)
}

func TestUpdateContentRequest_Apply_NullClearsBigString(t *testing.T) {
	c := &model.Content{ID: 1, Key: "faq", BigString: strPtr("old")}

	var patch UpdateContentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"big_string":null}`), &patch))
	patch.Apply(c)
	assert.Nil(t, c.BigString)
}

func TestSocialsRequest_Apply_NullClearsHandle(t *testing.T) {
	s := &model.DjSocials{ID: 4, Instagram: strPtr("@old"), Spotify: strPtr("sp")}

	var patch SocialsRequest
	require.NoError(t, json.Unmarshal([]byte(`{"instagram":null}`), &patch))
	patch.Apply(s)

	assert.Nil(t, s.Instagram)
	assert.Equal(t, "sp", *s.Spotify)
}

func TestValidate_OptionalFields(t *testing.T) {
	v := NewValidator()
	long := string(make([]byte, 256))

	assert.NoError(t, v.Validate(&UpdateEventRequest{PosterURL: Null[string](), Price: Null[float64]()}))
	assert.NoError(t, v.Validate(&UpdateEventRequest{PosterURL: Some("http://p"), Price: Some(9.5)}))

	fields := fieldsOf(t, v.Validate(&UpdateEventRequest{PosterURL: Some(long)}))
	assert.Equal(t, "max", fields["poster_url"])
}

func TestValidate_BlankStringsRejected(t *testing.T) {
	v := NewValidator()

	fields := fieldsOf(t, v.Validate(&SubscribeRequest{Name: "   ", Email: "a@x.com"}))
	assert.Equal(t, "notblank", fields["name"])

	fields = fieldsOf(t, v.Validate(&CreateDjRequest{Alias: " \t", ProfileURL: "https://x"}))
	assert.Equal(t, "notblank", fields["alias"])

	fields = fieldsOf(t, v.Validate(&UpdateEventRequest{Name: strPtr("  ")}))
	assert.Equal(t, "notblank", fields["name"])
}
