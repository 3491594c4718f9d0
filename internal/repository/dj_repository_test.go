package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/azulu-crm/internal/model"
)

var djCols = []string{"id", "alias", "profile_url", "social_id",
	"id", "instagram", "tiktok", "spotify", "soundcloud", "youtube", "apple_music"}

func TestDjRepo_GetByID_WithSocials(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM djs d LEFT JOIN dj_socials s ON s.id = d.social_id WHERE d.id = ?")).
		WithArgs(uint64(1)).
		WillReturnRows(sqlmock.NewRows(djCols).
			AddRow(1, "DJ Azul", "https://x/azul", 9, 9, "@azul", nil, nil, "azul-sc", nil, nil))

	d, err := NewDjRepo(db).GetByID(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, d.SocialID)
	assert.Equal(t, uint64(9), *d.SocialID)
	require.NotNil(t, d.Socials)
	assert.Equal(t, uint64(9), d.Socials.ID)
	assert.Equal(t, "@azul", *d.Socials.Instagram)
	assert.Equal(t, "azul-sc", *d.Socials.SoundCloud)
	assert.Nil(t, d.Socials.TikTok)
}

func TestDjRepo_List_WithoutSocials(t *testing.T) {
	db, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY d.id LIMIT ? OFFSET ?")).
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows(djCols).
			AddRow(2, "Solo", "https://x/solo", nil, nil, nil, nil, nil, nil, nil, nil))

	out, err := NewDjRepo(db).List(context.Background(), 0, 100)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Nil(t, out[0].SocialID)
	assert.Nil(t, out[0].Socials)
}

func TestDjRepo_CreateWithSocials_InOneTx(t *testing.T) {
	db, mock := newMock(t)
	repo := NewDjRepo(db)
	insta := "@azul"

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dj_socials")).
		WithArgs(insta, nil, nil, nil, nil, nil).
		WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO djs (alias, profile_url, social_id)")).
		WithArgs("DJ Azul", "https://x/azul", uint64(11)).
		WillReturnResult(sqlmock.NewResult(3, 1))
	mock.ExpectCommit()

	d := &model.DjProfile{Alias: "DJ Azul", ProfileURL: "https://x/azul"}
	err := repo.InTx(context.Background(), func(tx DjRepository) error {
		s := &model.DjSocials{Instagram: &insta}
		if err := tx.CreateSocials(context.Background(), s); err != nil {
			return err
		}
		d.SocialID = &s.ID
		return tx.Create(context.Background(), d)
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(3), d.ID)
}

func TestDjRepo_InTx_RollsBackWhenProfileInsertFails(t *testing.T) {
	db, mock := newMock(t)
	boom := errors.New("insert failed")

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO dj_socials")).WillReturnResult(sqlmock.NewResult(11, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO djs")).WillReturnError(boom)
	mock.ExpectRollback()

	err := NewDjRepo(db).InTx(context.Background(), func(tx DjRepository) error {
		s := &model.DjSocials{}
		if err := tx.CreateSocials(context.Background(), s); err != nil {
			return err
		}
		return tx.Create(context.Background(), &model.DjProfile{Alias: "x", SocialID: &s.ID})
	})
	assert.ErrorIs(t, err, boom)
}

func TestDjRepo_UpdateSocials_NotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec(regexp.QuoteMeta("UPDATE dj_socials SET")).WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewDjRepo(db).UpdateSocials(context.Background(), &model.DjSocials{ID: 4})
	assert.ErrorIs(t, err, ErrSocialsNotFound)
}
