package dossier_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cadastro-social/internal/config"
	"cadastro-social/internal/domain"
	"cadastro-social/internal/pkg/i18n"
	"cadastro-social/internal/service/dossier"
	"cadastro-social/tests/mocks"
)

type repos struct {
	reg       *mocks.RegistrationRepository
	household *mocks.HouseholdRepository
	doc       *mocks.DocumentRepository
	tracking  *mocks.TrackingRepository
	msg       *mocks.MessageRepository
	terms     *mocks.TermsRepository
	profile   *mocks.ProfileRepository
}

func newService() (dossier.Service, *repos) {
	r := &repos{
		reg:       new(mocks.RegistrationRepository),
		household: new(mocks.HouseholdRepository),
		doc:       new(mocks.DocumentRepository),
		tracking:  new(mocks.TrackingRepository),
		msg:       new(mocks.MessageRepository),
		terms:     new(mocks.TermsRepository),
		profile:   new(mocks.ProfileRepository),
	}
	svc := dossier.NewService(r.reg, r.household, r.doc, r.tracking, r.msg, r.terms, r.profile, nil, &config.Config{MinIOBucket: "cadastro-documentos"})
	return svc, r
}

func TestDossierService_Build(t *testing.T) {
	ctx := context.Background()
	regID := uuid.New()

	t.Run("citizen forbidden", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Build(ctx, &domain.Profile{ID: uuid.New(), Role: domain.RoleCitizen}, regID)

		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("aggregates the whole case", func(t *testing.T) {
		svc, r := newService()
		staff := &domain.Profile{ID: uuid.New(), Role: domain.RoleSocialWorker}
		owner := uuid.New()

		r.reg.On("GetByID", ctx, regID).Return(&domain.Registration{
			ID: regID, UserID: owner, Name: "Maria Silva", CPF: "12345678901", Status: domain.StatusApproved,
		}, nil).Once()
		r.household.On("ListByRegistration", ctx, regID).Return([]domain.HouseholdMember{
			{ID: uuid.New(), MemberName: "Maria Silva", Relationship: domain.HeadRelationship},
		}, nil).Once()
		r.doc.On("ListByRegistration", ctx, regID).Return([]domain.Document{}, nil).Once()
		r.tracking.On("ListByRegistration", ctx, regID, domain.TrackingAscending).Return([]domain.TrackingEntry{
			{ID: uuid.New(), UpdatedBy: staff.ID, Status: "cadastro_criado", CreatedAt: time.Now()},
		}, nil).Once()
		r.msg.On("ListByRegistration", ctx, regID).Return([]domain.Message{
			{ID: uuid.New(), UserID: owner, Message: "Quando sai a análise?"},
		}, nil).Once()
		r.terms.On("GetByRegistration", ctx, regID).Return(nil, nil).Once()
		r.profile.On("GetByIDs", ctx, []uuid.UUID{staff.ID}).Return([]domain.Profile{
			{ID: staff.ID, FullName: "Ana Souza"},
		}, nil).Once()
		r.profile.On("GetByIDs", ctx, []uuid.UUID{owner}).Return([]domain.Profile{
			{ID: owner, FullName: "Maria Silva"},
		}, nil).Once()

		d, err := svc.Build(ctx, staff, regID)

		require.NoError(t, err)
		assert.Equal(t, "Maria Silva", d.Registration.Name)
		assert.Len(t, d.Household, 1)
		assert.Equal(t, "Ana Souza", d.Tracking[0].UpdatedByName)
		assert.Equal(t, "Maria Silva", d.Messages[0].UserName)
		assert.Nil(t, d.Terms)
	})
}

func TestDossierService_RenderHTML(t *testing.T) {
	i18n.SetStatusLabels("pt-BR", i18n.Labels{"approved": "Aprovado"})
	svc, _ := newService()

	d := &dossier.Dossier{
		Registration: &domain.Registration{
			ID: uuid.New(), Name: "Maria Silva", CPF: "12345678901", Status: domain.StatusApproved,
		},
		Household: []domain.HouseholdMember{
			{MemberName: "Joana Silva", Relationship: "Filha"},
		},
		Tracking: []domain.TrackingEntry{
			{Status: "cadastro_criado", UpdatedByName: "Ana Souza", CreatedAt: time.Now()},
		},
		GeneratedAt: time.Now().UTC(),
		StatusLabel: "Aprovado",
	}

	html, err := svc.RenderHTML(d)

	require.NoError(t, err)
	out := string(html)
	assert.Contains(t, out, "Maria Silva")
	assert.Contains(t, out, "Joana Silva")
	assert.Contains(t, out, "Aprovado")
	assert.Contains(t, out, "Ana Souza")
	assert.Contains(t, out, "<!DOCTYPE html>")
}
