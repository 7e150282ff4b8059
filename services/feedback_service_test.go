package services

import (
	"testing"

	"salonhub-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFeedback(ref string) CreateFeedbackInput {
	return CreateFeedbackInput{
		ServiceRef:    ref,
		Message:       "Loved the new color",
		StarRating:    5,
		DateOfService: "2025-03-14",
	}
}

func TestFeedbackCreateResolvesService(t *testing.T) {
	env := newTestEnv(t)
	env.addService(t, "service42", "Hair", "Coloring")
	author := customerActor()

	fb, err := env.feedback.Create(env.ctx, author, validFeedback("42"))
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackPending, fb.Status)
	assert.Equal(t, author.UserID, fb.UserID)
	assert.Equal(t, "Hair", fb.ServiceCategory)
	assert.Equal(t, "Coloring", fb.ServiceSubCategory)
}

func TestFeedbackUnresolvedServiceStillListed(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.feedback.Create(env.ctx, customerActor(), validFeedback("service404"))
	require.NoError(t, err)

	list, err := env.feedback.List(env.ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, Unresolved, list[0].ServiceCategory)
	assert.Equal(t, Unresolved, list[0].ServiceSubCategory)
}

func TestFeedbackValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name   string
		mutate func(*CreateFeedbackInput)
		field  string
	}{
		{"rating too high", func(in *CreateFeedbackInput) { in.StarRating = 6 }, "star_rating"},
		{"rating too low", func(in *CreateFeedbackInput) { in.StarRating = 0 }, "star_rating"},
		{"yesterday", func(in *CreateFeedbackInput) { in.DateOfService = "2025-03-13" }, "date_of_service"},
		{"tomorrow", func(in *CreateFeedbackInput) { in.DateOfService = "2025-03-15" }, "date_of_service"},
		{"garbage date", func(in *CreateFeedbackInput) { in.DateOfService = "14/03/2025" }, "date_of_service"},
		{"blank message", func(in *CreateFeedbackInput) { in.Message = " " }, "message"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validFeedback("service1")
			tt.mutate(&in)
			_, err := env.feedback.Create(env.ctx, customerActor(), in)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestFeedbackModeration(t *testing.T) {
	env := newTestEnv(t)
	author := customerActor()
	fb, err := env.feedback.Create(env.ctx, author, validFeedback("service1"))
	require.NoError(t, err)

	var forbidden *ForbiddenError
	_, err = env.feedback.SetStatus(env.ctx, author, fb.ID, "approved")
	require.ErrorAs(t, err, &forbidden)

	var verr *ValidationError
	_, err = env.feedback.SetStatus(env.ctx, adminActor, fb.ID, "pending")
	require.ErrorAs(t, err, &verr)

	approved, err := env.feedback.SetStatus(env.ctx, adminActor, fb.ID, "approved")
	require.NoError(t, err)
	assert.Equal(t, models.FeedbackApproved, approved.Status)
	assert.Equal(t, 1, env.rec.moderated["approved"])

	var conflict *ConflictError
	_, err = env.feedback.SetStatus(env.ctx, adminActor, fb.ID, "declined")
	require.ErrorAs(t, err, &conflict)

	public, err := env.feedback.ListApproved(env.ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)

	// editing keeps the moderation decision
	edited, err := env.feedback.Update(env.ctx, author, fb.ID, UpdateFeedbackInput{StarRating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, edited.StarRating)
	assert.Equal(t, models.FeedbackApproved, edited.Status)
}

func TestFeedbackOwnership(t *testing.T) {
	env := newTestEnv(t)
	author, stranger := customerActor(), customerActor()
	fb, err := env.feedback.Create(env.ctx, author, validFeedback("service1"))
	require.NoError(t, err)

	var forbidden *ForbiddenError
	_, err = env.feedback.Update(env.ctx, stranger, fb.ID, UpdateFeedbackInput{Message: strPtr("hacked")})
	require.ErrorAs(t, err, &forbidden)
	_, err = env.feedback.Update(env.ctx, adminActor, fb.ID, UpdateFeedbackInput{Message: strPtr("edited by admin")})
	require.ErrorAs(t, err, &forbidden)
	require.ErrorAs(t, env.feedback.Delete(env.ctx, stranger, fb.ID), &forbidden)

	var verr *ValidationError
	_, err = env.feedback.Update(env.ctx, author, fb.ID, UpdateFeedbackInput{StarRating: intPtr(9)})
	require.ErrorAs(t, err, &verr)

	pending, err := env.feedback.CountPending(env.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, pending)

	mine, err := env.feedback.ListByUser(env.ctx, author, author.UserID)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	require.NoError(t, env.feedback.Delete(env.ctx, adminActor, fb.ID))
	var nf *NotFoundError
	_, err = env.feedback.Get(env.ctx, fb.ID)
	require.ErrorAs(t, err, &nf)
}
