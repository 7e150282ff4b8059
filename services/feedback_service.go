package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"salonhub-backend/models"
	"salonhub-backend/repository"
	"salonhub-backend/utils"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type CreateFeedbackInput struct {
	ServiceRef    string `json:"serviceID" binding:"required"`
	Message       string `json:"message" binding:"required"`
	StarRating    int    `json:"star_rating" binding:"required"`
	DateOfService string `json:"date_of_service" binding:"required"`
}

type UpdateFeedbackInput struct {
	ServiceRef    *string `json:"serviceID"`
	Message       *string `json:"message"`
	StarRating    *int    `json:"star_rating"`
	DateOfService *string `json:"date_of_service"`
}

type FeedbackStatusInput struct {
	Status string `json:"status" binding:"required"`
}

// FeedbackView is a feedback record with its service labels resolved.
type FeedbackView struct {
	models.Feedback
	ServiceCategory    string `json:"service_category"`
	ServiceSubCategory string `json:"service_subCategory"`
}

type FeedbackService struct {
	store    repository.FeedbackStore
	resolver *ServiceRefResolver
	clock    Clock
	log      logrus.FieldLogger
	metrics  Recorder
}

func NewFeedbackService(store repository.FeedbackStore, resolver *ServiceRefResolver, clock Clock, log logrus.FieldLogger, metrics Recorder) *FeedbackService {
	if metrics == nil {
		metrics = NopRecorder{}
	}
	return &FeedbackService{store: store, resolver: resolver, clock: clock, log: log, metrics: metrics}
}

func validateRating(errs fieldErrors, rating int) {
	if rating < 1 || rating > 5 {
		errs.add("star_rating", "must be between 1 and 5")
	}
}

// validateServiceDate only accepts the current calendar day.
func (s *FeedbackService) validateServiceDate(errs fieldErrors, raw string) time.Time {
	now := s.clock()
	date, err := utils.ParseDate(strings.TrimSpace(raw), now.Location())
	if err != nil {
		errs.add("date_of_service", err.Error())
		return time.Time{}
	}
	if !utils.SameDay(date, now) {
		errs.add("date_of_service", "must be today")
	}
	return date
}

func (s *FeedbackService) Create(ctx context.Context, actor Actor, in CreateFeedbackInput) (*FeedbackView, error) {
	errs := fieldErrors{}
	if strings.TrimSpace(in.ServiceRef) == "" {
		errs.add("serviceID", "is required")
	}
	if strings.TrimSpace(in.Message) == "" {
		errs.add("message", "is required")
	}
	validateRating(errs, in.StarRating)
	date := s.validateServiceDate(errs, in.DateOfService)
	if err := errs.err(); err != nil {
		return nil, err
	}

	fb := &models.Feedback{
		UserID:        actor.UserID,
		ServiceRef:    strings.TrimSpace(in.ServiceRef),
		Message:       strings.TrimSpace(in.Message),
		StarRating:    in.StarRating,
		DateOfService: date,
		Status:        models.FeedbackPending,
	}
	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("create feedback: %w", err)
	}
	s.log.WithFields(logrus.Fields{"feedback_id": fb.ID, "service_ref": fb.ServiceRef}).Info("feedback submitted")
	return s.view(ctx, fb), nil
}

func (s *FeedbackService) view(ctx context.Context, fb *models.Feedback) *FeedbackView {
	category, sub := s.resolver.Resolve(ctx, fb.ServiceRef).Labels()
	return &FeedbackView{Feedback: *fb, ServiceCategory: category, ServiceSubCategory: sub}
}

func (s *FeedbackService) views(ctx context.Context, list []models.Feedback) []FeedbackView {
	refs := make([]string, 0, len(list))
	for _, fb := range list {
		refs = append(refs, fb.ServiceRef)
	}
	resolved := s.resolver.ResolveAll(ctx, refs)
	out := make([]FeedbackView, 0, len(list))
	for _, fb := range list {
		category, sub := resolved[fb.ServiceRef].Labels()
		out = append(out, FeedbackView{Feedback: fb, ServiceCategory: category, ServiceSubCategory: sub})
	}
	return out
}

func (s *FeedbackService) Get(ctx context.Context, id uuid.UUID) (*FeedbackView, error) {
	fb, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return nil, notFound(err, "Feedback")
	}
	return s.view(ctx, fb), nil
}

func (s *FeedbackService) List(ctx context.Context) ([]FeedbackView, error) {
	list, err := s.store.ListFeedback(ctx)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list), nil
}

// ListApproved is the public testimonial feed.
func (s *FeedbackService) ListApproved(ctx context.Context) ([]FeedbackView, error) {
	list, err := s.store.ListFeedbackByStatus(ctx, models.FeedbackApproved)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list), nil
}

func (s *FeedbackService) ListByUser(ctx context.Context, actor Actor, userID uuid.UUID) ([]FeedbackView, error) {
	if !actor.CanAccess(userID) {
		return nil, &ForbiddenError{Message: "Not allowed to view this feedback"}
	}
	list, err := s.store.ListFeedbackByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list), nil
}

// CountPending returns how many feedback entries await moderation.
func (s *FeedbackService) CountPending(ctx context.Context) (int, error) {
	list, err := s.store.ListFeedbackByStatus(ctx, models.FeedbackPending)
	if err != nil {
		return 0, err
	}
	return len(list), nil
}

// Update lets the author edit their feedback. Moderation status is kept.
func (s *FeedbackService) Update(ctx context.Context, actor Actor, id uuid.UUID, in UpdateFeedbackInput) (*FeedbackView, error) {
	fb, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return nil, notFound(err, "Feedback")
	}
	if actor.UserID != fb.UserID {
		return nil, &ForbiddenError{Message: "Only the author can edit this feedback"}
	}

	errs := fieldErrors{}
	if in.ServiceRef != nil && strings.TrimSpace(*in.ServiceRef) == "" {
		errs.add("serviceID", "must not be empty")
	}
	if in.Message != nil && strings.TrimSpace(*in.Message) == "" {
		errs.add("message", "must not be empty")
	}
	if in.StarRating != nil {
		validateRating(errs, *in.StarRating)
	}
	var date time.Time
	if in.DateOfService != nil {
		date = s.validateServiceDate(errs, *in.DateOfService)
	}
	if err := errs.err(); err != nil {
		return nil, err
	}

	if in.ServiceRef != nil {
		fb.ServiceRef = strings.TrimSpace(*in.ServiceRef)
	}
	if in.Message != nil {
		fb.Message = strings.TrimSpace(*in.Message)
	}
	if in.StarRating != nil {
		fb.StarRating = *in.StarRating
	}
	if in.DateOfService != nil {
		fb.DateOfService = date
	}
	if err := s.store.SaveFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	return s.view(ctx, fb), nil
}

// SetStatus approves or declines a pending entry. Decisions are final.
func (s *FeedbackService) SetStatus(ctx context.Context, actor Actor, id uuid.UUID, raw string) (*FeedbackView, error) {
	if err := requireAdmin(actor); err != nil {
		return nil, err
	}
	status := models.FeedbackStatus(strings.ToLower(strings.TrimSpace(raw)))
	if status != models.FeedbackApproved && status != models.FeedbackDeclined {
		return nil, invalid("status", "must be one of: approved, declined")
	}
	fb, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return nil, notFound(err, "Feedback")
	}
	if fb.Status != models.FeedbackPending {
		return nil, &ConflictError{Message: fmt.Sprintf("Feedback has already been %s", fb.Status)}
	}
	fb.Status = status
	if err := s.store.SaveFeedback(ctx, fb); err != nil {
		return nil, fmt.Errorf("save feedback: %w", err)
	}
	s.metrics.FeedbackModerated(string(status))
	s.log.WithFields(logrus.Fields{"feedback_id": fb.ID, "status": status}).Info("feedback moderated")
	return s.view(ctx, fb), nil
}

func (s *FeedbackService) Delete(ctx context.Context, actor Actor, id uuid.UUID) error {
	fb, err := s.store.GetFeedback(ctx, id)
	if err != nil {
		return notFound(err, "Feedback")
	}
	if !actor.CanAccess(fb.UserID) {
		return &ForbiddenError{Message: "Not allowed to delete this feedback"}
	}
	if err := s.store.DeleteFeedback(ctx, id); err != nil {
		return notFound(err, "Feedback")
	}
	return nil
}
