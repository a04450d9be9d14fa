package service

import (
	"context"
	"errors"
	"time"

	"github.com/lumenhq/lumen-backend/internal/common"
	"github.com/lumenhq/lumen-backend/internal/domain"
	"github.com/lumenhq/lumen-backend/internal/repository"
	"github.com/lumenhq/lumen-backend/pkg/cache"
	"github.com/lumenhq/lumen-backend/pkg/logger"
	"gorm.io/gorm"
)

// ModerationService applies reviewer actions to moderatable entities.
// One contract for every resource: validate the action, write status/flag
// plus audit columns in a single update, fire side effects without ever
// failing the write.
type ModerationService struct {
	applications repository.ApplicationRepository
	posts        repository.PostRepository
	projects     repository.ProjectRepository
	users        repository.UserRepository
	claims       repository.ClaimRepository
	mailer       Mailer
	cache        cache.Service
}

// NewModerationService creates the moderation service
func NewModerationService(
	applications repository.ApplicationRepository,
	posts repository.PostRepository,
	projects repository.ProjectRepository,
	users repository.UserRepository,
	claims repository.ClaimRepository,
	mailer Mailer,
	cacheService cache.Service,
) *ModerationService {
	return &ModerationService{
		applications: applications,
		posts:        posts,
		projects:     projects,
		users:        users,
		claims:       claims,
		mailer:       mailer,
		cache:        cacheService,
	}
}

// Transition validates and applies a moderation action, returning the
// updated row. Transitions are not guarded by origin state: re-applying
// an action overwrites the previous result (and re-runs its side effect).
func (s *ModerationService) Transition(ctx context.Context, entity string, id uint, action domain.Action, reason, reviewer string) (interface{}, error) {
	if !domain.IsAllowed(entity, action) {
		return nil, common.ErrInvalidAction
	}
	if action.RequiresReason() && reason == "" {
		return nil, common.ErrReasonRequired
	}

	updates := action.Updates()
	now := time.Now()
	updates["reviewed_at"] = &now
	updates["reviewed_by"] = reviewer
	if reason != "" {
		updates["reviewer_notes"] = reason
	}

	var (
		row interface{}
		err error
	)

	switch entity {
	case domain.EntityApplication:
		var app *domain.Application
		app, err = s.applications.Moderate(id, updates)
		if err == nil {
			row = app
			if action == domain.ActionApprove {
				s.dispatchWelcomeEmail(app)
			}
		}
	case domain.EntityPost:
		row, err = s.posts.Moderate(id, updates)
	case domain.EntityProject:
		row, err = s.projects.Moderate(id, updates)
	case domain.EntityUser:
		row, err = s.users.Moderate(id, updates)
	case domain.EntityClaim:
		row, err = s.claims.Moderate(id, updates)
	default:
		return nil, common.ErrInvalidAction
	}

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrNotFound
		}
		return nil, err
	}

	s.invalidate(ctx, entity)
	return row, nil
}

// DeletePost hard-deletes a post. The reason is mandatory but only
// logged; the row is gone, there is no tombstone.
func (s *ModerationService) DeletePost(ctx context.Context, id uint, reason, reviewer string) error {
	if reason == "" {
		return common.ErrReasonRequired
	}

	if err := s.posts.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.ErrNotFound
		}
		return err
	}

	logger.GetLogger().Info().
		Uint("post_id", id).
		Str("reviewer", reviewer).
		Str("reason", reason).
		Msg("post deleted")

	s.invalidate(ctx, domain.EntityPost)
	return nil
}

// BulkClaims approves or rejects a batch of claims in one statement.
// Missing ids are silently skipped; the count of updated rows is returned.
func (s *ModerationService) BulkClaims(ctx context.Context, ids []uint, action domain.Action, reason, reviewer string) (int64, error) {
	if action != domain.ActionApprove && action != domain.ActionReject {
		return 0, common.ErrInvalidAction
	}
	if action.RequiresReason() && reason == "" {
		return 0, common.ErrReasonRequired
	}

	status := domain.StatusApproved
	if action == domain.ActionReject {
		status = domain.StatusRejected
	}

	affected, err := s.claims.BulkUpdateStatus(ids, status, reason, reviewer)
	if err != nil {
		return 0, err
	}

	s.invalidate(ctx, domain.EntityClaim)
	return affected, nil
}

// dispatchWelcomeEmail sends the approval welcome email fire-and-forget.
// A mail failure must never roll back or surface on the status write.
func (s *ModerationService) dispatchWelcomeEmail(app *domain.Application) {
	if s.mailer == nil {
		return
	}
	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.GetLogger().Error().Interface("panic", r).Msg("welcome email dispatch panicked")
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.mailer.SendWelcome(ctx, app.Email, app.Name); err != nil {
			logger.GetLogger().Error().
				Err(err).
				Uint("application_id", app.ID).
				Str("email", app.Email).
				Msg("welcome email failed")
		}
	}()
}

func (s *ModerationService) invalidate(ctx context.Context, entity string) {
	if s.cache == nil || !s.cache.IsAvailable() {
		return
	}
	prefix := map[string]string{
		domain.EntityApplication: cache.PrefixApplications,
		domain.EntityPost:        cache.PrefixPosts,
		domain.EntityProject:     cache.PrefixProjects,
		domain.EntityUser:        cache.PrefixUsers,
		domain.EntityClaim:       cache.PrefixClaims,
	}[entity]
	if prefix == "" {
		return
	}
	if err := s.cache.InvalidateResource(ctx, prefix); err != nil {
		logger.GetLogger().Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
	}
}
