package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

const (
	defaultActivityLimit = 50
	maxActivityLimit     = 200
)

// UserService implements profiles and the follow graph.
type UserService struct {
	users      ports.UserRepository
	follows    ports.FollowRepository
	questions  ports.QuestionRepository
	answers    ports.AnswerRepository
	activity   activityLog
	activities ports.ActivityRepository
	log        zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	follows ports.FollowRepository,
	questions ports.QuestionRepository,
	answers ports.AnswerRepository,
	activity ports.ActivityRepository,
	log zerolog.Logger,
) *UserService {
	return &UserService{
		users:      users,
		follows:    follows,
		questions:  questions,
		answers:    answers,
		activity:   newActivityLog(activity, log),
		activities: activity,
		log:        log,
	}
}

// Profile reloads the caller so the response reflects the stored record.
func (s *UserService) Profile(ctx context.Context, current *domain.User) (*domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	return s.users.FindByID(ctx, current.ID)
}

func (s *UserService) UpdateProfile(ctx context.Context, current *domain.User, in ports.UpdateProfileInput) (*domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := s.users.FindByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil {
		email, err := normalizeEmail(*in.Email)
		if err != nil {
			return nil, err
		}
		user.Email = email
	}
	if in.Username != nil {
		username, err := normalizeUsername(*in.Username)
		if err != nil {
			return nil, err
		}
		user.Username = username
	}
	if in.FirstName != nil {
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Password != nil {
		if err := checkPassword(*in.Password); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.users.Update(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("user_id", updated.ID).Msg("profile updated")
	return updated, nil
}

// Detail returns a user with their questions and answers. Both slices are
// non-nil so they serialize as empty lists.
func (s *UserService) Detail(ctx context.Context, viewer *domain.User, username string) (*domain.UserDetail, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	viewerID := viewerID(viewer)
	questions, _, err := s.questions.List(ctx, ports.ListQuestionsFilter{
		OwnerID:  user.ID,
		ViewerID: viewerID,
		Page:     1,
	})
	if err != nil {
		return nil, fmt.Errorf("list questions of %s: %w", username, err)
	}
	answers, err := s.answers.ListByOwner(ctx, user.ID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list answers of %s: %w", username, err)
	}

	if questions == nil {
		questions = []*domain.Question{}
	}
	if answers == nil {
		answers = []*domain.Answer{}
	}
	return &domain.UserDetail{User: user, Questions: questions, Answers: answers}, nil
}

// Follow adds the edge current → username. Following an already followed
// user is a no-op.
func (s *UserService) Follow(ctx context.Context, current *domain.User, username string) error {
	target, err := s.followTarget(ctx, current, username)
	if err != nil {
		return err
	}
	if err := s.follows.Follow(ctx, current.ID, target.ID); err != nil {
		return fmt.Errorf("follow %s: %w", username, err)
	}

	s.log.Debug().Str("follower", current.Username).Str("followee", target.Username).Msg("follow edge added")
	s.activity.record(ctx, current, domain.ActivityFollow, target.Username)
	return nil
}

// Unfollow removes the edge current → username. Removing a missing edge
// succeeds.
func (s *UserService) Unfollow(ctx context.Context, current *domain.User, username string) error {
	target, err := s.followTarget(ctx, current, username)
	if err != nil {
		return err
	}
	if err := s.follows.Unfollow(ctx, current.ID, target.ID); err != nil {
		return fmt.Errorf("unfollow %s: %w", username, err)
	}

	s.log.Debug().Str("follower", current.Username).Str("followee", target.Username).Msg("follow edge removed")
	s.activity.record(ctx, current, domain.ActivityUnfollow, target.Username)
	return nil
}

func (s *UserService) followTarget(ctx context.Context, current *domain.User, username string) (*domain.User, error) {
	if current == nil {
		return nil, domain.ErrUnauthorized
	}
	target, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if target.ID == current.ID {
		return nil, domain.ErrSelfFollow
	}
	return target, nil
}

func (s *UserService) Followers(ctx context.Context, username string) ([]*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	followers, err := s.follows.ListFollowers(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list followers of %s: %w", username, err)
	}
	if followers == nil {
		followers = []*domain.User{}
	}
	return followers, nil
}

func (s *UserService) Following(ctx context.Context, username string) ([]*domain.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	following, err := s.follows.ListFollowing(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list following of %s: %w", username, err)
	}
	if following == nil {
		following = []*domain.User{}
	}
	return following, nil
}

// Activity returns the newest entries of a user's activity log.
func (s *UserService) Activity(ctx context.Context, username string, limit int) ([]*domain.Activity, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultActivityLimit
	}
	if limit > maxActivityLimit {
		limit = maxActivityLimit
	}
	if s.activities == nil {
		return []*domain.Activity{}, nil
	}

	entries, err := s.activities.ListByActor(ctx, user.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity of %s: %w", username, err)
	}
	if entries == nil {
		entries = []*domain.Activity{}
	}
	return entries, nil
}

func viewerID(viewer *domain.User) int64 {
	if viewer == nil {
		return 0
	}
	return viewer.ID
}
