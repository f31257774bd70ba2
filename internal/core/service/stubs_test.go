package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/questionhub/qa-api/internal/core/domain"
	"github.com/questionhub/qa-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) conflict(u *domain.User) error {
	for _, existing := range r.users {
		if existing.ID == u.ID {
			continue
		}
		if existing.Email == u.Email {
			return domain.ErrEmailTaken
		}
		if existing.Username == u.Username {
			return domain.ErrUsernameTaken
		}
	}
	return nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if err := r.conflict(user); err != nil {
		return nil, err
	}
	r.nextID++
	stored := cloneUser(user)
	stored.ID = r.nextID
	r.users[stored.ID] = stored
	return cloneUser(stored), nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	if err := r.conflict(user); err != nil {
		return nil, err
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// seed stores a user directly, bypassing hashing.
func (r *stubUserRepo) seed(username, email string) *domain.User {
	u, _ := r.Create(context.Background(), &domain.User{Username: username, Email: email})
	return u
}

// ---------------------------------------------------------------------------
// Follows
// ---------------------------------------------------------------------------

type edge struct{ from, to int64 }

type stubFollowRepo struct {
	users *stubUserRepo
	edges map[edge]struct{}
}

func newStubFollowRepo(users *stubUserRepo) *stubFollowRepo {
	return &stubFollowRepo{users: users, edges: make(map[edge]struct{})}
}

func (r *stubFollowRepo) Follow(_ context.Context, followerID, followeeID int64) error {
	r.edges[edge{followerID, followeeID}] = struct{}{}
	return nil
}

func (r *stubFollowRepo) Unfollow(_ context.Context, followerID, followeeID int64) error {
	delete(r.edges, edge{followerID, followeeID})
	return nil
}

func (r *stubFollowRepo) IsFollowing(_ context.Context, followerID, followeeID int64) (bool, error) {
	_, ok := r.edges[edge{followerID, followeeID}]
	return ok, nil
}

func (r *stubFollowRepo) ListFollowers(_ context.Context, userID int64) ([]*domain.User, error) {
	var out []*domain.User
	for e := range r.edges {
		if e.to == userID {
			out = append(out, cloneUser(r.users.users[e.from]))
		}
	}
	return out, nil
}

func (r *stubFollowRepo) ListFollowing(_ context.Context, userID int64) ([]*domain.User, error) {
	var out []*domain.User
	for e := range r.edges {
		if e.from == userID {
			out = append(out, cloneUser(r.users.users[e.to]))
		}
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Questions and answers
// ---------------------------------------------------------------------------

type stubQuestionRepo struct {
	bySlug    map[string]*domain.Question
	nextID    int64
	createErr []error // popped one per Create call
	answers   *stubAnswerRepo
}

func newStubQuestionRepo() *stubQuestionRepo {
	return &stubQuestionRepo{bySlug: make(map[string]*domain.Question)}
}

func (r *stubQuestionRepo) Create(_ context.Context, q *domain.Question) error {
	if len(r.createErr) > 0 {
		err := r.createErr[0]
		r.createErr = r.createErr[1:]
		if err != nil {
			return err
		}
	}
	if _, ok := r.bySlug[q.Slug]; ok {
		return domain.ErrSlugTaken
	}
	r.nextID++
	q.ID = r.nextID
	clone := *q
	r.bySlug[q.Slug] = &clone
	return nil
}

func (r *stubQuestionRepo) FindBySlug(_ context.Context, slug string, _ int64) (*domain.Question, error) {
	q, ok := r.bySlug[slug]
	if !ok {
		return nil, domain.ErrQuestionNotFound
	}
	clone := *q
	return &clone, nil
}

func (r *stubQuestionRepo) List(_ context.Context, f ports.ListQuestionsFilter) ([]*domain.Question, int64, error) {
	var matched []*domain.Question
	for _, q := range r.bySlug {
		if f.OwnerID != 0 && q.OwnerID != f.OwnerID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(q.Title+" "+q.Body), strings.ToLower(f.Search)) {
			continue
		}
		clone := *q
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID > matched[j].ID })

	total := int64(len(matched))
	if f.Limit <= 0 {
		return matched, total, nil
	}
	skip := (f.Page - 1) * f.Limit
	if skip < 0 {
		skip = 0
	}
	if skip > len(matched) {
		return []*domain.Question{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubQuestionRepo) Update(_ context.Context, q *domain.Question) error {
	if _, ok := r.bySlug[q.Slug]; !ok {
		return domain.ErrQuestionNotFound
	}
	clone := *q
	r.bySlug[q.Slug] = &clone
	return nil
}

func (r *stubQuestionRepo) Delete(_ context.Context, id int64) error {
	for slug, q := range r.bySlug {
		if q.ID == id {
			delete(r.bySlug, slug)
			if r.answers != nil {
				r.answers.deleteByQuestion(id)
			}
			return nil
		}
	}
	return domain.ErrQuestionNotFound
}

// seed stores a question with a fixed slug.
func (r *stubQuestionRepo) seed(slug string, owner *domain.User) *domain.Question {
	q := &domain.Question{Slug: slug, Title: slug, Body: "body", OwnerID: owner.ID, Owner: owner.Username}
	_ = r.Create(context.Background(), q)
	return q
}

type like struct {
	answer uuid.UUID
	user   int64
}

type stubAnswerRepo struct {
	mu      sync.Mutex
	byID    map[uuid.UUID]*domain.Answer
	order   []uuid.UUID
	likes   map[like]struct{}
	clock   time.Time
	findErr error
}

func newStubAnswerRepo() *stubAnswerRepo {
	return &stubAnswerRepo{
		byID:  make(map[uuid.UUID]*domain.Answer),
		likes: make(map[like]struct{}),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (r *stubAnswerRepo) view(a *domain.Answer, viewerID int64) *domain.Answer {
	clone := *a
	clone.LikesCount = r.count(a.ID)
	_, clone.UserHasLiked = r.likes[like{a.ID, viewerID}]
	return &clone
}

func (r *stubAnswerRepo) count(id uuid.UUID) int {
	n := 0
	for l := range r.likes {
		if l.answer == id {
			n++
		}
	}
	return n
}

func (r *stubAnswerRepo) Create(_ context.Context, a *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.QuestionID == a.QuestionID && existing.OwnerID == a.OwnerID {
			return domain.ErrAlreadyAnswered
		}
	}
	r.clock = r.clock.Add(time.Second)
	a.CreatedAt = r.clock
	clone := *a
	r.byID[a.ID] = &clone
	r.order = append(r.order, a.ID)
	return nil
}

func (r *stubAnswerRepo) FindByID(_ context.Context, id uuid.UUID, viewerID int64) (*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAnswerNotFound
	}
	return r.view(a, viewerID), nil
}

func (r *stubAnswerRepo) ListByQuestion(_ context.Context, questionID, viewerID int64) ([]*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Answer
	for _, id := range r.order {
		if a, ok := r.byID[id]; ok && a.QuestionID == questionID {
			out = append(out, r.view(a, viewerID))
		}
	}
	return out, nil
}

func (r *stubAnswerRepo) ListByOwner(_ context.Context, ownerID, viewerID int64) ([]*domain.Answer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Answer
	for _, id := range r.order {
		if a, ok := r.byID[id]; ok && a.OwnerID == ownerID {
			out = append(out, r.view(a, viewerID))
		}
	}
	return out, nil
}

func (r *stubAnswerRepo) Update(_ context.Context, a *domain.Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[a.ID]; !ok {
		return domain.ErrAnswerNotFound
	}
	clone := *a
	r.byID[a.ID] = &clone
	return nil
}

func (r *stubAnswerRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrAnswerNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubAnswerRepo) deleteByQuestion(questionID int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, a := range r.byID {
		if a.QuestionID == questionID {
			delete(r.byID, id)
		}
	}
}

func (r *stubAnswerRepo) ToggleLike(_ context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[answerID]; !ok {
		return domain.LikeState{}, domain.ErrAnswerNotFound
	}
	key := like{answerID, userID}
	_, had := r.likes[key]
	if had {
		delete(r.likes, key)
	} else {
		r.likes[key] = struct{}{}
	}
	return domain.LikeState{Liked: !had, LikeCount: r.count(answerID)}, nil
}

func (r *stubAnswerRepo) Like(_ context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[answerID]; !ok {
		return domain.LikeState{}, domain.ErrAnswerNotFound
	}
	r.likes[like{answerID, userID}] = struct{}{}
	return domain.LikeState{Liked: true, LikeCount: r.count(answerID)}, nil
}

func (r *stubAnswerRepo) Unlike(_ context.Context, answerID uuid.UUID, userID int64) (domain.LikeState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[answerID]; !ok {
		return domain.LikeState{}, domain.ErrAnswerNotFound
	}
	delete(r.likes, like{answerID, userID})
	return domain.LikeState{Liked: false, LikeCount: r.count(answerID)}, nil
}

// ---------------------------------------------------------------------------
// Tokens and activity
// ---------------------------------------------------------------------------

type stubTokenStore struct {
	live    map[string]int64
	saveErr error
}

func newStubTokenStore() *stubTokenStore {
	return &stubTokenStore{live: make(map[string]int64)}
}

func (s *stubTokenStore) Save(_ context.Context, jti string, userID int64, _ time.Duration) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.live[jti] = userID
	return nil
}

func (s *stubTokenStore) Consume(_ context.Context, jti string) (int64, bool, error) {
	id, ok := s.live[jti]
	delete(s.live, jti)
	return id, ok, nil
}

func (s *stubTokenStore) Revoke(_ context.Context, jti string) error {
	delete(s.live, jti)
	return nil
}

type stubActivityRepo struct {
	entries   []*domain.Activity
	insertErr error
}

func (r *stubActivityRepo) Insert(_ context.Context, a *domain.Activity) error {
	if r.insertErr != nil {
		return r.insertErr
	}
	r.entries = append(r.entries, a)
	return nil
}

func (r *stubActivityRepo) ListByActor(_ context.Context, actorID int64, limit int) ([]*domain.Activity, error) {
	var out []*domain.Activity
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		if r.entries[i].ActorID == actorID {
			out = append(out, r.entries[i])
		}
	}
	return out, nil
}

func (r *stubActivityRepo) kinds() []domain.ActivityKind {
	out := make([]domain.ActivityKind, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Kind
	}
	return out
}

func newAnswerID() uuid.UUID { return uuid.New() }
