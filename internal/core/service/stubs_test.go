package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/core/domain"
	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// --- user repository stub ---

type stubUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.Playlist = append([]domain.PlaylistItem(nil), u.Playlist...)
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	copy := cloneUser(user)
	if copy.ID.IsZero() {
		copy.ID = primitive.NewObjectID()
	}
	r.users[copy.ID] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindAll(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.users))
	for _, u := range r.users {
		clone := cloneUser(u)
		clone.PasswordHash = ""
		out = append(out, *clone)
	}
	return out, nil
}

func (r *stubUserRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) get(id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, name, email string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	if name != "" {
		u.Name = name
	}
	if email != "" {
		u.Email = email
	}
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) UpdateAvatar(_ context.Context, id primitive.ObjectID, avatar domain.Media) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Avatar = avatar
	return nil
}

func (r *stubUserRepo) UpdateRole(_ context.Context, id primitive.ObjectID, role string) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Role = role
	return nil
}

func (r *stubUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, hash string, expire time.Time) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.ResetTokenHash = hash
	u.ResetExpire = expire
	return nil
}

func (r *stubUserRepo) ConsumeResetToken(_ context.Context, hash string, now time.Time, passwordHash string) error {
	for _, u := range r.users {
		if u.ResetTokenHash == hash && now.Before(u.ResetExpire) {
			u.PasswordHash = passwordHash
			u.ResetTokenHash = ""
			u.ResetExpire = time.Time{}
			return nil
		}
	}
	return domain.ErrResetTokenInvalid
}

func (r *stubUserRepo) PushPlaylistItem(_ context.Context, id primitive.ObjectID, item domain.PlaylistItem) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	u.Playlist = append(u.Playlist, item)
	return nil
}

func (r *stubUserRepo) PullPlaylistItem(_ context.Context, id primitive.ObjectID, courseID primitive.ObjectID) error {
	u, err := r.get(id)
	if err != nil {
		return err
	}
	kept := u.Playlist[:0]
	for _, item := range u.Playlist {
		if item.CourseID != courseID {
			kept = append(kept, item)
		}
	}
	u.Playlist = kept
	return nil
}

// --- course repository stub ---

type stubCourseRepo struct {
	courses map[primitive.ObjectID]*domain.Course
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[primitive.ObjectID]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Lectures = append([]domain.Lecture(nil), c.Lectures...)
	return &clone
}

func (r *stubCourseRepo) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	copy := cloneCourse(course)
	if copy.ID.IsZero() {
		copy.ID = primitive.NewObjectID()
	}
	r.courses[copy.ID] = cloneCourse(copy)
	return cloneCourse(copy), nil
}

func (r *stubCourseRepo) FindAll(_ context.Context) ([]domain.Course, error) {
	out := make([]domain.Course, 0, len(r.courses))
	for _, c := range r.courses {
		clone := cloneCourse(c)
		clone.Lectures = nil
		out = append(out, *clone)
	}
	return out, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.Course, error) {
	if c, ok := r.courses[id]; ok {
		return cloneCourse(c), nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) IncrementViews(_ context.Context, id primitive.ObjectID) error {
	c, ok := r.courses[id]
	if !ok {
		return domain.ErrCourseNotFound
	}
	c.Views++
	return nil
}

func (r *stubCourseRepo) PushLecture(_ context.Context, id primitive.ObjectID, lecture domain.Lecture) error {
	c, ok := r.courses[id]
	if !ok {
		return domain.ErrCourseNotFound
	}
	c.Lectures = append(c.Lectures, lecture)
	c.NumOfVideos++
	return nil
}

func (r *stubCourseRepo) PullLecture(_ context.Context, id primitive.ObjectID, lectureID primitive.ObjectID) error {
	c, ok := r.courses[id]
	if !ok {
		return domain.ErrCourseNotFound
	}
	kept := c.Lectures[:0]
	for _, l := range c.Lectures {
		if l.ID != lectureID {
			kept = append(kept, l)
		}
	}
	c.Lectures = kept
	c.NumOfVideos = len(kept)
	return nil
}

// --- storage stub ---

type stubStorage struct {
	objects    map[string]string
	uploads    int
	failUpload bool
	failDelete bool
}

func newStubStorage() *stubStorage {
	return &stubStorage{objects: make(map[string]string)}
}

func (s *stubStorage) Upload(_ context.Context, folder string, file ports.FileInput) (domain.Media, error) {
	if s.failUpload {
		return domain.Media{}, errors.New("storage unavailable")
	}
	if file.Content != nil {
		_, _ = io.Copy(io.Discard, file.Content)
	}
	s.uploads++
	id := fmt.Sprintf("%s/object-%d", folder, s.uploads)
	s.objects[id] = file.Name
	return domain.Media{ID: id, URL: "https://cdn.test/" + id}, nil
}

func (s *stubStorage) Delete(_ context.Context, id string) error {
	if s.failDelete {
		return errors.New("storage unavailable")
	}
	delete(s.objects, id)
	return nil
}

// --- mailer and limiter stubs ---

type stubMailer struct {
	to      []string
	bodies  []string
	failure error
}

func (m *stubMailer) Send(_ context.Context, to, _, body string) error {
	if m.failure != nil {
		return m.failure
	}
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

type stubLimiter struct {
	denied bool
}

func (l *stubLimiter) Allow(_ context.Context, _ string) (bool, error) {
	return !l.denied, nil
}
