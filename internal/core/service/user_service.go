package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/coursehub/marketplace-api/internal/api/metrics"
	"github.com/coursehub/marketplace-api/internal/core/domain"
	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// UserService implements all account operations. Every operation is a
// single-document read-modify-write against the users collection; the
// storage and mail collaborators are best-effort outside that write.
type UserService struct {
	users       ports.UserRepository
	courses     ports.CourseRepository
	tokens      ports.TokenService
	storage     ports.MediaStorage
	mailer      ports.Mailer
	limiter     ports.ResetLimiter
	frontendURL string
	logger      zerolog.Logger
}

func NewUserService(
	users ports.UserRepository,
	courses ports.CourseRepository,
	tokens ports.TokenService,
	storage ports.MediaStorage,
	mailer ports.Mailer,
	limiter ports.ResetLimiter,
	frontendURL string,
	logger zerolog.Logger,
) *UserService {
	return &UserService{
		users:       users,
		courses:     courses,
		tokens:      tokens,
		storage:     storage,
		mailer:      mailer,
		limiter:     limiter,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Register creates the account, stores the avatar and opens a session.
// The avatar upload happens before the insert so a storage failure never
// leaves a document referencing missing media.
func (s *UserService) Register(ctx context.Context, name, email, password string, avatar ports.FileInput) (*domain.User, string, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, "", domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", err
	}

	media, err := s.storage.Upload(ctx, "avatars", avatar)
	if err != nil {
		return nil, "", fmt.Errorf("upload avatar: %w", err)
	}
	metrics.MediaUploadsTotal.WithLabelValues("avatar").Inc()

	now := time.Now().UTC()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
		Avatar:       media,
		Playlist:     []domain.PlaylistItem{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := s.tokens.IssueSession(created.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	metrics.UsersRegisteredTotal.Inc()
	s.logger.Info().Str("user_id", created.ID.Hex()).Msg("user registered")
	return created, token, nil
}

// Login verifies credentials and opens a session. Unknown email and wrong
// password collapse into the same error so neither case is disclosed.
func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueSession(user.ID.Hex())
	if err != nil {
		return nil, "", err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return user, token, nil
}

func (s *UserService) ChangePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return domain.ErrPasswordMismatch
	}

	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(oldPassword)) != nil {
		return domain.ErrPasswordIncorrect
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, id, string(hash))
}

// UpdateProfile applies a partial update: empty fields are left untouched.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, email string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	if name == "" && email == "" {
		return nil
	}
	return s.users.UpdateProfile(ctx, id, name, email)
}

// UpdateAvatar uploads the replacement before touching the document and
// only then releases the old object. A failed delete leaves a stale
// object behind, which is logged but never fails the request.
func (s *UserService) UpdateAvatar(ctx context.Context, userID string, avatar ports.FileInput) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	media, err := s.storage.Upload(ctx, "avatars", avatar)
	if err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}
	metrics.MediaUploadsTotal.WithLabelValues("avatar").Inc()

	if err := s.users.UpdateAvatar(ctx, id, media); err != nil {
		return err
	}

	s.releaseMedia(ctx, "avatar", user.Avatar)
	return nil
}

// ForgotPassword issues a reset token, persists its hash and mails the
// plaintext. An unknown email is reported to the caller as not found.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return err
	}

	ok, err := s.limiter.Allow(ctx, email)
	if err != nil {
		return fmt.Errorf("reset limiter: %w", err)
	}
	if !ok {
		return domain.ErrTooManyResetRequests
	}

	plaintext, hash, expire, err := s.tokens.IssueReset()
	if err != nil {
		return err
	}
	if err := s.users.SetResetToken(ctx, user.ID, hash, expire); err != nil {
		return err
	}

	url := fmt.Sprintf("%s/resetpassword/%s", s.frontendURL, plaintext)
	body := fmt.Sprintf("Click on the link to reset your password. %s. If you have not requested this, please ignore it.", url)
	if err := s.mailer.Send(ctx, user.Email, "CourseHub Reset Password", body); err != nil {
		return fmt.Errorf("send reset mail: %w", err)
	}

	metrics.PasswordResetsTotal.WithLabelValues("requested").Inc()
	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("password reset requested")
	return nil
}

// ResetPassword consumes the token. Matching the hash, checking the
// expiry, installing the new password and clearing the reset fields
// happen in one atomic document update, so a token can never be replayed.
func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	err = s.users.ConsumeResetToken(ctx, s.tokens.HashReset(token), time.Now().UTC(), string(hash))
	if err != nil {
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("completed").Inc()
	return nil
}

func (s *UserService) AddToPlaylist(ctx context.Context, userID, courseID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	cid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}

	course, err := s.courses.FindByID(ctx, cid)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if user.InPlaylist(course.ID) {
		return domain.ErrPlaylistDuplicate
	}

	return s.users.PushPlaylistItem(ctx, uid, domain.PlaylistItem{
		CourseID: course.ID,
		Poster:   course.Poster.URL,
	})
}

// RemoveFromPlaylist is idempotent: a course id that is not on the
// playlist leaves it unchanged and still succeeds.
func (s *UserService) RemoveFromPlaylist(ctx context.Context, userID, courseID string) error {
	uid, err := parseUserID(userID)
	if err != nil {
		return err
	}
	cid, err := primitive.ObjectIDFromHex(courseID)
	if err != nil {
		return domain.ErrCourseNotFound
	}
	return s.users.PullPlaylistItem(ctx, uid, cid)
}

func (s *UserService) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.users.FindAll(ctx)
}

// ToggleRole flips between the two defined roles; no other role value can
// ever be assigned through this path.
func (s *UserService) ToggleRole(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	role := domain.RoleAdmin
	if user.IsAdmin() {
		role = domain.RoleUser
	}
	return s.users.UpdateRole(ctx, id, role)
}

// DeleteUser releases the avatar and then removes the document. The two
// steps are not transactional: a failed storage delete is logged as an
// inconsistency and the document delete proceeds regardless.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	id, err := parseUserID(userID)
	if err != nil {
		return err
	}
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.releaseMedia(ctx, "avatar", user.Avatar)

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id.Hex()).Msg("user deleted")
	return nil
}

func (s *UserService) releaseMedia(ctx context.Context, kind string, media domain.Media) {
	if media.ID == "" {
		return
	}
	if err := s.storage.Delete(ctx, media.ID); err != nil {
		metrics.MediaDeleteFailuresTotal.WithLabelValues(kind).Inc()
		s.logger.Warn().Err(err).Str("media_id", media.ID).Msg("orphaned storage object")
	}
}

func parseUserID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrUserNotFound
	}
	return oid, nil
}
