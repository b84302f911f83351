package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/coursehub/marketplace-api/internal/api/metrics"
	"github.com/coursehub/marketplace-api/internal/core/domain"
	"github.com/coursehub/marketplace-api/internal/core/ports"
)

// CourseService implements course and embedded-lecture content management.
// Media uploads always complete before any document mutation; media
// deletes after a successful mutation are best-effort.
type CourseService struct {
	repo    ports.CourseRepository
	storage ports.MediaStorage
	logger  zerolog.Logger
}

func NewCourseService(repo ports.CourseRepository, storage ports.MediaStorage, logger zerolog.Logger) *CourseService {
	return &CourseService{repo: repo, storage: storage, logger: logger}
}

func (s *CourseService) Create(ctx context.Context, title, description, category, createdBy string, poster ports.FileInput) (*domain.Course, error) {
	media, err := s.storage.Upload(ctx, "posters", poster)
	if err != nil {
		return nil, fmt.Errorf("upload poster: %w", err)
	}
	metrics.MediaUploadsTotal.WithLabelValues("poster").Inc()

	now := time.Now().UTC()
	course := &domain.Course{
		Title:       title,
		Description: description,
		Category:    category,
		CreatedBy:   createdBy,
		Poster:      media,
		Lectures:    []domain.Lecture{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repo.Create(ctx, course)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("course_id", created.ID.Hex()).Str("title", title).Msg("course created")
	return created, nil
}

func (s *CourseService) List(ctx context.Context) ([]domain.Course, error) {
	return s.repo.FindAll(ctx)
}

// Get returns the full course including lectures and counts the view.
// The view increment is best-effort and never fails the read.
func (s *CourseService) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	id, err := parseCourseID(courseID)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.repo.IncrementViews(ctx, id); err != nil {
		s.logger.Warn().Err(err).Str("course_id", courseID).Msg("view count not updated")
	}
	return course, nil
}

func (s *CourseService) AddLecture(ctx context.Context, courseID, title, description string, video ports.FileInput) (*domain.Course, error) {
	id, err := parseCourseID(courseID)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	media, err := s.storage.Upload(ctx, "lectures", video)
	if err != nil {
		return nil, fmt.Errorf("upload lecture video: %w", err)
	}
	metrics.MediaUploadsTotal.WithLabelValues("video").Inc()

	lecture := domain.Lecture{
		ID:          primitive.NewObjectID(),
		Title:       title,
		Description: description,
		Video:       media,
	}
	if err := s.repo.PushLecture(ctx, id, lecture); err != nil {
		return nil, err
	}

	course.Lectures = append(course.Lectures, lecture)
	course.NumOfVideos = len(course.Lectures)
	return course, nil
}

// Delete releases the poster and every lecture video, then removes the
// document. Storage failures are logged and do not block the deletion.
func (s *CourseService) Delete(ctx context.Context, courseID string) error {
	id, err := parseCourseID(courseID)
	if err != nil {
		return err
	}
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	s.releaseMedia(ctx, "poster", course.Poster)
	for _, lecture := range course.Lectures {
		s.releaseMedia(ctx, "video", lecture.Video)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("course_id", courseID).Msg("course deleted")
	return nil
}

func (s *CourseService) DeleteLecture(ctx context.Context, courseID, lectureID string) error {
	cid, err := parseCourseID(courseID)
	if err != nil {
		return err
	}
	lid, err := primitive.ObjectIDFromHex(lectureID)
	if err != nil {
		return domain.ErrLectureNotFound
	}

	course, err := s.repo.FindByID(ctx, cid)
	if err != nil {
		return err
	}
	lecture := course.FindLecture(lid)
	if lecture == nil {
		return domain.ErrLectureNotFound
	}

	s.releaseMedia(ctx, "video", lecture.Video)

	return s.repo.PullLecture(ctx, cid, lid)
}

func (s *CourseService) releaseMedia(ctx context.Context, kind string, media domain.Media) {
	if media.ID == "" {
		return
	}
	if err := s.storage.Delete(ctx, media.ID); err != nil {
		metrics.MediaDeleteFailuresTotal.WithLabelValues(kind).Inc()
		s.logger.Warn().Err(err).Str("media_id", media.ID).Msg("orphaned storage object")
	}
}

func parseCourseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.ErrCourseNotFound
	}
	return oid, nil
}
