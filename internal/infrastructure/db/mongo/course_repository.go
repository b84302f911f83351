package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/coursehub/marketplace-api/internal/core/domain"
)

const collectionCourses = "courses"

// CourseRepository persists course documents with embedded lectures.
type CourseRepository struct {
	col *mongo.Collection
}

func NewCourseRepository(db *mongo.Database) *CourseRepository {
	return &CourseRepository{col: db.Collection(collectionCourses)}
}

func (r *CourseRepository) Create(ctx context.Context, course *domain.Course) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.InsertOne(ctx, course)
	if err != nil {
		return nil, fmt.Errorf("insert course: %w", err)
	}

	created := *course
	created.ID = res.InsertedID.(primitive.ObjectID)
	return &created, nil
}

// FindAll returns course summaries with the lectures projected out.
func (r *CourseRepository) FindAll(ctx context.Context) ([]domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	projection := options.Find().SetProjection(bson.M{"lectures": 0})
	cur, err := r.col.Find(ctx, bson.M{}, projection)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	defer cur.Close(ctx)

	var courses []domain.Course
	if err := cur.All(ctx, &courses); err != nil {
		return nil, fmt.Errorf("decode courses: %w", err)
	}
	return courses, nil
}

func (r *CourseRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*domain.Course, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var course domain.Course
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&course); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrCourseNotFound
		}
		return nil, fmt.Errorf("find course: %w", err)
	}
	return &course, nil
}

func (r *CourseRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepository) IncrementViews(ctx context.Context, id primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{"$inc": bson.M{"views": 1}})
}

// PushLecture appends the lecture and keeps num_of_videos in step.
func (r *CourseRepository) PushLecture(ctx context.Context, id primitive.ObjectID, lecture domain.Lecture) error {
	return r.updateOne(ctx, id, bson.M{
		"$push": bson.M{"lectures": lecture},
		"$inc":  bson.M{"num_of_videos": 1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *CourseRepository) PullLecture(ctx context.Context, id primitive.ObjectID, lectureID primitive.ObjectID) error {
	return r.updateOne(ctx, id, bson.M{
		"$pull": bson.M{"lectures": bson.M{"id": lectureID}},
		"$inc":  bson.M{"num_of_videos": -1},
		"$set":  bson.M{"updated_at": time.Now().UTC()},
	})
}

func (r *CourseRepository) updateOne(ctx context.Context, id primitive.ObjectID, update bson.M) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCourseNotFound
	}
	return nil
}
