package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Lecture is owned by exactly one Course and lives embedded in it.
type Lecture struct {
	ID          primitive.ObjectID `json:"id" bson:"id"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Video       Media              `json:"video" bson:"video"`
}

// Course is the content document. Lectures are embedded sub-documents;
// list queries project them out and expose only the summary fields.
type Course struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title       string             `json:"title" bson:"title"`
	Description string             `json:"description" bson:"description"`
	Category    string             `json:"category" bson:"category"`
	CreatedBy   string             `json:"created_by" bson:"created_by"`
	Poster      Media              `json:"poster" bson:"poster"`
	Lectures    []Lecture          `json:"lectures,omitempty" bson:"lectures,omitempty"`
	NumOfVideos int                `json:"num_of_videos" bson:"num_of_videos"`
	Views       int                `json:"views" bson:"views"`
	CreatedAt   time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at" bson:"updated_at"`
}

// FindLecture returns the embedded lecture with the given id, or nil.
func (c *Course) FindLecture(lectureID primitive.ObjectID) *Lecture {
	for i := range c.Lectures {
		if c.Lectures[i].ID == lectureID {
			return &c.Lectures[i]
		}
	}
	return nil
}
