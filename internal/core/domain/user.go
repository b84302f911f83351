package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Media references a binary object held by the external storage service:
// the storage key plus the URL it is served from.
type Media struct {
	ID  string `json:"public_id" bson:"public_id"`
	URL string `json:"url" bson:"url"`
}

// PlaylistItem is a course saved on a user's playlist. The poster URL is
// denormalised at add time so playlist rendering needs no course lookup.
type PlaylistItem struct {
	CourseID primitive.ObjectID `json:"course" bson:"course"`
	Poster   string             `json:"poster" bson:"poster"`
}

// User is the account document. The password hash and the reset-token
// fields never leave the server; list queries additionally project the
// hash out at the repository level.
type User struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Email          string             `json:"email" bson:"email"`
	PasswordHash   string             `json:"-" bson:"password_hash,omitempty"`
	Role           string             `json:"role" bson:"role"`
	Avatar         Media              `json:"avatar" bson:"avatar"`
	Playlist       []PlaylistItem     `json:"playlist" bson:"playlist"`
	ResetTokenHash string             `json:"-" bson:"reset_token_hash,omitempty"`
	ResetExpire    time.Time          `json:"-" bson:"reset_expire,omitempty"`
	CreatedAt      time.Time          `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at" bson:"updated_at"`
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// InPlaylist reports whether the course is already saved on the playlist.
func (u *User) InPlaylist(courseID primitive.ObjectID) bool {
	for _, item := range u.Playlist {
		if item.CourseID == courseID {
			return true
		}
	}
	return false
}
