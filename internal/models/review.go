package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review represents a user's review of a scholarship. Owned by the authoring
// user; deletable by the owner or a moderator.
type Review struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ScholarshipID   primitive.ObjectID `bson:"scholarshipId" json:"scholarshipId"`
	ScholarshipName string             `bson:"scholarshipName,omitempty" json:"scholarshipName,omitempty"`
	UniversityName  string             `bson:"universityName,omitempty" json:"universityName,omitempty"`
	UserEmail       string             `bson:"userEmail" json:"userEmail"`
	UserName        string             `bson:"userName,omitempty" json:"userName,omitempty"`
	UserImage       string             `bson:"userImage,omitempty" json:"userImage,omitempty"`
	Rating          int                `bson:"rating" json:"rating"`
	Comment         string             `bson:"comment" json:"comment"`
	ReviewDate      time.Time          `bson:"reviewDate" json:"reviewDate"`
	UpdatedAt       time.Time          `bson:"updatedAt" json:"updatedAt"`
}
