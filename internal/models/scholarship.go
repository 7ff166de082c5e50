package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Scholarship represents a posted scholarship opportunity.
type Scholarship struct {
	ID                  primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	ScholarshipName     string             `bson:"scholarshipName" json:"scholarshipName" binding:"required"`
	UniversityName      string             `bson:"universityName" json:"universityName" binding:"required"`
	UniversityCountry   string             `bson:"universityCountry" json:"universityCountry" binding:"required"`
	UniversityCity      string             `bson:"universityCity,omitempty" json:"universityCity,omitempty"`
	UniversityImage     string             `bson:"universityImage,omitempty" json:"universityImage,omitempty"`
	UniversityWorldRank int                `bson:"universityWorldRank,omitempty" json:"universityWorldRank,omitempty"`
	SubjectCategory     string             `bson:"subjectCategory,omitempty" json:"subjectCategory,omitempty"`
	ScholarshipCategory string             `bson:"scholarshipCategory" json:"scholarshipCategory" binding:"required"`
	Degree              string             `bson:"degree" json:"degree" binding:"required"`
	TuitionFees         float64            `bson:"tuitionFees,omitempty" json:"tuitionFees,omitempty"`
	ApplicationFees     float64            `bson:"applicationFees" json:"applicationFees"`
	ServiceCharge       float64            `bson:"serviceCharge,omitempty" json:"serviceCharge,omitempty"`
	ApplicationDeadline time.Time          `bson:"applicationDeadline" json:"applicationDeadline"`
	ScholarshipPostDate time.Time          `bson:"scholarshipPostDate" json:"scholarshipPostDate"`
	PostedUserEmail     string             `bson:"postedUserEmail" json:"postedUserEmail"`
	Description         string             `bson:"description,omitempty" json:"description,omitempty"`
	CreatedAt           time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt           time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Sort keys accepted by the scholarship search endpoint.
const (
	SortFeesAsc  = "fees_asc"
	SortFeesDesc = "fees_desc"
	SortNewest   = "date"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// ScholarshipQuery carries the search, filter, sort and pagination parameters
// of a scholarship listing request.
type ScholarshipQuery struct {
	Search   string
	Country  string
	Category string
	Degree   string
	SortBy   string
	Page     int
	Limit    int
}

// Normalize coerces out-of-range pagination values to their defaults.
func (q *ScholarshipQuery) Normalize() {
	if q.Page < defaultPage {
		q.Page = defaultPage
	}
	if q.Limit < 1 {
		q.Limit = defaultLimit
	}
}

// ScholarshipPage is one page of search results plus the pagination totals the
// frontend renders its pager from.
type ScholarshipPage struct {
	Scholarships []*Scholarship `json:"scholarships"`
	Total        int64          `json:"total"`
	TotalPages   int            `json:"totalPages"`
	Page         int            `json:"page"`
	Limit        int            `json:"limit"`
}
