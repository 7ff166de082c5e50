package mongodb

import (
	"regexp"

	"github.com/scholarsource/scholarsource-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// buildScholarshipFilter translates a search query into a Mongo filter.
// The text search is a case-insensitive substring match ORed across
// scholarshipName, universityName and degree; the equality filters are ANDed
// on top. An empty search string imposes no text constraint.
func buildScholarshipFilter(q models.ScholarshipQuery) bson.M {
	filter := bson.M{}
	if q.Search != "" {
		// QuoteMeta so user input is matched literally, not as a pattern.
		regex := primitive.Regex{Pattern: regexp.QuoteMeta(q.Search), Options: "i"}
		filter["$or"] = []bson.M{
			{"scholarshipName": regex},
			{"universityName": regex},
			{"degree": regex},
		}
	}
	if q.Country != "" {
		filter["universityCountry"] = q.Country
	}
	if q.Category != "" {
		filter["scholarshipCategory"] = q.Category
	}
	if q.Degree != "" {
		filter["degree"] = q.Degree
	}
	return filter
}

// buildScholarshipFindOptions translates the sort key and pagination into
// find options. An unknown sort key yields no explicit sort (natural store
// order). Expects a normalized query (page and limit >= 1).
func buildScholarshipFindOptions(q models.ScholarshipQuery) *options.FindOptions {
	opts := options.Find().
		SetSkip(int64((q.Page - 1) * q.Limit)).
		SetLimit(int64(q.Limit))

	switch q.SortBy {
	case models.SortFeesAsc:
		opts.SetSort(bson.D{{Key: "applicationFees", Value: 1}})
	case models.SortFeesDesc:
		opts.SetSort(bson.D{{Key: "applicationFees", Value: -1}})
	case models.SortNewest:
		opts.SetSort(bson.D{{Key: "scholarshipPostDate", Value: -1}})
	}
	return opts
}
