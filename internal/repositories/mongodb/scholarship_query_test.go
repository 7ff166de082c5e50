package mongodb

import (
	"testing"

	"github.com/scholarsource/scholarsource-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestBuildScholarshipFilterEmptyQuery(t *testing.T) {
	filter := buildScholarshipFilter(models.ScholarshipQuery{})
	assert.Empty(t, filter)
}

func TestBuildScholarshipFilterSearch(t *testing.T) {
	filter := buildScholarshipFilter(models.ScholarshipQuery{Search: "MIT"})

	or, ok := filter["$or"].([]bson.M)
	require.True(t, ok)
	require.Len(t, or, 3)

	regex, ok := or[0]["scholarshipName"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "MIT", regex.Pattern)
	assert.Equal(t, "i", regex.Options)
	assert.Contains(t, or[1], "universityName")
	assert.Contains(t, or[2], "degree")
}

func TestBuildScholarshipFilterQuotesRegexMetacharacters(t *testing.T) {
	filter := buildScholarshipFilter(models.ScholarshipQuery{Search: "c++ (honours)"})

	or := filter["$or"].([]bson.M)
	regex := or[0]["scholarshipName"].(primitive.Regex)
	assert.Equal(t, `c\+\+ \(honours\)`, regex.Pattern)
}

func TestBuildScholarshipFilterIntersectsConstraints(t *testing.T) {
	filter := buildScholarshipFilter(models.ScholarshipQuery{
		Search:   "engineering",
		Country:  "Canada",
		Category: "Merit",
		Degree:   "Masters",
	})

	assert.Contains(t, filter, "$or")
	assert.Equal(t, "Canada", filter["universityCountry"])
	assert.Equal(t, "Merit", filter["scholarshipCategory"])
	assert.Equal(t, "Masters", filter["degree"])
}

func TestBuildScholarshipFindOptionsPagination(t *testing.T) {
	q := models.ScholarshipQuery{Search: "MIT", Page: 2, Limit: 6}
	q.Normalize()

	opts := buildScholarshipFindOptions(q)
	require.NotNil(t, opts.Skip)
	require.NotNil(t, opts.Limit)
	assert.Equal(t, int64(6), *opts.Skip)
	assert.Equal(t, int64(6), *opts.Limit)
}

func TestBuildScholarshipFindOptionsSort(t *testing.T) {
	tests := []struct {
		name   string
		sortBy string
		key    string
		value  int
	}{
		{"fees ascending", models.SortFeesAsc, "applicationFees", 1},
		{"fees descending", models.SortFeesDesc, "applicationFees", -1},
		{"newest first", models.SortNewest, "scholarshipPostDate", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := buildScholarshipFindOptions(models.ScholarshipQuery{SortBy: tt.sortBy, Page: 1, Limit: 10})
			sort, ok := opts.Sort.(bson.D)
			require.True(t, ok)
			require.Len(t, sort, 1)
			assert.Equal(t, tt.key, sort[0].Key)
			assert.Equal(t, tt.value, sort[0].Value)
		})
	}
}

func TestBuildScholarshipFindOptionsUnknownSort(t *testing.T) {
	opts := buildScholarshipFindOptions(models.ScholarshipQuery{SortBy: "popularity", Page: 1, Limit: 10})
	assert.Nil(t, opts.Sort)
}
