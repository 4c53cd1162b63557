package query

import (
	"net/url"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/GoRecipe-Admin/GoRecipe-Admin/internal/db/schema"
)

func testSchema() *schema.Schema {
	return &schema.Schema{
		Name:  "dish",
		Table: "dishes",
		Attributes: []schema.Attribute{
			{Name: "title", Type: schema.String},
			{Name: "portions", Type: schema.Integer},
			{Name: "vegan", Type: schema.Boolean, Column: "is_vegan"},
			{Name: "size_in", Type: schema.Integer},
		},
		Relations: []schema.Relation{
			{Alias: "chef", Nature: schema.ManyToOne, Target: "chefs", Column: "chef_id"},
			{Alias: "tags", Nature: schema.ManyToMany, Target: "tags",
				JoinTable: "dishes_tags", JoinForeignKey: "dish_id", JoinReferences: "tag_id"},
		},
	}
}

func TestParse(t *testing.T) {
	s := testSchema()

	testCases := []struct {
		name          string
		params        url.Values
		expected      Filters
		expectedError error
	}{
		{
			name:     "empty",
			params:   url.Values{},
			expected: Filters{Limit: NoLimit},
		},
		{
			name:   "equality is coerced",
			params: url.Values{"portions": {"4"}, "vegan": {"true"}},
			expected: Filters{
				Where: []Condition{
					{Field: "portions", Column: "portions", Operator: Eq, Value: int64(4)},
					{Field: "vegan", Column: "is_vegan", Operator: Eq, Value: true},
				},
				Limit: NoLimit,
			},
		},
		{
			name:   "operators",
			params: url.Values{"portions_gte": {"2"}, "title_in": {"a", "b"}, "chef_null": {"true"}},
			expected: Filters{
				Where: []Condition{
					{Field: "chef", Column: "chef_id", Operator: Null, Value: true},
					{Field: "portions", Column: "portions", Operator: Gte, Value: int64(2)},
					{Field: "title", Column: "title", Operator: In, Value: []any{"a", "b"}},
				},
				Limit: NoLimit,
			},
		},
		{
			name:   "field ending in an operator suffix",
			params: url.Values{"size_in": {"3"}},
			expected: Filters{
				Where: []Condition{{Field: "size_in", Column: "size_in", Operator: Eq, Value: int64(3)}},
				Limit: NoLimit,
			},
		},
		{
			name:   "paging and sort",
			params: url.Values{"_sort": {"title:desc,portions"}, "_start": {"10"}, "_limit": {"5"}, "_q": {"ignored"}},
			expected: Filters{
				Sort:  []Sort{{Column: "title", Desc: true}, {Column: "portions"}},
				Start: 10,
				Limit: 5,
			},
		},
		{
			name:     "negative limit means none",
			params:   url.Values{"_limit": {"-1"}},
			expected: Filters{Limit: NoLimit},
		},
		{
			name:          "unknown field",
			params:        url.Values{"colour": {"red"}},
			expectedError: schema.ErrValidation,
		},
		{
			name:          "join table relation is not filterable",
			params:        url.Values{"tags": {"x"}},
			expectedError: schema.ErrValidation,
		},
		{
			name:          "bad integer",
			params:        url.Values{"portions_lt": {"many"}},
			expectedError: schema.ErrValidation,
		},
		{
			name:          "bad start",
			params:        url.Values{"_start": {"x"}},
			expectedError: schema.ErrValidation,
		},
		{
			name:          "negative start",
			params:        url.Values{"_start": {"-5"}},
			expectedError: schema.ErrValidation,
		},
		{
			name:          "bad null flag",
			params:        url.Values{"chef_null": {"maybe"}},
			expectedError: schema.ErrValidation,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f, err := Parse(s, tc.params)
			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expected, f)
		})
	}
}

func TestPopulate(t *testing.T) {
	assert.Nil(t, Populate(url.Values{}))
	assert.Equal(t, []string{}, Populate(url.Values{ParamPopulate: {""}}))
	assert.Equal(t, []string{"chef", "tags"}, Populate(url.Values{ParamPopulate: {"chef, tags"}}))
	assert.Equal(t, []string{"chef", "tags"}, Populate(url.Values{ParamPopulate: {"chef", "tags"}}))
}

func TestApply(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	testCases := []struct {
		name        string
		filters     Filters
		expectedSQL string
	}{
		{
			name:        "no filters",
			filters:     Filters{Limit: NoLimit},
			expectedSQL: "SELECT * FROM `dishes`",
		},
		{
			name: "where and page",
			filters: Filters{
				Where: []Condition{
					{Column: "title", Operator: Contains, Value: "Soup"},
					{Column: "portions", Operator: Nin, Value: []any{int64(1), int64(2)}},
				},
				Sort:  []Sort{{Column: "portions", Desc: true}},
				Start: 5,
				Limit: 10,
			},
			expectedSQL: "SELECT * FROM `dishes` WHERE LOWER(`title`) LIKE \"%soup%\" AND `portions` NOT IN (1,2) " +
				"ORDER BY `portions` DESC LIMIT 10 OFFSET 5",
		},
		{
			name: "offset without limit",
			filters: Filters{
				Where: []Condition{{Column: "chef_id", Operator: Null, Value: false}},
				Start: 3,
				Limit: NoLimit,
			},
			expectedSQL: "SELECT * FROM `dishes` WHERE `chef_id` IS NOT NULL LIMIT 2147483647 OFFSET 3",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
				var rows []map[string]any

				return tc.filters.Apply(tx.Table("dishes")).Find(&rows)
			})

			assert.Equal(t, tc.expectedSQL, sql)
		})
	}
}

func TestApplyWhereSkipsPage(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	f := Filters{
		Where: []Condition{{Column: "portions", Operator: Gt, Value: int64(2)}},
		Sort:  []Sort{{Column: "title"}},
		Limit: 1,
	}

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		var n int64

		return f.ApplyWhere(tx.Table("dishes")).Count(&n)
	})

	assert.Equal(t, "SELECT count(*) FROM `dishes` WHERE `portions` > 2", sql)
}
