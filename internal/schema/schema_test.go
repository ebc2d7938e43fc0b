package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validFile = `[
  {
    "id": 1,
    "title": "Noisy AC",
    "description": "AC unit in room 4 buzzes loudly",
    "author": "J. Doe",
    "status": "open",
    "upvotes": 1,
    "downvotes": 0,
    "created_at": "2024-03-01T09:00:00"
  }
]`

func TestValidate_ValidFile(t *testing.T) {
	issues, err := Validate([]byte(validFile))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidate_EmptyList(t *testing.T) {
	issues, err := Validate([]byte(`[]`))
	require.NoError(t, err)
	assert.Empty(t, issues)
}

func TestValidate_NotJSON(t *testing.T) {
	issues, err := Validate([]byte(`garbage{{{`))
	require.NoError(t, err)
	require.NotEmpty(t, issues)
	assert.Contains(t, issues[0].Message, "not valid JSON")
}

func TestValidate_BareObjectInsteadOfList(t *testing.T) {
	issues, err := Validate([]byte(`{"id": 1}`))
	require.NoError(t, err)
	assert.NotEmpty(t, issues)
}

func TestValidate_BadRecords(t *testing.T) {
	cases := []struct {
		name string
		file string
	}{
		{"empty title", `[{"id":1,"title":"","description":"d","author":"a","status":"open","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:00:00"}]`},
		{"bad status", `[{"id":1,"title":"t","description":"d","author":"a","status":"closed","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:00:00"}]`},
		{"negative votes", `[{"id":1,"title":"t","description":"d","author":"a","status":"open","upvotes":-1,"downvotes":0,"created_at":"2024-03-01T09:00:00"}]`},
		{"zero id", `[{"id":0,"title":"t","description":"d","author":"a","status":"open","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:00:00"}]`},
		{"bad timestamp", `[{"id":1,"title":"t","description":"d","author":"a","status":"open","upvotes":0,"downvotes":0,"created_at":"March 1st"}]`},
		{"missing field", `[{"id":1,"title":"t","status":"open","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:00:00"}]`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			issues, err := Validate([]byte(tc.file))
			require.NoError(t, err)
			assert.NotEmpty(t, issues, "expected findings for %s", tc.name)
		})
	}
}

func TestValidate_DuplicateIDs(t *testing.T) {
	file := `[
  {"id":1,"title":"a","description":"d","author":"x","status":"open","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:00:00"},
  {"id":1,"title":"b","description":"d","author":"y","status":"open","upvotes":0,"downvotes":0,"created_at":"2024-03-01T09:01:00"}
]`

	issues, err := Validate([]byte(file))
	require.NoError(t, err)
	require.Len(t, issues, 1)
	assert.Equal(t, "1.id", issues[0].Path)
	assert.Contains(t, issues[0].Message, "duplicate id 1")
}
