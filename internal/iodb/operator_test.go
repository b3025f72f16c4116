package iodb_test

import (
	"context"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnmatch/internal/iodb"
	"github.com/gnames/gnmatch/internal/iotesting"
	"github.com/gnames/gnmatch/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need PostgreSQL with a gnmatch_test database. Connection
// settings come from GNMATCH_DATABASE_* environment variables.

const fixture = `
DROP TABLE IF EXISTS name_string_indices, name_strings, canonicals;
CREATE TABLE canonicals (id UUID PRIMARY KEY, name VARCHAR(255) NOT NULL);
CREATE TABLE name_strings (
  id UUID PRIMARY KEY, name VARCHAR(255) NOT NULL, canonical_id UUID
);
CREATE TABLE name_string_indices (
  data_source_id SMALLINT NOT NULL, record_id VARCHAR(255) NOT NULL,
  name_string_id UUID NOT NULL, code_id SMALLINT, rank VARCHAR(255),
  taxonomic_status VARCHAR(255), accepted_record_id VARCHAR(255),
  classification TEXT, classification_ids TEXT, classification_ranks TEXT
);
INSERT INTO canonicals VALUES
  ('00000000-0000-0000-0000-000000000001', 'Abies alba');
INSERT INTO name_strings VALUES
  ('00000000-0000-0000-0000-00000000000a', 'Abies alba Mill.',
   '00000000-0000-0000-0000-000000000001');
INSERT INTO name_string_indices VALUES
  (1, '3', '00000000-0000-0000-0000-00000000000a', 2, 'species',
   'accepted', '3', 'Plantae|Abies|Abies alba', '1|2|3',
   'kingdom|genus|species'),
  (2, 'x', '00000000-0000-0000-0000-00000000000a', NULL, NULL,
   NULL, NULL, NULL, NULL, NULL);
`

func connect(t *testing.T) *iodb.Reader {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	r, err := iodb.Connect(context.Background(),
		iotesting.GetTestDatabaseConfig())
	if err != nil {
		t.Skipf("PostgreSQL is not available: %s", err)
	}
	t.Cleanup(r.Close)
	return r
}

func TestConnectInvalidHost(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	cfg := iotesting.GetTestDatabaseConfig()
	cfg.Host = "invalid-host-that-does-not-exist"

	_, err := iodb.Connect(context.Background(), cfg)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
}

func TestUsages(t *testing.T) {
	r := connect(t)
	ctx := context.Background()

	_, err := r.Pool().Exec(ctx, fixture)
	require.NoError(t, err)
	t.Cleanup(func() {
		_, _ = r.Pool().Exec(context.Background(),
			"DROP TABLE IF EXISTS name_string_indices, name_strings, canonicals")
	})

	var progress int
	us, err := r.Usages(ctx, 1, func(i int) { progress = i })
	require.NoError(t, err)
	assert.Equal(t, 1, progress)
	require.Len(t, us, 3)
	assert.Equal(t, "3", us[0].ID)
	assert.Equal(t, "Abies alba", us[0].CanonicalName)
	assert.Equal(t, "2", us[0].ParentID)

	// NULL columns are read as empty values
	us, err = r.Usages(ctx, 2, nil)
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Empty(t, us[0].ParentID)
}
