package ledger_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/core/id"
)

func TestRepo_Columns(t *testing.T) {
	repo := New(nil)
	assert.Equal(t, []string{"deleted_id", "entity_type", "recorded_at"}, repo.selectCols)
}

func TestRepo_UpdateQuery_SQL(t *testing.T) {
	repo := New(nil)

	sql, args, err := repo.updateQuery(12, "Order").ToSql()
	require.NoError(t, err)

	assert.Equal(t,
		"UPDATE deleted_ids SET entity_type = $1 WHERE deleted_id = $2 RETURNING deleted_id, entity_type, recorded_at",
		sql)
	assert.Equal(t, []any{"Order", id.ID(12)}, args)
}

func TestRepo_List_SQL(t *testing.T) {
	repo := New(nil)

	sql, _, err := repo.baseSelect().OrderBy("deleted_id").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT deleted_id, entity_type, recorded_at FROM deleted_ids ORDER BY deleted_id", sql)
}
