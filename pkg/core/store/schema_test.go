package store

import (
	"strings"
	"testing"

	"edinet_ingest/pkg/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpsertSQL(t *testing.T) {
	got := sqliteDialect.upsert("t", []string{"doc_id", "a", "b"})
	assert.Equal(t,
		"INSERT INTO t (doc_id, a, b) VALUES (?1, ?2, ?3) ON CONFLICT(doc_id) DO UPDATE SET a = excluded.a, b = excluded.b",
		got)

	got = postgresDialect.upsert("t", []string{"doc_id", "a"})
	assert.Equal(t,
		"INSERT INTO t (doc_id, a) VALUES ($1, $2) ON CONFLICT(doc_id) DO UPDATE SET a = excluded.a",
		got)
}

func TestSchema_StatementColumnsFollowFieldLists(t *testing.T) {
	for _, d := range []dialect{sqliteDialect, postgresDialect} {
		ddl := d.schema()
		require.Len(t, ddl, 4)

		for _, f := range models.IncomeStatementFields {
			assert.Contains(t, ddl[1], string(f)+" "+d.real)
		}
		for _, f := range models.BalanceSheetFields {
			assert.Contains(t, ddl[2], string(f)+" "+d.real)
		}
		assert.Contains(t, ddl[3], d.timestamp)
	}
}

func TestSaveStatements(t *testing.T) {
	r := sampleReport()
	stmts := postgresDialect.saveStatements(r)
	require.Len(t, stmts, 3)

	assert.True(t, strings.HasPrefix(stmts[0].query, "INSERT INTO quarterly_reports"))
	assert.Len(t, stmts[0].args, 8)

	assert.True(t, strings.HasPrefix(stmts[1].query, "INSERT INTO income_statements"))
	assert.Len(t, stmts[1].args, 1+len(models.IncomeStatementFields))
	assert.Equal(t, "S1000001", stmts[1].args[0])
	assert.Equal(t, 1000.0, *stmts[1].args[1].(*float64))
	assert.Nil(t, stmts[1].args[3].(*float64), "gross_profit absent")

	assert.True(t, strings.HasPrefix(stmts[2].query, "INSERT INTO balance_sheets"))
	assert.Len(t, stmts[2].args, 1+len(models.BalanceSheetFields))

	r.IncomeStatement, r.BalanceSheet = nil, nil
	assert.Len(t, postgresDialect.saveStatements(r), 1)
}
