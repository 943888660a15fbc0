package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"

	"github.com/jackc/pgx/v5/pgconn"
)

// columns mirror Headers one-to-one; pos preserves write order for ReadAll.
var columns = []string{
	"purchase_date",
	"inquiry_no",
	"company_name",
	"client_name",
	"product",
	"quantity",
	"city",
	"state",
	"total_amount",
	"follow_up_date",
	"urgency_status",
	"last_updated",
	"data_source",
}

var tableNameRe = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// PostgresTarget stores the follow-up set in one flat text table that is
// rewritten wholesale on every Replace.
type PostgresTarget struct {
	db    *sql.DB
	table string
}

func NewPostgresTarget(db *sql.DB, table string) (*PostgresTarget, error) {
	if !tableNameRe.MatchString(table) {
		return nil, fmt.Errorf("invalid target table name %q", table)
	}
	return &PostgresTarget{db: db, table: table}, nil
}

func (t *PostgresTarget) Replace(ctx context.Context, rows [][]string) error {
	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin tx: %v", ErrRemoteUnavailable, err)
	}
	defer tx.Rollback()

	createSQL := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (pos BIGSERIAL PRIMARY KEY`, t.table)
	for _, col := range columns {
		createSQL += fmt.Sprintf(", %s TEXT NOT NULL DEFAULT ''", col)
	}
	createSQL += ")"
	if _, err := tx.ExecContext(ctx, createSQL); err != nil {
		return fmt.Errorf("%w: create target: %v", ErrRemoteUnavailable, err)
	}

	// From here on a failure leaves the outcome ambiguous to the caller:
	// the tx rolls back, but the contract does not promise that.
	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s`, t.table)); err != nil {
		return fmt.Errorf("%w: clear target: %v", ErrWriteAmbiguous, err)
	}

	insertSQL := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s)`,
		t.table, columnList(), placeholders(len(columns)))
	for i, row := range rows {
		if len(row) != len(columns) {
			return fmt.Errorf("%w: row %d has %d fields, want %d", ErrWriteAmbiguous, i, len(row), len(columns))
		}
		args := make([]any, len(row))
		for j, v := range row {
			args[j] = v
		}
		if _, err := tx.ExecContext(ctx, insertSQL, args...); err != nil {
			return fmt.Errorf("%w: write row %d: %v", ErrWriteAmbiguous, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", ErrWriteAmbiguous, err)
	}
	return nil
}

func (t *PostgresTarget) ReadAll(ctx context.Context) ([][]string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s ORDER BY pos`, columnList(), t.table)
	rows, err := t.db.QueryContext(ctx, query)
	if err != nil {
		if isUndefinedTable(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: query target: %v", ErrRemoteUnavailable, err)
	}
	defer rows.Close()

	var out [][]string
	for rows.Next() {
		row := make([]string, len(columns))
		dest := make([]any, len(columns))
		for i := range row {
			dest[i] = &row[i]
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan target row: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: read target: %v", ErrRemoteUnavailable, err)
	}
	return out, nil
}

func columnList() string {
	list := ""
	for i, col := range columns {
		if i > 0 {
			list += ", "
		}
		list += col
	}
	return list
}

func placeholders(n int) string {
	list := ""
	for i := 1; i <= n; i++ {
		if i > 1 {
			list += ", "
		}
		list += fmt.Sprintf("$%d", i)
	}
	return list
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
