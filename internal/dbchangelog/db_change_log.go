// Package dbchangelog captures row changes through a Postgres trigger so
// integration tests can print what a scenario actually wrote.
package dbchangelog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

type Entry struct {
	Id        int64            `db:"id"`
	TableName string           `db:"table_name"`
	Operation string           `db:"operation"`
	RowData   *json.RawMessage `db:"row_data"`
	TxId      *int64           `db:"txid"`
	ChangedAt time.Time        `db:"changed_at"`
}

type Manager struct {
	tablePrefix string
}

func New(tablePrefix string) *Manager {
	return &Manager{
		tablePrefix: tablePrefix,
	}
}

func (d *Manager) getChangeLogTableName() string {
	return d.tablePrefix + "_change_logs"
}

var createTableSQL = `
CREATE TABLE IF NOT EXISTS __CHANGE_LOG_TABLE
(
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    table_name TEXT NOT NULL,
    operation  TEXT NOT NULL,
    row_data   JSONB,
    txid       BIGINT,
    changed_at TIMESTAMPTZ DEFAULT NOW()
);
`

var createTriggerFuncSQL = `
CREATE OR REPLACE FUNCTION __CHANGE_LOG_TABLE_trigger()
    RETURNS TRIGGER
    LANGUAGE plpgsql
AS
$$
BEGIN
    INSERT INTO __CHANGE_LOG_TABLE(table_name, operation, row_data, txid, changed_at)
    VALUES (TG_TABLE_NAME,
            TG_OP,
            CASE WHEN TG_OP = 'DELETE' THEN TO_JSONB(OLD) ELSE TO_JSONB(NEW) END,
            TXID_CURRENT(),
            CLOCK_TIMESTAMP());

    RETURN CASE WHEN TG_OP = 'DELETE' THEN OLD ELSE NEW END;
END;
$$;
`

var createTriggersSQL = `
DO
$$
    DECLARE
        tbl          RECORD;
        skip_tables  TEXT[] := ARRAY [ '__CHANGE_LOG_TABLE', '__db_migrations' ];
        trigger_name TEXT;
    BEGIN
        FOR tbl IN SELECT table_name FROM information_schema.tables WHERE table_schema = CURRENT_SCHEMA()
            LOOP
                IF NOT (tbl.table_name = ANY (skip_tables)) THEN
                    trigger_name := '__CHANGE_LOG_TABLE' || '_' || tbl.table_name;
                    EXECUTE FORMAT('DROP TRIGGER IF EXISTS %I ON %I', trigger_name, tbl.table_name);
                    EXECUTE FORMAT(
                            'CREATE TRIGGER %I AFTER INSERT OR UPDATE OR DELETE ON %I FOR EACH ROW EXECUTE FUNCTION __CHANGE_LOG_TABLE_trigger()',
                            trigger_name, tbl.table_name);
                END IF;
            END LOOP;
    END
$$;
`

// Setup installs the change-log table, the trigger function, and a trigger on
// every table in the current schema except the bookkeeping ones.
func (d *Manager) Setup(ctx context.Context, dsn string) error {
	conn, err := pgx.Connect(ctx, dsn)

	if err != nil {
		return fmt.Errorf("connect to DB failed: %w", err)
	}

	defer conn.Close(ctx)

	changeLogTableName := d.getChangeLogTableName()

	for _, template := range []string{createTableSQL, createTriggerFuncSQL, createTriggersSQL} {
		sql := strings.ReplaceAll(template, "__CHANGE_LOG_TABLE", changeLogTableName)

		_, err = conn.Exec(ctx, sql)

		if err != nil {
			return fmt.Errorf("db change log setup failed: %w", err)
		}
	}

	return nil
}

func (d *Manager) GetLogs(ctx context.Context, conn *pgx.Conn, tableNamesIn []string) ([]Entry, error) {
	sql := "SELECT id, table_name, operation, row_data, txid, changed_at FROM " + d.getChangeLogTableName() + " WHERE table_name = ANY($1)"

	rows, err := conn.Query(ctx, sql, tableNamesIn)

	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowToStructByName[Entry])
}

// ToSummaryString renders one line per change, grouped by transaction.
func (d *Manager) ToSummaryString(entries []Entry) string {
	if len(entries) == 0 {
		return ""
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Id < entries[j].Id
	})

	var b strings.Builder
	var lastTx int64 = -1

	for _, e := range entries {
		txID := int64(-1)
		if e.TxId != nil {
			txID = *e.TxId
		}

		if txID != lastTx {
			fmt.Fprintf(&b, "tx %d @ %s\n", txID, e.ChangedAt.Format(time.RFC3339))
			lastTx = txID
		}

		fmt.Fprintf(&b, "  %-6s %-12s %s\n", strings.ToUpper(e.Operation), e.TableName, renderRow(e.RowData))
	}

	return b.String()
}

func renderRow(data *json.RawMessage) string {
	if data == nil {
		return "(no row data)"
	}

	var obj map[string]any
	if err := json.Unmarshal(*data, &obj); err != nil {
		return "(invalid row data)"
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, obj[k]))
	}

	return strings.Join(parts, " ")
}
