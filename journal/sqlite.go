package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordTrade(t TradeRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(run_id, date, action, price, quantity, side, position_id, label, is_closing, profit)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.RunID, t.Date, t.Action, t.Price, t.Quantity,
		t.Side, t.PositionID, t.Label, t.IsClosing, t.Profit,
	)
	return err
}

func (j *SQLiteJournal) RecordEquity(e EquitySnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO equity
		(run_id, date, cash, portfolio_value, equity, open_positions)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Date, e.Cash, e.PortfolioValue, e.Equity, e.OpenPositions,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
