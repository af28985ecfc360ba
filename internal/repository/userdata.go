package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/profitcalc/profitcalc/constants"
	"github.com/profitcalc/profitcalc/internal/model"
)

// Settings is the per-user preference blob. Categories are stored as a
// JSON array in a single column; they are only ever read back whole.
type Settings struct {
	Currency   string   `json:"currency"`
	Categories []string `json:"categories"`
}

// UserData is everything a signed-in user keeps between sessions.
type UserData struct {
	Transactions []model.Transaction `json:"transactions"`
	Settings     Settings            `json:"settings"`
}

// UserDataRepository stores a user's transactions and settings. Saves
// replace the stored set wholesale; partial merges are the client's job.
type UserDataRepository interface {
	Get(ctx context.Context, userID string) (*UserData, error)
	Save(ctx context.Context, userID string, data *UserData) error
}

type userDataRepository struct {
	db *sql.DB
}

func NewUserDataRepository(db *sql.DB) UserDataRepository {
	return &userDataRepository{db: db}
}

func defaultSettings() Settings {
	return Settings{Currency: "USD", Categories: constants.DefaultTaxonomy()}
}

func (r *userDataRepository) Get(ctx context.Context, userID string) (*UserData, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, tx_date, description, amount, tx_type, category
		 FROM transactions WHERE user_id = ? ORDER BY tx_date, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	data := &UserData{Transactions: []model.Transaction{}}
	for rows.Next() {
		var (
			tx     model.Transaction
			amount string
			typ    string
		)
		if err := rows.Scan(&tx.ID, &tx.Date, &tx.Description, &amount, &typ, &tx.Category); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("stored amount %q: %w", amount, err)
		}
		tx.Type = constants.TxType(typ)
		data.Transactions = append(data.Transactions, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	settings, err := r.settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	data.Settings = settings
	return data, nil
}

func (r *userDataRepository) settings(ctx context.Context, userID string) (Settings, error) {
	var (
		currency   string
		categories string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT currency, categories FROM settings WHERE user_id = ?`, userID).
		Scan(&currency, &categories)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultSettings(), nil
	}
	if err != nil {
		return Settings{}, fmt.Errorf("query settings: %w", err)
	}

	s := Settings{Currency: currency}
	if err := json.Unmarshal([]byte(categories), &s.Categories); err != nil {
		return Settings{}, fmt.Errorf("stored categories: %w", err)
	}
	return s, nil
}

func (r *userDataRepository) Save(ctx context.Context, userID string, data *UserData) error {
	settings := data.Settings
	if settings.Currency == "" {
		settings.Currency = "USD"
	}
	if len(settings.Categories) == 0 {
		settings.Categories = constants.DefaultTaxonomy()
	}
	categories, err := json.Marshal(settings.Categories)
	if err != nil {
		return fmt.Errorf("encode categories: %w", err)
	}

	sqlTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer func() { _ = sqlTx.Rollback() }()

	if _, err := sqlTx.ExecContext(ctx, `DELETE FROM transactions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}
	for _, tx := range data.Transactions {
		_, err := sqlTx.ExecContext(ctx,
			`INSERT INTO transactions (id, user_id, tx_date, description, amount, tx_type, category)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			tx.ID, userID, tx.Date.UTC(), tx.Description, tx.Amount.String(), string(tx.Type), tx.Category,
		)
		if err != nil {
			return fmt.Errorf("insert transaction %s: %w", tx.ID, err)
		}
	}

	_, err = sqlTx.ExecContext(ctx,
		`INSERT INTO settings (user_id, currency, categories, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			currency = excluded.currency,
			categories = excluded.categories,
			updated_at = excluded.updated_at`,
		userID, settings.Currency, string(categories), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}

	return sqlTx.Commit()
}
