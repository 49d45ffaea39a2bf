package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/akurlov/shortly/internal/store"
)

// DBStore holds the serialized collection in a single row keyed by
// store.DocumentKey; Save upserts the whole document.
type DBStore struct {
	conn *pgx.Conn
}

func NewPostgresStore(dsn string) (*DBStore, error) {
	conn, err := pgx.Connect(context.Background(), dsn)
	if err != nil {
		return nil, err
	}
	dbStore := &DBStore{conn: conn}

	if err := dbStore.CreateTable(); err != nil {
		return nil, err
	}

	return dbStore, nil
}

func (db *DBStore) Load() ([]byte, error) {
	row := db.conn.QueryRow(context.Background(),
		"SELECT document FROM shortly_kv WHERE key = $1", store.DocumentKey)
	var result []byte
	if err := row.Scan(&result); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return result, nil
}

func (db *DBStore) Save(data []byte) error {
	_, err := db.conn.Exec(context.Background(), `
		INSERT INTO shortly_kv VALUES ($1, $2)
		ON CONFLICT (key)
		DO UPDATE SET
			document=EXCLUDED.document
	`, store.DocumentKey, data)
	return err
}

func (db *DBStore) Ping() error {
	return db.conn.Ping(context.Background())
}

func (db *DBStore) Close() {
	_ = db.conn.Close(context.Background())
}

func (db *DBStore) CreateTable() error {
	_, err := db.conn.Exec(context.Background(), "CREATE TABLE IF NOT EXISTS shortly_kv( "+
		"key VARCHAR(255) PRIMARY KEY, "+
		"document BYTEA NOT NULL "+
		");")
	return err
}
