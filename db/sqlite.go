package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	apperrors "github.com/jsphweid/chordflow/errors"
	"github.com/jsphweid/chordflow/logging"
	"github.com/jsphweid/chordflow/model"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS songs (
	id         TEXT PRIMARY KEY,
	title      TEXT NOT NULL,
	artist     TEXT NOT NULL,
	doc        TEXT NOT NULL,
	updated_at INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS setlists (
	id   TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	doc  TEXT NOT NULL
);
`

// SQLiteStore keeps each song as a JSON document next to the columns it
// is listed by.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, apperrors.Wrapf(err, "open sqlite %s", path)
	}
	// one writer at a time; avoids SQLITE_BUSY under concurrent requests
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, apperrors.Wrap(err, "create sqlite schema")
	}
	logging.Debug("opened song store", "backend", "sqlite", "driver", driverType, "path", path)
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) ListSongs(ctx context.Context) ([]model.Song, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM songs ORDER BY title COLLATE NOCASE, id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "list songs")
	}
	defer rows.Close()

	res := make([]model.Song, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.Wrap(err, "scan song")
		}
		var song model.Song
		if err := json.Unmarshal([]byte(doc), &song); err != nil {
			return nil, apperrors.NewParse("JSON", "stored song", err)
		}
		res = append(res, song)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) GetSong(ctx context.Context, id string) (model.Song, error) {
	var doc string
	err := s.db.QueryRowContext(ctx, `SELECT doc FROM songs WHERE id = ?`, id).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Song{}, apperrors.NewNotFound("song", id)
	}
	if err != nil {
		return model.Song{}, apperrors.Wrapf(err, "get song %s", id)
	}

	var song model.Song
	if err := json.Unmarshal([]byte(doc), &song); err != nil {
		return model.Song{}, apperrors.NewParse("JSON", "stored song "+id, err)
	}
	return song, nil
}

func (s *SQLiteStore) SaveSong(ctx context.Context, song model.Song) (model.Song, error) {
	song, err := prepareSong(song)
	if err != nil {
		return song, err
	}
	doc, err := json.Marshal(song)
	if err != nil {
		return song, apperrors.Wrap(err, "encode song")
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO songs (id, title, artist, doc, updated_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			artist = excluded.artist,
			doc = excluded.doc,
			updated_at = excluded.updated_at`,
		song.ID, song.Title, song.Artist, string(doc), time.Now().Unix())
	if err != nil {
		return song, apperrors.Wrapf(err, "save song %s", song.ID)
	}
	return song, nil
}

func (s *SQLiteStore) DeleteSong(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id)
	if err != nil {
		return apperrors.Wrapf(err, "delete song %s", id)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return apperrors.Wrapf(err, "delete song %s", id)
	}
	if n == 0 {
		return apperrors.NewNotFound("song", id)
	}
	return nil
}

func (s *SQLiteStore) ListSetlists(ctx context.Context) ([]model.Setlist, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT doc FROM setlists ORDER BY name COLLATE NOCASE, id`)
	if err != nil {
		return nil, apperrors.Wrap(err, "list setlists")
	}
	defer rows.Close()

	res := make([]model.Setlist, 0)
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, apperrors.Wrap(err, "scan setlist")
		}
		var setlist model.Setlist
		if err := json.Unmarshal([]byte(doc), &setlist); err != nil {
			return nil, apperrors.NewParse("JSON", "stored setlist", err)
		}
		res = append(res, setlist)
	}
	return res, rows.Err()
}

func (s *SQLiteStore) SaveSetlist(ctx context.Context, setlist model.Setlist) (model.Setlist, error) {
	setlist, err := prepareSetlist(setlist)
	if err != nil {
		return setlist, err
	}
	doc, err := json.Marshal(setlist)
	if err != nil {
		return setlist, apperrors.Wrap(err, "encode setlist")
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO setlists (id, name, doc) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name, doc = excluded.doc`,
		setlist.ID, setlist.Name, string(doc))
	if err != nil {
		return setlist, apperrors.Wrapf(err, "save setlist %s", setlist.ID)
	}
	return setlist, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
