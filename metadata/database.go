package metadata

import (
	"context"
	"database/sql"
	"errors"
)

var ErrNotFound = errors.New("not found")

type Database struct {
	db                 *sql.DB
	preparedStatements map[preparedStatementKey]*sql.Stmt
}

const (
	listVideosStmt preparedStatementKey = "listVideosStmt"
	cueAtStmt      preparedStatementKey = "cueAtStmt"
	listCuesStmt   preparedStatementKey = "listCuesStmt"
)

func OpenDatabase(dbPath string) (*Database, error) {
	// Open the database as read-only
	db, err := sql.Open("sqlite3", "file:"+dbPath+"?mode=ro")
	if err != nil {
		return nil, err
	}

	preparedStatements := make(map[preparedStatementKey]*sql.Stmt)
	for key, query := range map[preparedStatementKey]string{
		listVideosStmt: `SELECT name, duration, vtt_key, json_key FROM videos ORDER BY name`,
		cueAtStmt:      `SELECT file, start_ts, end_ts, x, y, text FROM thumbnails WHERE video_id = (SELECT id FROM videos WHERE name = ?) AND start_ts <= ? AND end_ts > ? ORDER BY start_ts DESC LIMIT 1`,
		listCuesStmt:   `SELECT file, start_ts, end_ts, x, y, text FROM thumbnails WHERE video_id = (SELECT id FROM videos WHERE name = ?) ORDER BY start_ts ASC`,
	} {
		stmt, err := db.Prepare(query)
		if err != nil {
			db.Close() // nolint: errcheck
			return nil, err
		}

		preparedStatements[key] = stmt
	}

	return &Database{
		db:                 db,
		preparedStatements: preparedStatements,
	}, nil
}

func (d *Database) ListVideos(ctx context.Context) ([]VideoMetadata, error) {
	rows, err := d.preparedStatements[listVideosStmt].QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []VideoMetadata{}
	for rows.Next() {
		var result VideoMetadata
		err := rows.Scan(&result.Name, &result.Duration, &result.VTTKey, &result.JSONKey)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// CueAt returns the cue of video covering the given second.
func (d *Database) CueAt(ctx context.Context, video string, second int) (*ThumbMetadata, error) {
	var result ThumbMetadata
	err := d.preparedStatements[cueAtStmt].QueryRowContext(ctx, video, second, second).
		Scan(&result.File, &result.Start, &result.End, &result.X, &result.Y, &result.Text)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (d *Database) ListCues(ctx context.Context, video string) ([]ThumbMetadata, error) {
	rows, err := d.preparedStatements[listCuesStmt].QueryContext(ctx, video)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := []ThumbMetadata{}
	for rows.Next() {
		result := ThumbMetadata{}
		err := rows.Scan(&result.File, &result.Start, &result.End, &result.X, &result.Y, &result.Text)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

func (d *Database) Close() error {
	return d.db.Close()
}
