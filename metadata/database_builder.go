package metadata

import (
	"database/sql"
	"os"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"
)

type preparedStatementKey string

const (
	insertVideoStmt     preparedStatementKey = "insertVideoStmt"
	insertThumbnailStmt preparedStatementKey = "insertThumbnailStmt"
)

// DatabaseBuilder writes a fresh cue index into a temporary file and moves
// it over the output path on Build.
type DatabaseBuilder struct {
	db                 *sql.DB
	preparedStatements map[preparedStatementKey]*sql.Stmt
	outputDatabasePath string
	tmpDatabasePath    string
}

func NewDatabaseBuilder(dbPath string) (*DatabaseBuilder, error) {
	tmpDbPath := dbPath + ".tmp"
	_, err := os.Stat(tmpDbPath)
	if err == nil {
		// Remove the leftover of an interrupted build
		err = os.Remove(tmpDbPath)
		if err != nil {
			log.Error().Err(err).Msg("Failed to remove temporary database")
			return nil, err
		}
	}
	db, err := sql.Open("sqlite3", tmpDbPath)
	if err != nil {
		return nil, err
	}

	schemaBytes, err := SchemaFS.ReadFile("schema.sql")
	if err != nil {
		db.Close() // nolint: errcheck
		log.Error().Err(err).Msg("Failed to read schema.sql")
		return nil, err
	}

	_, err = db.Exec(string(schemaBytes))
	if err != nil {
		db.Close() // nolint: errcheck
		log.Error().Err(err).Msg("Failed to execute schema.sql")
		return nil, err
	}

	preparedStatements := make(map[preparedStatementKey]*sql.Stmt)
	for key, stmt := range map[preparedStatementKey]string{
		insertVideoStmt:     `INSERT INTO videos (name, duration, vtt_key, json_key) VALUES (?, ?, ?, ?)`,
		insertThumbnailStmt: `INSERT INTO thumbnails (video_id, file, start_ts, end_ts, x, y, text) VALUES (?, ?, ?, ?, ?, ?, ?)`,
	} {
		preparedStmt, err := db.Prepare(stmt)
		if err != nil {
			db.Close() // nolint: errcheck
			log.Error().Err(err).Msg("Failed to prepare statement")
			return nil, err
		}

		preparedStatements[key] = preparedStmt
	}

	return &DatabaseBuilder{
		db:                 db,
		preparedStatements: preparedStatements,
		outputDatabasePath: dbPath,
		tmpDatabasePath:    tmpDbPath,
	}, nil
}

func (b *DatabaseBuilder) Build() error {
	// Compact the database
	_, err := b.db.Exec("VACUUM")
	if err != nil {
		log.Error().Err(err).Msg("Failed to compact the database")
		return err
	}

	err = b.db.Close()
	if err != nil {
		log.Error().Err(err).Msg("Failed to close the database")
		return err
	}

	// Move the temporary database to the output path
	err = os.Rename(b.tmpDatabasePath, b.outputDatabasePath)
	if err != nil {
		log.Error().Err(err).Msg("Failed to move the temporary database")
		return err
	}

	return nil
}

// Abort discards the temporary database.
func (b *DatabaseBuilder) Abort() error {
	b.db.Close() // nolint: errcheck
	return os.Remove(b.tmpDatabasePath)
}

func (b *DatabaseBuilder) AddVideoMetadata(metadata VideoMetadata) error {
	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() // nolint: errcheck

	res, err := tx.Stmt(b.preparedStatements[insertVideoStmt]).Exec(metadata.Name, metadata.Duration, metadata.VTTKey, metadata.JSONKey)
	if err != nil {
		log.Error().Err(err).Str("video", metadata.Name).Msg("Failed to insert video")
		return err
	}

	videoID, err := res.LastInsertId()
	if err != nil {
		log.Error().Err(err).Msg("Failed to get video ID")
		return err
	}

	insertThumb := tx.Stmt(b.preparedStatements[insertThumbnailStmt])
	for _, thumb := range metadata.Thumbs {
		_, err = insertThumb.Exec(videoID, thumb.File, thumb.Start, thumb.End, thumb.X, thumb.Y, thumb.Text)
		if err != nil {
			log.Error().Err(err).Msg("Failed to insert thumbnail")
			return err
		}
	}

	return tx.Commit()
}
