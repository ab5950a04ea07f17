// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/sirupsen/logrus"
)

const (
	keyHiddenServers = "hiddenServers"
	keyHiddenFolders = "hiddenFolders"
)

var ErrCorruptValue = errors.New("stored value is not a list of ids")

type Persistence struct {
	db *sqlx.DB
	l  *logrus.Logger
}

func NewPersistence(datasource string) (*Persistence, error) {
	db, err := sqlx.Connect("sqlite3", datasource)
	if err != nil {
		return nil, fmt.Errorf("could not open db: %w", err)
	}
	db.SetMaxOpenConns(1)

	l := log.Logger(log.LOG_PERSISTENCE)
	l.WithField("file", datasource).Info("Connected")

	_, err = db.Exec(`PRAGMA journal_mode=WAL`)
	if err != nil {
		return nil, fmt.Errorf("could not set journal mode: %w", err)
	}
	_, err = db.Exec(`PRAGMA synchronous=normal`)
	if err != nil {
		return nil, fmt.Errorf("could not set synchronous mode: %w", err)
	}

	appliedMigrations, err := migrate.Exec(db.DB, "sqlite3", migrations(), migrate.Up)
	if err != nil {
		return nil, fmt.Errorf("could not migrate to newest version: %w", err)
	}

	l.WithField("migrations", appliedMigrations).Debug("Executed migrations")

	return &Persistence{
		db: db,
		l:  l,
	}, nil
}

func (p *Persistence) Close() error {
	err := p.db.Close()
	if err != nil {
		return fmt.Errorf("could not close db: %w", err)
	}
	p.l.Info("Disconnected")
	return nil
}

// LoadHidden reads both id lists. A list that was never saved is empty.
func (p *Persistence) LoadHidden() (*domain.HiddenData, error) {
	servers, err := p.ids(keyHiddenServers)
	if err != nil {
		return nil, err
	}
	folders, err := p.ids(keyHiddenFolders)
	if err != nil {
		return nil, err
	}

	p.l.WithFields(logrus.Fields{"servers": len(servers), "folders": len(folders)}).Debug("Loaded hidden items")

	return &domain.HiddenData{
		Servers: servers,
		Folders: folders,
	}, nil
}

func (p *Persistence) ids(key string) ([]string, error) {
	var value string
	err := p.db.Get(
		&value,
		`SELECT value FROM settings WHERE key = ?`,
		key,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("could not query db: %w", err)
	}

	ids := []string{}
	err = json.Unmarshal([]byte(value), &ids)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w (%s)", key, ErrCorruptValue, err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// SaveHidden writes both id lists in one transaction.
func (p *Persistence) SaveHidden(data *domain.HiddenData) error {
	if data == nil {
		data = &domain.HiddenData{}
	}

	values := map[string][]string{
		keyHiddenServers: data.Servers,
		keyHiddenFolders: data.Folders,
	}

	tx, err := p.db.BeginTxx(context.TODO(), nil)
	if err != nil {
		return fmt.Errorf("could not start transaction: %w", err)
	}

	stmt, err := tx.Prepare(
		"INSERT OR REPLACE INTO settings(key, value) VALUES(?, ?)",
	)
	if err != nil {
		return txEnd(tx, fmt.Errorf("could not prepare statement: %w", err))
	}
	defer stmt.Close()

	for _, key := range []string{keyHiddenServers, keyHiddenFolders} {
		ids := values[key]
		if ids == nil {
			ids = []string{}
		}

		encoded, err := json.Marshal(ids)
		if err != nil {
			return txEnd(tx, fmt.Errorf("could not encode %s: %w", key, err))
		}

		_, err = stmt.Exec(key, string(encoded))
		if err != nil {
			return txEnd(tx, fmt.Errorf("could not save %s: %w", key, err))
		}
	}

	err = txEnd(tx, nil)
	if err != nil {
		return err
	}

	p.l.WithFields(logrus.Fields{"servers": len(data.Servers), "folders": len(data.Folders)}).Info("Persisted hidden items")
	return nil
}

func txEnd(tx *sqlx.Tx, err error) error {
	if err == nil {
		err = tx.Commit()
		if err != nil {
			return fmt.Errorf("could not commit tx: %w", err)
		}
	} else {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			errStr := err.Error()
			return fmt.Errorf("%s, could not rollback tx: %w", errStr, rollbackErr)
		} else {
			return err
		}
	}

	return nil
}

var _ domain.HiddenPersistence = (*Persistence)(nil)
