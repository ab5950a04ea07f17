// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	migrate "github.com/rubenv/sql-migrate"
)

func migrations() *migrate.MemoryMigrationSource {
	return &migrate.MemoryMigrationSource{
		Migrations: []*migrate.Migration{
			{
				Id: "1_settings",
				Up: []string{
					`CREATE TABLE settings (
						key TEXT PRIMARY KEY,
						value TEXT NOT NULL
					)`,
				},
				Down: []string{
					`DROP TABLE settings`,
				},
			},
		},
	}
}
