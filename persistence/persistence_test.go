// SPDX-License-Identifier: GPL-3.0-or-later
package persistence

import (
	"testing"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPersistence(t *testing.T) *Persistence {
	log.InitLogging("error")

	p, err := NewPersistence(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPersistence_LoadEmpty(t *testing.T) {
	p := newPersistence(t)

	data, err := p.LoadHidden()
	assert.NoError(t, err)
	assert.Equal(t, &domain.HiddenData{Servers: []string{}, Folders: []string{}}, data)
}

func TestPersistence_SaveLoad(t *testing.T) {
	p := newPersistence(t)

	assert.NoError(t, p.SaveHidden(&domain.HiddenData{Servers: []string{"2", "1"}, Folders: []string{"f"}}))
	data, err := p.LoadHidden()
	assert.NoError(t, err)
	assert.Equal(t, &domain.HiddenData{Servers: []string{"2", "1"}, Folders: []string{"f"}}, data)

	assert.NoError(t, p.SaveHidden(&domain.HiddenData{Servers: []string{"1"}}))
	data, err = p.LoadHidden()
	assert.NoError(t, err)
	assert.Equal(t, &domain.HiddenData{Servers: []string{"1"}, Folders: []string{}}, data)
}

func TestPersistence_StoredAsJsonArrays(t *testing.T) {
	p := newPersistence(t)
	assert.NoError(t, p.SaveHidden(&domain.HiddenData{Servers: []string{"a", "b"}}))

	var value string
	assert.NoError(t, p.db.Get(&value, `SELECT value FROM settings WHERE key = ?`, "hiddenServers"))
	assert.Equal(t, `["a","b"]`, value)

	assert.NoError(t, p.db.Get(&value, `SELECT value FROM settings WHERE key = ?`, "hiddenFolders"))
	assert.Equal(t, `[]`, value)
}

func TestPersistence_Corrupt(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"not json", `{{`},
		{"object", `{"a": 1}`},
		{"numbers", `[1, 2]`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := newPersistence(t)
			_, err := p.db.Exec(`INSERT INTO settings(key, value) VALUES(?, ?)`, "hiddenFolders", tc.value)
			require.NoError(t, err)

			data, err := p.LoadHidden()
			assert.Nil(t, data)
			assert.ErrorIs(t, err, ErrCorruptValue)
		})
	}
}

func TestPersistence_NullList(t *testing.T) {
	p := newPersistence(t)
	_, err := p.db.Exec(`INSERT INTO settings(key, value) VALUES(?, ?)`, "hiddenServers", "null")
	require.NoError(t, err)

	data, err := p.LoadHidden()
	assert.NoError(t, err)
	assert.Equal(t, []string{}, data.Servers)
}
