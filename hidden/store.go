// SPDX-License-Identifier: GPL-3.0-or-later
package hidden

import (
	"fmt"
	"sync"

	"github.com/CrawX/go-guildhush/domain"
	"github.com/CrawX/go-guildhush/log"
	"github.com/sirupsen/logrus"
)

// Store owns the directly hidden servers and folders. Servers hidden through a folder are
// derived from the folder membership on every query and never stored.
type Store struct {
	mu      sync.RWMutex
	servers []string
	folders []string

	// held from a mutation until its sets are saved
	persistMu sync.Mutex

	resolver    domain.FolderResolver
	persistence domain.HiddenPersistence

	listenersMu sync.Mutex
	listeners   []func()

	l *logrus.Logger
}

// NewStore creates an empty store. Both collaborators may be nil: without a resolver no server is
// hidden through a folder, without persistence mutations are kept in memory only.
func NewStore(resolver domain.FolderResolver, persistence domain.HiddenPersistence) *Store {
	return &Store{
		servers:     []string{},
		folders:     []string{},
		resolver:    resolver,
		persistence: persistence,
		l:           log.Logger(log.LOG_HIDDEN),
	}
}

// Load replaces the sets with the persisted ones. Unreadable data leaves both sets empty.
func (s *Store) Load() {
	s.persistMu.Lock()
	servers, folders := []string{}, []string{}
	if s.persistence != nil {
		data, err := s.persistence.LoadHidden()
		if err != nil {
			s.l.WithError(err).Warn("Could not load hidden items, starting with nothing hidden")
		} else if data != nil {
			servers = unique(data.Servers)
			folders = unique(data.Folders)
		}
	}

	s.mu.Lock()
	s.servers = servers
	s.folders = folders
	s.mu.Unlock()
	s.persistMu.Unlock()

	s.l.WithFields(logrus.Fields{"servers": len(servers), "folders": len(folders)}).Info("Loaded hidden items")
	s.notify()
}

// OnChange registers a listener that runs after every mutation.
func (s *Store) OnChange(listener func()) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func (s *Store) IsHiddenServer(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.servers, id)
}

func (s *Store) IsHiddenFolder(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return contains(s.folders, id)
}

func (s *Store) Servers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.servers...)
}

func (s *Store) Folders() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string{}, s.folders...)
}

// ServersImpliedByHiddenFolders resolves every hidden folder and returns the union of their
// members. Unknown folders are skipped.
func (s *Store) ServersImpliedByHiddenFolders() map[string]struct{} {
	implied := map[string]struct{}{}
	for _, id := range s.impliedServers() {
		implied[id] = struct{}{}
	}
	return implied
}

func (s *Store) impliedServers() []string {
	folders := s.Folders()
	if s.resolver == nil || len(folders) == 0 {
		return []string{}
	}

	servers := []string{}
	for _, folder := range folders {
		members, ok := s.resolver.FolderMembers(folder)
		if !ok {
			s.l.WithField("folder", folder).Debug("Hidden folder not found, skipping")
			continue
		}
		servers = append(servers, members...)
	}
	return unique(servers)
}

// IsGroupSuppressedMembership reports whether a guild is hidden directly or through one of its
// folders. Suppression settings are not taken into account.
func (s *Store) IsGroupSuppressedMembership(id string) bool {
	if id == "" {
		return false
	}
	if s.IsHiddenServer(id) {
		return true
	}
	_, ok := s.ServersImpliedByHiddenFolders()[id]
	return ok
}

// SuppressedMembership lists every hidden guild, directly hidden ones first.
func (s *Store) SuppressedMembership() []string {
	return unique(append(s.Servers(), s.impliedServers()...))
}

// ToggleServer hides a visible server or shows a hidden one and returns whether it is hidden now.
// An empty id is ignored.
func (s *Store) ToggleServer(id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	var hidden bool
	err := s.mutate(func() {
		s.servers, hidden = toggle(s.servers, id)
	})
	s.l.WithFields(logrus.Fields{"server": id, "hidden": hidden}).Info("Toggled server")
	return hidden, err
}

func (s *Store) ToggleFolder(id string) (bool, error) {
	if id == "" {
		return false, nil
	}

	var hidden bool
	err := s.mutate(func() {
		s.folders, hidden = toggle(s.folders, id)
	})
	s.l.WithFields(logrus.Fields{"folder": id, "hidden": hidden}).Info("Toggled folder")
	return hidden, err
}

func (s *Store) ClearServers() error {
	err := s.mutate(func() {
		s.servers = []string{}
	})
	s.l.Info("Cleared hidden servers")
	return err
}

func (s *Store) ClearFolders() error {
	err := s.mutate(func() {
		s.folders = []string{}
	})
	s.l.Info("Cleared hidden folders")
	return err
}

// mutate applies change and persists the resulting sets before the next mutation can start, so
// saves happen in mutation order. The in-memory state stays even if it could not be persisted.
func (s *Store) mutate(change func()) error {
	s.persistMu.Lock()

	s.mu.Lock()
	change()
	data := &domain.HiddenData{
		Servers: append([]string{}, s.servers...),
		Folders: append([]string{}, s.folders...),
	}
	s.mu.Unlock()

	var err error
	if s.persistence != nil {
		err = s.persistence.SaveHidden(data)
		if err != nil {
			err = fmt.Errorf("could not persist hidden items: %w", err)
			s.l.WithError(err).Error("Hidden items only changed in memory")
		}
	}
	s.persistMu.Unlock()

	s.notify()
	return err
}

func (s *Store) notify() {
	s.listenersMu.Lock()
	listeners := append([]func(){}, s.listeners...)
	s.listenersMu.Unlock()

	for _, listener := range listeners {
		listener()
	}
}

func toggle(ids []string, id string) ([]string, bool) {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...), false
		}
	}
	return append(ids, id), true
}

func contains(ids []string, id string) bool {
	if id == "" {
		return false
	}
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func unique(ids []string) []string {
	seen := map[string]bool{}
	result := []string{}
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}
