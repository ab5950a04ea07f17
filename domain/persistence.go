// SPDX-License-Identifier: GPL-3.0-or-later
package domain

// HiddenData is the stored form of the hidden sets, insertion ordered.
type HiddenData struct {
	Servers []string
	Folders []string
}

type HiddenPersistence interface {
	LoadHidden() (*HiddenData, error)
	SaveHidden(data *HiddenData) error
}
