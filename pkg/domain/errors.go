package domain

import "errors"

// ErrSettingsNotFound is returned by a SettingsStore that holds no record yet.
var ErrSettingsNotFound = errors.New("settings not found")

// ErrTextNotFound is returned by a TextStore that holds no text blob yet.
var ErrTextNotFound = errors.New("text not found")
