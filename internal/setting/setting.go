package setting

import "errors"

var ErrNotFound = errors.New("setting not found")

const KeyCurrency = "currency"

// Settings is the single row of user preferences.
type Settings struct {
	Currency string
}
