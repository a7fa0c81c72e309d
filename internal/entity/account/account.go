package account

import "time"

// Record is one registered account. Secret is the stored credential,
// compared by exact equality at login.
type Record struct {
	Name      string
	Secret    string
	CreatedAt time.Time
}
