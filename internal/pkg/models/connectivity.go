package models

// ConnStatus is the wallet's view of remote ledger reachability
type ConnStatus string

const (
	ConnOnline  ConnStatus = "online"
	ConnOffline ConnStatus = "offline"
)

// Valid reports whether the status is one of the two known states
func (s ConnStatus) Valid() bool {
	return s == ConnOnline || s == ConnOffline
}
