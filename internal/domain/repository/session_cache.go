package repository

// SessionCache maps a stable caller identity to its remote session id
// for the lifetime of the process. Concurrent first writes for one
// identity are last-writer-wins.
type SessionCache interface {
	Lookup(userID string) (string, bool)
	Store(userID, sessionID string)
}
