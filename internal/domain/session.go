package domain

// Session is what the identity provider yields for a request: an owner id
// and whether the caller holds a valid token. Unauthenticated sessions can
// still use device-local paths.
type Session struct {
	OwnerID       string
	Authenticated bool
}
