package api

// Credentials is the token pair shared between the client and the session
// manager. It is the only mutable state concurrent requests contend on,
// and it is only ever written inside the refresh critical section or by
// the session manager on login/logout.
type Credentials struct {
	AccessToken  string
	RefreshToken string
}

// Empty reports whether no session is stored at all.
func (c Credentials) Empty() bool {
	return c.AccessToken == "" && c.RefreshToken == ""
}

// TokenStore persists the credential pair between runs. Implementations
// must tolerate concurrent readers; the client holds no cached copy and
// re-reads before every request.
type TokenStore interface {
	Load() (Credentials, error)
	Save(Credentials) error
	Clear() error
}
