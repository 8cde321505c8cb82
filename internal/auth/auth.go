// Package auth persists the client's session record: whether the operator is
// authenticated, against which server, and in which auth mode.
package auth

import "time"

type SessionSource string

const (
	KeyringSessionSource   SessionSource = "keyring"
	PlainTextSessionSource SessionSource = "plaintext"
)

// Session is the stored session record.
type Session struct {
	Authenticated bool       `json:"authenticated"`
	Mode          string     `json:"mode,omitempty"`
	Username      string     `json:"username,omitempty"`
	ServerURL     string     `json:"serverUrl,omitempty"`
	LoginAt       *time.Time `json:"loginAt,omitempty"`
}

// ResolvedSession is a session record together with where it was found.
type ResolvedSession struct {
	Session
	Source SessionSource `json:"source"`
}

// ResolveSession finds the stored session, preferring the keyring over the
// plain text fallback. A nil result with nil error means no stored session.
func ResolveSession() (*ResolvedSession, error) {
	session, err := getSessionFromKeyring()
	if err != nil {
		return nil, err
	}
	if session != nil {
		return &ResolvedSession{Session: *session, Source: KeyringSessionSource}, nil
	}

	session, err = getSessionFromPlainText()
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	return &ResolvedSession{Session: *session, Source: PlainTextSessionSource}, nil
}

// IsAuthenticated reports whether the resolved session marks the operator as
// logged in.
func IsAuthenticated(session *ResolvedSession) bool {
	return session != nil && session.Authenticated
}
