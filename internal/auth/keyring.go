package auth

import (
	"encoding/json"
	"errors"

	"github.com/zalando/go-keyring"
)

const (
	keyringService = "webctl"
	sessionKey     = "session"
)

func storeSessionInKeyring(session *Session) error {
	sessionJson, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return keyring.Set(keyringService, sessionKey, string(sessionJson))
}

func getSessionFromKeyring() (*Session, error) {
	sessionJson, err := keyring.Get(keyringService, sessionKey)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var session Session
	err = json.Unmarshal([]byte(sessionJson), &session)
	if err != nil {
		// this is an unlikely state. Remove the entry from the keyring and
		// allow the user to log in again.
		return nil, deleteSessionFromKeyring()
	}
	return &session, nil
}

func deleteSessionFromKeyring() error {
	err := keyring.Delete(keyringService, sessionKey)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}
