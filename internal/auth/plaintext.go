package auth

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const (
	sessionFileName = "session"

	// cookieMarkerFileName simulates a server-set session cookie. Written
	// only in fake-backend mode so integration tests can observe a login
	// without a real backend.
	cookieMarkerFileName = "session-cookie"

	// HomeEnv overrides the client directory, mainly for tests.
	HomeEnv = "WEBCONSOLE_HOME"
)

// ClientDir returns the directory holding webctl's session and config files.
func ClientDir() (string, error) {
	if dir := os.Getenv(HomeEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".webconsole"), nil
}

func storeSessionInPlainText(session *Session) error {
	clientDir, err := ClientDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(clientDir, 0700); err != nil {
		return err
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		return err
	}

	// Write session file with restricted permissions (0600)
	return os.WriteFile(filepath.Join(clientDir, sessionFileName), sessionJson, 0600)
}

func getSessionFromPlainText() (*Session, error) {
	clientDir, err := ClientDir()
	if err != nil {
		return nil, err
	}

	sessionPath := filepath.Join(clientDir, sessionFileName)
	if _, err := os.Stat(sessionPath); os.IsNotExist(err) {
		return nil, nil
	}

	sessionJson, err := os.ReadFile(sessionPath)
	if err != nil {
		return nil, err
	}

	var session Session
	if err := json.Unmarshal(sessionJson, &session); err != nil {
		// If unmarshaling fails, remove the corrupted file
		_ = deleteSessionFromPlainText()
		return nil, err
	}

	return &session, nil
}

func deleteSessionFromPlainText() error {
	clientDir, err := ClientDir()
	if err != nil {
		return err
	}

	sessionPath := filepath.Join(clientDir, sessionFileName)
	if _, err := os.Stat(sessionPath); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(sessionPath)
}

// WriteCookieMarker records the fake-backend session cookie marker.
func WriteCookieMarker() error {
	clientDir, err := ClientDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(clientDir, 0700); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(clientDir, cookieMarkerFileName), []byte("1"), 0600)
}
