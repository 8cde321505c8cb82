package api

// AuthMode is the authentication strategy selected by the backend.
type AuthMode string

const (
	// AuthModeLocal authenticates with a password only; the client sends a
	// doubly SHA-256 hashed hex digest, never the raw password.
	AuthModeLocal AuthMode = "local"
	// AuthModeLDAP authenticates with username and raw password; hashing is
	// delegated to the directory server.
	AuthModeLDAP AuthMode = "ldap"
)

// ServiceStatus is the backend-reported health of the console's service.
// The set is open: the backend may report states this client does not know.
type ServiceStatus string

const (
	StatusUnknown    ServiceStatus = "unknown"
	StatusActivating ServiceStatus = "activating"
	StatusActive     ServiceStatus = "active"
	StatusDegraded   ServiceStatus = "degraded"
	StatusError      ServiceStatus = "error"
)

// Preferences are the operator's console preferences.
type Preferences struct {
	Layout   string `json:"layout"`
	Language string `json:"language"`
}

// DefaultPreferences are served until the backend's values are known.
func DefaultPreferences() Preferences {
	return Preferences{Layout: "boxed", Language: "en"}
}

// VersionInfo is the backend's build information.
type VersionInfo struct {
	Version string `json:"version"`
}
