package session

// pageTitles maps known protected-page paths to their display titles, so the
// login surface can tell the operator which page they will be returned to.
var pageTitles = map[string]string{
	"/":           "Overview",
	"/access":     "Access",
	"/activation": "Activation",
	"/backup":     "Backup",
	"/network":    "Network",
	"/settings":   "Settings",
	"/storage":    "Storage",
	"/support":    "Support",
	"/updates":    "Updates",
	"/users":      "Users",
}

// PageTitle returns the display title for a known protected-page path. The
// second result is false for paths this client does not know; the recorded
// destination string is still honored as-is on redirect.
func PageTitle(path string) (string, bool) {
	title, ok := pageTitles[path]
	return title, ok
}
