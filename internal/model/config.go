package model

// Config holds the application configuration
type Config struct {
	// RegistryURL is the base URL of the model registry API
	RegistryURL string `json:"registry_url"`

	// Token is the API token presented as a bearer credential
	Token string `json:"token,omitempty"`

	// Username is the acting user reported to the permission gate
	Username string `json:"username,omitempty"`

	// Admin marks the acting user as a registry administrator. Display-layer
	// only; the authoritative check lives in the registry API.
	Admin bool `json:"admin,omitempty"`

	// PollInterval is the page refresh cadence in seconds
	PollInterval int `json:"poll_interval"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		RegistryURL:  "http://localhost:8080",
		PollInterval: 5,
	}
}
