package driven

// ConfigStore provides persistent key-value configuration.
type ConfigStore interface {
	// Get retrieves a configuration value by key.
	Get(key string) (any, bool)

	// GetString retrieves a string value, empty when absent.
	GetString(key string) string

	// GetInt retrieves an integer value, zero when absent.
	GetInt(key string) int

	// GetBool retrieves a boolean value, false when absent.
	GetBool(key string) bool

	// Set stores a value and persists immediately.
	Set(key string, value any) error

	// Delete removes a key and persists immediately.
	Delete(key string) error
}
