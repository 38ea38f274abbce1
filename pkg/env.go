package pkg

import "os"

// Getenv returns the value of key, or defaultValue when key is not set.
// A key set to an empty string is returned as is.
func Getenv(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}
	return value
}
