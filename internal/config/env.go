package config

import (
	"fmt"
	"os"
	"strconv"
)

func lookupInt(key string, fallback int) (int, error) {
	str, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	return v, nil
}

func lookupString(key string, fallback string) string {
	if str, ok := os.LookupEnv(key); ok {
		return str
	}
	return fallback
}

// Development is on when DEVELOPMENT is set to anything but "0".
func Development() bool {
	return lookupString("DEVELOPMENT", "0") != "0"
}
