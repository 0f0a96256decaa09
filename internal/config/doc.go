// Package config loads and validates application settings. Values come
// from VERDANT_-prefixed environment variables via viper, are decoded
// into typed section structs, and are checked with validator tags before
// the process is allowed to boot.
package config
