package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Route construction limits. A nil field disables the corresponding check; a
// set value takes part in plain numeric comparisons, so a zero capacity means
// no customer with positive demand fits, it does not mean "unlimited".
type Config struct {
	LoadCapacity *float64
	Duration     *float64
	NumStops     *int
}

// Load reads the configuration from environment variables, preferring a local
// .env file when one exists. Unset variables leave the matching limit
// disabled.
//
// Recognized variables: LOAD_CAPACITY, MAX_DURATION, MAX_STOPS.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	var cfg Config

	if v := os.Getenv("LOAD_CAPACITY"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("load config: parse LOAD_CAPACITY %q: %w", v, err)
		}
		cfg.LoadCapacity = &f
	}

	if v := os.Getenv("MAX_DURATION"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, fmt.Errorf("load config: parse MAX_DURATION %q: %w", v, err)
		}
		cfg.Duration = &f
	}

	if v := os.Getenv("MAX_STOPS"); v != "" {
		s, err := strconv.Atoi(v)
		if err != nil {
			return Config{}, fmt.Errorf("load config: parse MAX_STOPS %q: %w", v, err)
		}
		cfg.NumStops = &s
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	return cfg, nil
}

// Validate rejects limits that can never be satisfied in a meaningful way.
func (c Config) Validate() error {
	if c.LoadCapacity != nil && *c.LoadCapacity < 0 {
		return fmt.Errorf("config: LOAD_CAPACITY must be non-negative, got %v", *c.LoadCapacity)
	}
	if c.Duration != nil && *c.Duration < 0 {
		return fmt.Errorf("config: MAX_DURATION must be non-negative, got %v", *c.Duration)
	}
	if c.NumStops != nil && *c.NumStops < 0 {
		return fmt.Errorf("config: MAX_STOPS must be non-negative, got %d", *c.NumStops)
	}
	return nil
}

// Get returns the value of an environment variable, or fallback when unset.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
