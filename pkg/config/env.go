package config

import "os"

// EnvGetter abstracts environment lookups for testability.
type EnvGetter interface {
	LookupEnv(key string) (string, bool)
}

// RealEnvGetter reads the process environment.
type RealEnvGetter struct{}

func (r *RealEnvGetter) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// MapEnv is an EnvGetter backed by a map, used to inject fake
// credentials without touching the process environment.
type MapEnv map[string]string

func (m MapEnv) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Chain looks a key up in each getter in order and returns the first hit.
// The CLI chains the process environment before the .env file so that
// exported variables win.
type Chain []EnvGetter

func (c Chain) LookupEnv(key string) (string, bool) {
	for _, g := range c {
		if g == nil {
			continue
		}
		if v, ok := g.LookupEnv(key); ok {
			return v, true
		}
	}
	return "", false
}
