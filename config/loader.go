package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// LoaderOption customizes config loading.
type LoaderOption func(*loaderOptions)

type loaderOptions struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path, skipping the search.
func WithConfigFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.configFile = path }
}

// WithEnvFile sets an explicit .env file path, skipping the search.
func WithEnvFile(path string) LoaderOption {
	return func(o *loaderOptions) { o.envFile = path }
}

// LoadInto loads configuration for a service into the provided cfg struct.
// It reads a config.yml (searched in standard locations unless overridden),
// loads a .env file if present, binds environment variables, and unmarshals
// the merged result into cfg.
func LoadInto(serviceName string, cfg interface{}, opts ...LoaderOption) error {
	var o loaderOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.configFile == "" {
		o.configFile = findFile(configSearchPaths(serviceName))
	}
	if o.envFile == "" {
		o.envFile = findFile(envSearchPaths(serviceName))
	}

	v := viper.New()

	if o.configFile != "" {
		v.SetConfigFile(o.configFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", o.configFile, err)
		}
	}

	if o.envFile != "" {
		if err := godotenv.Load(o.envFile); err != nil {
			return fmt.Errorf("loading env file %s: %w", o.envFile, err)
		}
	}

	v.AutomaticEnv()
	bindEnvVars(v, topLevelKeys(cfg))

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("unmarshaling config for %s: %w", serviceName, err)
	}
	return nil
}

func configSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/config.yml", serviceName),
		fmt.Sprintf("../cmd/%s/config.yml", serviceName),
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	return []string{
		fmt.Sprintf("./cmd/%s/.env", serviceName),
		fmt.Sprintf("./.env.%s", serviceName),
		"./.env",
	}
}

func findFile(paths []string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// bindEnvVars maps UPPER_SNAKE environment variables onto viper's nested
// keys so that AUTH_JWT_ACCESS_SECRET can populate auth.jwt.access_secret.
// Underscores are ambiguous between nesting and multi-word keys, so every
// split point is registered. Only variants nested under a section the
// target config declares are applied: v.Set has the highest viper
// precedence, and ambient process variables like USER or VERSION must not
// silently override file values.
func bindEnvVars(v *viper.Viper, roots map[string]bool) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 {
			continue
		}
		for _, key := range envKeyVariants(pair[0]) {
			if i := strings.IndexByte(key, '.'); i > 0 && roots[key[:i]] {
				v.Set(key, pair[1])
			}
		}
	}
}

// topLevelKeys returns the top-level mapstructure key names of the config
// struct, lowercased field names where no tag is present.
func topLevelKeys(cfg interface{}) map[string]bool {
	keys := map[string]bool{}
	t := reflect.TypeOf(cfg)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return keys
	}
	for i := 0; i < t.NumField(); i++ {
		name := strings.SplitN(t.Field(i).Tag.Get("mapstructure"), ",", 2)[0]
		switch name {
		case "-":
			continue
		case "":
			name = strings.ToLower(t.Field(i).Name)
		}
		keys[name] = true
	}
	return keys
}

func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) <= 1 {
		return []string{lower}
	}

	seen := map[string]bool{}
	variants := make([]string, 0, len(parts)+1)
	add := func(k string) {
		if !seen[k] {
			seen[k] = true
			variants = append(variants, k)
		}
	}

	add(lower)
	add(strings.ReplaceAll(lower, "_", "."))
	// Progressive nesting: auth.jwt_access_secret, auth.jwt.access_secret, ...
	for i := 1; i < len(parts); i++ {
		add(strings.Join(parts[:i], ".") + "." + strings.Join(parts[i:], "_"))
	}
	return variants
}
