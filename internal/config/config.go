// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Keep fields unexported where possible and use functional options.
// - Provide New(...Option) initializer to build a Config with defaults.
// - All future functions must accept context.Context as the first parameter.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBUser and DBPassword are the database credentials. Typically
	// supplied through TRAZO_DB_USER / TRAZO_DB_PASSWORD.
	DBUser     string `koanf:"db_user"`
	DBPassword string `koanf:"db_password"`

	// DBURL is the database connection string,
	// e.g. "postgres://localhost:5432/digits".
	DBURL string `koanf:"db_url"`

	// ModelFunction names the scoring function hosted in the database.
	ModelFunction string `koanf:"model_function"`

	// PoolMinConns and PoolMaxConns bound the connection pool.
	PoolMinConns int `koanf:"pool_min_conns"`
	PoolMaxConns int `koanf:"pool_max_conns"`

	// AcquireTimeoutMS bounds the wait for a pooled connection.
	AcquireTimeoutMS int `koanf:"acquire_timeout_ms"`

	// ShutdownGraceMS bounds the drain of in-flight connections at exit.
	ShutdownGraceMS int `koanf:"shutdown_grace_ms"`
}

// New creates a Config with defaults. Credentials intentionally have no
// default; they come from the environment.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":8087",
		DBURL:            "postgres://localhost:5432/digits",
		ModelFunction:    "mnist_predict",
		PoolMinConns:     1,
		PoolMaxConns:     4,
		AcquireTimeoutMS: 5_000,
		ShutdownGraceMS:  10_000,
	}
}
