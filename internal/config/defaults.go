package config

import "time"

// Default values applied before any other configuration source.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DefaultTokenIssuer       = "go-bookshelf"
	DefaultTokenDuration     = 24 * time.Hour
	DefaultPasswordHashCost  = 10
	DefaultHTTPAddress       = "127.0.0.1:5001"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultFilesDir          = "uploads"
	DefaultBucketName        = "uploads"
	DefaultReconcileInterval = time.Duration(0)
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			Env:              EnvDevelopment,
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
		},
		Storage: Storage{
			Files:  Files{Dir: DefaultFilesDir},
			Bucket: Bucket{Name: DefaultBucketName},
		},
		Workers: Workers{ReconcileInterval: DefaultReconcileInterval},
	}
}
