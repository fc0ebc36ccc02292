package usecasecontract

// IConfigProvider exposes application configuration to the usecase and
// handler layers.
type IConfigProvider interface {
	GetPort() string
	GetLogDebug() bool
	GetAppBaseURL() string
	GetLedgerDriver() string
	GetMongoURI() string
	GetMongoDBName() string
	GetDatabaseDSN() string
	GetRedisURL() string
	GetJWTSecret() string
	GetDefaultSiteID() string
	GetSites() map[string]string
	GetLikeTypes() []string
	GetCORSAllowOrigins() []string
}
