package model

// --- SYSTEM CONFIG ---
// EnvConfig holds the settings parsed from the `config` environment variable
// @Description Private configuration (never exposed in public endpoints)
type EnvConfig struct {
	Port        string `json:"port"`
	Environment string `json:"environment"`
	LogLevel    string `json:"logLevel"`

	DbDriver string `json:"dbDriver"`
	DbDsn    string `json:"dbDsn"`
	RedisUrl string `json:"redisUrl"`

	MongoUri      string `json:"mongoUri"`
	MongoDatabase string `json:"mongoDatabase"`

	CalcApiUrl string `json:"calcApiUrl"`
	CalcApiKey string `json:"calcApiKey"`

	JwtSecret         string `json:"jwtSecret"`
	AdminUser         string `json:"adminUser"`
	AdminPasswordHash string `json:"adminPasswordHash"`

	Benchmark     string            `json:"benchmark"`
	YahooSymbols  map[string]string `json:"yahooSymbols"`
	RefreshHour   int               `json:"refreshHour"`
	RefreshMinute int               `json:"refreshMinute"`

	FrontendUrls []string `json:"frontendUrls"`
	RateLimiter  bool     `json:"rateLimiter"`
}

func (c *EnvConfig) IsProduction() bool {
	return c.Environment == "production"
}

// RuntimeConfig holds the settings that can be swapped without a restart
type RuntimeConfig struct {
	FrontendUrls []string `json:"frontendUrls"`
	RateLimiter  bool     `json:"rateLimiter"`
	Benchmark    string   `json:"benchmark"`
}

func (c *EnvConfig) Runtime() *RuntimeConfig {
	return &RuntimeConfig{
		FrontendUrls: c.FrontendUrls,
		RateLimiter:  c.RateLimiter,
		Benchmark:    c.Benchmark,
	}
}
