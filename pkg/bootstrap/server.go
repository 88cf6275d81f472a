package bootstrap

// ServerEnv holds the HTTP listener configuration. The zone name is not
// validated here; time.LoadLocation rejects bad values at startup.
type ServerEnv struct {
	Port     uint16 `env:"PORT" envDefault:"8080"`
	TimeZone string `env:"TZ" envDefault:"UTC"`
}
