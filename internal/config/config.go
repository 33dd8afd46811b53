package config

import (
	"time"

	"compliance-service/internal/domain"

	"github.com/caarlos0/env/v11"
)

type Server struct {
	Port string `env:"PORT" envDefault:"8080"`
}

// DB is optional: without DATABASE_URL the built-in sample records are served.
type DB struct {
	URL             string        `env:"DATABASE_URL"`
	MigrationsPath  string        `env:"MIGRATIONS_PATH" envDefault:"file://db/migrations"`
	MaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"16"`
	MaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"8"`
	ConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"1h"`
	ConnMaxIdleTime time.Duration `env:"DB_CONN_MAX_IDLE_TIME" envDefault:"15m"`
}

type Kafka struct {
	BootstrapServers string `env:"KAFKA_BOOTSTRAP_SERVERS"`
	AuditTopic       string `env:"KAFKA_AUDIT_TOPIC" envDefault:"audit-events"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"debug"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

type Dashboard struct {
	// DefaultProfile is the JSON profile used when a request carries none.
	DefaultProfile  string `env:"DEFAULT_PROFILE"`
	ComplianceScore int    `env:"COMPLIANCE_SCORE" envDefault:"94"`
}

type Config struct {
	Server    Server
	DB        DB
	Kafka     Kafka
	Log       Log
	Dashboard Dashboard
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Profile parses DefaultProfile; malformed JSON yields an empty profile.
func (d Dashboard) Profile() domain.Profile {
	return domain.ParseProfile([]byte(d.DefaultProfile))
}
