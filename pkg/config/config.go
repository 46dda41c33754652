package config

import (
	"errors"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTP          HTTP
	Logger        Logger
	Postgres      Postgres
	Redis         Redis
	Kafka         Kafka
	PAC           PAC
	S3            S3
	Orders        Collaborator `envPrefix:"ORDERS_"`
	Settings      Collaborator `envPrefix:"SETTINGS_"`
	Invoicing     Invoicing
	ExchangeRates map[string]string `env:"EXCHANGE_RATES" envDefault:""`
}

type HTTP struct {
	Port          int    `env:"HTTP_PORT" envDefault:"8080"`
	APIKeyEnabled bool   `env:"HTTP_API_KEY_ENABLED" envDefault:"false"`
	APIKey        string `env:"HTTP_API_KEY" envDefault:"dev"`
}

type Logger struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
}

type Postgres struct {
	DSN     string `env:"POSTGRES_DSN"`
	MaxConn int32  `env:"POSTGRES_MAX_CONNS" envDefault:"10"`
}

type Redis struct {
	Addr     string `env:"REDIS_ADDR" envDefault:""`
	Password string `env:"REDIS_PASSWORD" envDefault:""`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

type Kafka struct {
	Brokers             []string `env:"KAFKA_BROKERS"`
	GroupID             string   `env:"KAFKA_GROUP_ID" envDefault:"fiscal"`
	AuditTopic          string   `env:"KAFKA_AUDIT_TOPIC" envDefault:"fiscal.audit"`
	NotificationTopic   string   `env:"KAFKA_NOTIFICATION_TOPIC" envDefault:"notification.email"`
	OrderCompletedTopic string   `env:"KAFKA_ORDER_COMPLETED_TOPIC" envDefault:"orders.completed"`
}

type PAC struct {
	BaseURL            string        `env:"PAC_BASE_URL"`
	Provider           string        `env:"PAC_PROVIDER" envDefault:"default"`
	Timeout            time.Duration `env:"PAC_TIMEOUT" envDefault:"20s"`
	TokenRefreshBefore time.Duration `env:"PAC_TOKEN_REFRESH_BEFORE" envDefault:"2m"`
	DefaultTokenTTL    time.Duration `env:"PAC_DEFAULT_TOKEN_TTL" envDefault:"30m"`
	RetryMax           int           `env:"PAC_RETRY_MAX" envDefault:"3"`
	RetryWaitMin       time.Duration `env:"PAC_RETRY_WAIT_MIN" envDefault:"500ms"`
	RetryWaitMax       time.Duration `env:"PAC_RETRY_WAIT_MAX" envDefault:"5s"`
	BreakerFailures    uint32        `env:"PAC_BREAKER_FAILURES" envDefault:"5"`
	BreakerOpenTimeout time.Duration `env:"PAC_BREAKER_OPEN_TIMEOUT" envDefault:"30s"`
}

type S3 struct {
	Endpoint     string `env:"S3_ENDPOINT" envDefault:""`
	Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	Bucket       string `env:"S3_BUCKET"`
	AccessKey    string `env:"S3_ACCESS_KEY"`
	SecretKey    string `env:"S3_SECRET_KEY"`
	UsePathStyle bool   `env:"S3_USE_PATH_STYLE" envDefault:"true"`
}

type Collaborator struct {
	URL    string `env:"SERVICE_URL"`
	APIKey string `env:"SERVICE_API_KEY" envDefault:""`
}

type Invoicing struct {
	MaxBatchSize       int           `env:"INVOICING_MAX_BATCH_SIZE" envDefault:"100"`
	ChunkSize          int           `env:"INVOICING_CHUNK_SIZE" envDefault:"50"`
	Workers            int           `env:"INVOICING_WORKERS" envDefault:"5"`
	PaceEvery          time.Duration `env:"INVOICING_PACE_EVERY" envDefault:"2s"`
	PaceBurst          int           `env:"INVOICING_PACE_BURST" envDefault:"1"`
	BatchDeadline      time.Duration `env:"INVOICING_BATCH_DEADLINE" envDefault:"5m"`
	SubmitAttempts     int           `env:"INVOICING_SUBMIT_ATTEMPTS" envDefault:"3"`
	MaxAttempts        int           `env:"INVOICING_MAX_ATTEMPTS" envDefault:"9"`
	BackoffBase        time.Duration `env:"INVOICING_BACKOFF_BASE" envDefault:"500ms"`
	BackoffMax         time.Duration `env:"INVOICING_BACKOFF_MAX" envDefault:"10s"`
	FolioPolicy        string        `env:"INVOICING_FOLIO_POLICY" envDefault:"reserve-on-commit"`
	FolioStore         string        `env:"INVOICING_FOLIO_STORE" envDefault:"postgres"`
	ScheduledPageSize  int           `env:"INVOICING_SCHEDULED_PAGE_SIZE" envDefault:"50"`
	ScheduledMaxPages  int           `env:"INVOICING_SCHEDULED_MAX_PAGES" envDefault:"10"`
	SweepInterval      time.Duration `env:"INVOICING_SWEEP_INTERVAL" envDefault:"1h"`
	RetryInterval      time.Duration `env:"INVOICING_RETRY_INTERVAL" envDefault:"10m"`
	ReconcileInterval  time.Duration `env:"INVOICING_RECONCILE_INTERVAL" envDefault:"15m"`
	ReconcileAfter     time.Duration `env:"INVOICING_RECONCILE_AFTER" envDefault:"10m"`
	JobBatchLimit      int           `env:"INVOICING_JOB_BATCH_LIMIT" envDefault:"50"`
	ConsumeOrderEvents bool          `env:"INVOICING_CONSUME_ORDER_EVENTS" envDefault:"true"`
}

func New(envPath string) (Config, error) {
	err := godotenv.Load(envPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	c, err := env.ParseAsWithOptions[Config](env.Options{
		RequiredIfNoDef: true,
	})
	if err != nil {
		return Config{}, err
	}

	return c, nil
}
