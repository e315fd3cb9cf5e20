package cfg

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/jimlawless/whereami"
)

type Config struct {
	Http     *HTTPConfig
	Grpc     *GRPCConfig
	Backend  *BackendCfg
	Auth     *AuthCfg
	Register *RegisterCfg
	Db       *PGDBCfg
	Redis    *RedisCfg
	Minio    *MinIOCfg
	Kafka    *KafkaCfg
}

type HTTPConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	SwaggerURL   string
}

type GRPCConfig struct {
	Port        string
	NetworkMode string
}

// BackendCfg описывает REST API бэкенда склада.
type BackendCfg struct {
	BaseURL            string
	Timeout            time.Duration
	MaxRetries         int           // только для GET
	RetryBaseDelay     time.Duration // первый шаг backoff
	RetryMaxDelay      time.Duration
	BreakerMaxFailures int // подряд идущих сбоев до размыкания breaker'а
	BreakerOpenTimeout time.Duration
}

// AuthCfg задаёт проверку access-токенов, выпущенных бэкендом.
type AuthCfg struct {
	JWTSecret  string
	JWTMethods []string // допустимые alg, только HMAC
	Leeway     time.Duration
}

type RegisterCfg struct {
	HighlightDuration time.Duration // сколько подсвечена последняя затронутая строка корзины
	SubmitTimeout     time.Duration
	ArchiveReceipts   bool
}

type PGDBCfg struct {
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MigrationsPath string
}

type RedisCfg struct {
	Addr        string
	Password    string
	User        string
	DB          int
	MaxRetries  int
	DialTimeout time.Duration
	Timeout     time.Duration
	ProductTTL  time.Duration
	SessionTTL  time.Duration
}

type MinIOCfg struct {
	MinioEndpoint     string
	BucketName        string
	MinioRootUser     string
	MinioRootPassword string
	MinioUseSSL       bool
}

type KafkaCfg struct {
	Topic             string
	Brokers           []string
	NetworkMode       string
	Partitions        int
	ReplicationFactor int
	OutboxBatchSize   int
}

// Load читает всю конфигурацию из переменных окружения.
func Load(log logger.Logger) (*Config, error) {
	http, err := loadHTTPConfig(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	backend, err := loadBackendCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	auth, err := loadAuthCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	register, err := loadRegisterCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db, err := loadPGDBCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	redis, err := loadRedisCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minio, err := loadMinIOCfg(log)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	kafka, err := loadKafkaCfg()
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &Config{
		Http:     http,
		Grpc:     loadGRPCConfig(),
		Backend:  backend,
		Auth:     auth,
		Register: register,
		Db:       db,
		Redis:    redis,
		Minio:    minio,
		Kafka:    kafka,
	}, nil
}

func loadHTTPConfig(log logger.Logger) (*HTTPConfig, error) {
	const (
		defaultPort         = "8080"
		defaultReadTimeout  = 5 * time.Second
		defaultWriteTimeout = 15 * time.Second
		defaultIdleTimeout  = 60 * time.Second
	)

	port := getEnvOrDefault("HTTP_PORT", defaultPort)

	readTimeout, err := parseDurationEnv("HTTP_READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("HTTP_WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid HTTP_WRITE_TIMEOUT")
		return nil, err
	}

	idleTimeout, err := parseDurationEnv("KEEP_ALIVE", defaultIdleTimeout)
	if err != nil {
		log.Errorf(err, "invalid KEEP_ALIVE")
		return nil, err
	}

	return &HTTPConfig{
		Port:         port,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
		SwaggerURL:   getEnvOrDefault("SWAGGER_URL", "http://localhost:"+port+"/swagger/doc.json"),
	}, nil
}

func loadGRPCConfig() *GRPCConfig {
	const (
		defaultPort        = "8091"
		defaultNetworkMode = "tcp"
	)

	return &GRPCConfig{
		Port:        getEnvOrDefault("GRPC_PORT", defaultPort),
		NetworkMode: getEnvOrDefault("GRPC_NETWORK_MODE", defaultNetworkMode),
	}
}

func loadBackendCfg(log logger.Logger) (*BackendCfg, error) {
	const (
		defaultTimeout            = 10 * time.Second
		defaultMaxRetries         = 3
		defaultRetryBaseDelay     = 100 * time.Millisecond
		defaultRetryMaxDelay      = 2 * time.Second
		defaultBreakerMaxFailures = 5
		defaultBreakerOpenTimeout = 30 * time.Second
	)

	baseURL := strings.TrimRight(getEnv("BACKEND_BASE_URL"), "/")
	if baseURL == "" {
		err := fmt.Errorf("BACKEND_BASE_URL is required")
		log.Errorf(err, "missing BACKEND_BASE_URL")
		return nil, err
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		log.Errorf(err, "invalid BACKEND_BASE_URL")
		return nil, e.Wrap("BACKEND_BASE_URL", e.ErrIncorrectEnvVariable)
	}

	timeout, err := parseDurationEnv("BACKEND_TIMEOUT", defaultTimeout)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_TIMEOUT")
		return nil, err
	}

	maxRetries, err := parseIntEnv("BACKEND_MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		return nil, e.Wrap("BACKEND_MAX_RETRIES", err)
	}

	baseDelay, err := parseDurationEnv("BACKEND_RETRY_BASE_DELAY", defaultRetryBaseDelay)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_RETRY_BASE_DELAY")
		return nil, err
	}

	maxDelay, err := parseDurationEnv("BACKEND_RETRY_MAX_DELAY", defaultRetryMaxDelay)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_RETRY_MAX_DELAY")
		return nil, err
	}

	maxFailures, err := parseIntEnv("BACKEND_BREAKER_MAX_FAILURES", defaultBreakerMaxFailures)
	if err != nil {
		return nil, e.Wrap("BACKEND_BREAKER_MAX_FAILURES", err)
	}

	openTimeout, err := parseDurationEnv("BACKEND_BREAKER_OPEN_TIMEOUT", defaultBreakerOpenTimeout)
	if err != nil {
		log.Errorf(err, "invalid BACKEND_BREAKER_OPEN_TIMEOUT")
		return nil, err
	}

	return &BackendCfg{
		BaseURL:            baseURL,
		Timeout:            timeout,
		MaxRetries:         maxRetries,
		RetryBaseDelay:     baseDelay,
		RetryMaxDelay:      maxDelay,
		BreakerMaxFailures: maxFailures,
		BreakerOpenTimeout: openTimeout,
	}, nil
}

func loadAuthCfg(log logger.Logger) (*AuthCfg, error) {
	const (
		defaultMethods = "HS256"
		defaultLeeway  = 30 * time.Second
	)

	secret := getEnv("JWT_SECRET")
	if secret == "" {
		err := fmt.Errorf("JWT_SECRET is required")
		log.Errorf(err, "missing JWT_SECRET")
		return nil, err
	}

	var methods []string
	for _, m := range strings.Split(getEnvOrDefault("JWT_METHODS", defaultMethods), ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		switch m {
		case "":
			continue
		case "HS256", "HS384", "HS512":
			methods = append(methods, m)
		default:
			log.Errorf(e.ErrIncorrectEnvVariable, "unsupported JWT method %q", m)
			return nil, e.Wrap("JWT_METHODS", e.ErrIncorrectEnvVariable)
		}
	}
	if len(methods) == 0 {
		return nil, e.Wrap("JWT_METHODS", e.ErrIncorrectEnvVariable)
	}

	leeway, err := parseDurationEnv("JWT_LEEWAY", defaultLeeway)
	if err != nil {
		log.Errorf(err, "invalid JWT_LEEWAY")
		return nil, err
	}

	return &AuthCfg{
		JWTSecret:  secret,
		JWTMethods: methods,
		Leeway:     leeway,
	}, nil
}

func loadRegisterCfg(log logger.Logger) (*RegisterCfg, error) {
	const (
		defaultHighlight     = 1500 * time.Millisecond
		defaultSubmitTimeout = 15 * time.Second
		defaultArchive       = true
	)

	highlight, err := parseDurationEnv("CART_HIGHLIGHT_DURATION", defaultHighlight)
	if err != nil {
		log.Errorf(err, "invalid CART_HIGHLIGHT_DURATION")
		return nil, err
	}

	submitTimeout, err := parseDurationEnv("SALE_SUBMIT_TIMEOUT", defaultSubmitTimeout)
	if err != nil {
		log.Errorf(err, "invalid SALE_SUBMIT_TIMEOUT")
		return nil, err
	}

	archive, err := strconv.ParseBool(getEnvOrDefault("ARCHIVE_RECEIPTS", strconv.FormatBool(defaultArchive)))
	if err != nil {
		log.Errorf(err, "invalid ARCHIVE_RECEIPTS")
		return nil, err
	}

	return &RegisterCfg{
		HighlightDuration: highlight,
		SubmitTimeout:     submitTimeout,
		ArchiveReceipts:   archive,
	}, nil
}

func loadPGDBCfg(log logger.Logger) (*PGDBCfg, error) {
	const (
		defaultHost           = "localhost"
		defaultPort           = "5432"
		defaultSSLMode        = "disable"
		defaultMigrationsPath = "file://db/migrations"
	)

	user := getEnv("POSTGRES_USER")
	if user == "" {
		err := fmt.Errorf("POSTGRES_USER is required")
		log.Errorf(err, "missing POSTGRES_USER")
		return nil, err
	}

	password := getEnv("POSTGRES_PASSWORD")
	if password == "" {
		err := fmt.Errorf("POSTGRES_PASSWORD is required")
		log.Errorf(err, "missing POSTGRES_PASSWORD")
		return nil, err
	}

	dbName := getEnv("POSTGRES_DB")
	if dbName == "" {
		err := fmt.Errorf("POSTGRES_DB is required")
		log.Errorf(err, "missing POSTGRES_DB")
		return nil, err
	}

	return &PGDBCfg{
		Host:           getEnvOrDefault("POSTGRES_HOST", defaultHost),
		Port:           getEnvOrDefault("POSTGRES_PORT", defaultPort),
		User:           user,
		Password:       password,
		DBName:         dbName,
		SSLMode:        getEnvOrDefault("SSL_MODE", defaultSSLMode),
		MigrationsPath: getEnvOrDefault("MIGRATIONS_PATH", defaultMigrationsPath),
	}, nil
}

func loadRedisCfg(log logger.Logger) (*RedisCfg, error) {
	const (
		defaultAddr         = "localhost:6379"
		defaultDB           = 0
		defaultMaxRetries   = 3
		defaultDialTimeout  = 5 * time.Second
		defaultReadTimeout  = 3 * time.Second
		defaultWriteTimeout = 3 * time.Second
		defaultProductTTL   = 30 * time.Second
		defaultSessionTTL   = 12 * time.Hour
	)

	db, err := parseIntEnv("REDIS_DB_ID", defaultDB)
	if err != nil {
		log.Errorf(err, "invalid REDIS_DB_ID")
		return nil, err
	}

	maxRetries, err := parseIntEnv("MAX_RETRIES", defaultMaxRetries)
	if err != nil {
		log.Errorf(err, "invalid MAX_RETRIES")
		return nil, err
	}

	dialTimeout, err := parseDurationEnv("DIAL_TIMEOUT", defaultDialTimeout)
	if err != nil {
		log.Errorf(err, "invalid DIAL_TIMEOUT")
		return nil, err
	}

	readTimeout, err := parseDurationEnv("READ_TIMEOUT", defaultReadTimeout)
	if err != nil {
		log.Errorf(err, "invalid READ_TIMEOUT")
		return nil, err
	}

	writeTimeout, err := parseDurationEnv("WRITE_TIMEOUT", defaultWriteTimeout)
	if err != nil {
		log.Errorf(err, "invalid WRITE_TIMEOUT")
		return nil, err
	}

	productTTL, err := parseDurationEnv("PRODUCT_TTL", defaultProductTTL)
	if err != nil {
		log.Errorf(err, "invalid PRODUCT_TTL")
		return nil, err
	}

	sessionTTL, err := parseDurationEnv("SESSION_TTL", defaultSessionTTL)
	if err != nil {
		log.Errorf(err, "invalid SESSION_TTL")
		return nil, err
	}

	return &RedisCfg{
		Addr:        getEnvOrDefault("REDIS_ADDR", defaultAddr),
		Password:    getEnv("REDIS_PASSWORD"),
		User:        getEnv("REDIS_USER"),
		DB:          db,
		MaxRetries:  maxRetries,
		DialTimeout: dialTimeout,
		Timeout:     max(readTimeout, writeTimeout),
		ProductTTL:  productTTL,
		SessionTTL:  sessionTTL,
	}, nil
}

func loadMinIOCfg(log logger.Logger) (*MinIOCfg, error) {
	const (
		defaultUseSSL   = false
		defaultEndpoint = "minio:9000"
		defaultBucket   = "receipts"
	)

	useSSL, err := strconv.ParseBool(getEnvOrDefault("MINIO_USE_SSL", strconv.FormatBool(defaultUseSSL)))
	if err != nil {
		log.Errorf(err, "invalid MINIO_USE_SSL")
		return nil, err
	}

	return &MinIOCfg{
		MinioEndpoint:     getEnvOrDefault("MINIO_ENDPOINT", defaultEndpoint),
		BucketName:        getEnvOrDefault("BUCKET_NAME", defaultBucket),
		MinioRootUser:     getEnv("MINIO_ROOT_USER"),
		MinioRootPassword: getEnv("MINIO_ROOT_PASSWORD"),
		MinioUseSSL:       useSSL,
	}, nil
}

func loadKafkaCfg() (*KafkaCfg, error) {
	const (
		defaultPartitions        = 3
		defaultReplicationFactor = 1
		defaultNetworkMode       = "tcp"
		defaultBatchSize         = 10
	)

	brokerStr := getEnv("KAFKA_BROKERS")
	if brokerStr == "" {
		return nil, fmt.Errorf("KAFKA_BROKERS environment variable is required")
	}
	brokers := strings.Split(brokerStr, ",")

	topic := getEnvOrDefault("KAFKA_TOPIC", "pos.sales")

	partitions, err := parseIntEnv("KAFKA_PARTITIONS", defaultPartitions)
	if err != nil {
		return nil, e.Wrap("KAFKA_PARTITIONS", err)
	}

	replicationFactor, err := parseIntEnv("REPLICATION_FACTOR", defaultReplicationFactor)
	if err != nil {
		return nil, e.Wrap("REPLICATION_FACTOR", err)
	}

	batchSize, err := parseIntEnv("OUTBOX_BATCH_SIZE", defaultBatchSize)
	if err != nil {
		return nil, e.Wrap("OUTBOX_BATCH_SIZE", err)
	}

	return &KafkaCfg{
		Brokers:           brokers,
		Topic:             topic,
		Partitions:        partitions,
		ReplicationFactor: replicationFactor,
		NetworkMode:       getEnvOrDefault("KAFKA_NETWORK_MODE", defaultNetworkMode),
		OutboxBatchSize:   batchSize,
	}, nil
}

// DSN собирает строку подключения key/value для pgx.
func (c *PGDBCfg) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// getEnv возвращает пустую строку, если переменная не задана.
func getEnv(key string) string {
	return os.Getenv(key)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	if v := os.Getenv(key); v != "" {
		return time.ParseDuration(v)
	}

	return defaultValue, nil
}

func parseIntEnv(key string, defaultValue int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return defaultValue, nil
	}

	intValue, err := strconv.Atoi(v)
	if err != nil {
		return defaultValue, e.ErrIncorrectEnvVariable
	}

	return intValue, nil
}
