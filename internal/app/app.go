package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/DRSN-tech/pos-terminal/internal/cfg"
	v1Grpc "github.com/DRSN-tech/pos-terminal/internal/delivery/v1/grpc"
	v1Http "github.com/DRSN-tech/pos-terminal/internal/delivery/v1/http"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/auth"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/backend"
	"github.com/DRSN-tech/pos-terminal/internal/infrastructure/kafka"
	minioInfra "github.com/DRSN-tech/pos-terminal/internal/infrastructure/minio"
	s3Repo "github.com/DRSN-tech/pos-terminal/internal/repository/minio"
	"github.com/DRSN-tech/pos-terminal/internal/repository/pgdb"
	"github.com/DRSN-tech/pos-terminal/internal/repository/redis"
	"github.com/DRSN-tech/pos-terminal/internal/usecase"
	"github.com/DRSN-tech/pos-terminal/pkg/clients"
	"github.com/DRSN-tech/pos-terminal/pkg/closer"
	"github.com/DRSN-tech/pos-terminal/pkg/e"
	"github.com/DRSN-tech/pos-terminal/pkg/logger"
	"github.com/DRSN-tech/pos-terminal/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

const (
	initTimeout         = 10 * time.Second
	shutdownTimeout     = 15 * time.Second
	topicTimeout        = 10 * time.Second
	healthCheckInterval = 15 * time.Second
)

// App владеет всеми долгоживущими компонентами сервиса кассы.
type App struct {
	cfg    *config.Config
	logger logger.Logger
	closer *closer.Closer

	httpSrv  *v1Http.Server
	grpcSrv  *v1Grpc.GRPCServer
	worker   *kafka.OutboxWorker
	archiver *minioInfra.ReceiptInfrastructure

	// фоновая работа (outbox worker, health watch, загрузка чеков) останавливается вместе с ctx
	ctx    context.Context
	cancel context.CancelFunc
}

func NewApp(cfg *config.Config, logger logger.Logger) (*App, error) {
	ctx, cancel := context.WithCancel(context.Background())
	a := &App{
		cfg:    cfg,
		logger: logger,
		closer: closer.NewCloser(0),
		ctx:    ctx,
		cancel: cancel,
	}

	if err := a.init(); err != nil {
		cancel()
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if cerr := a.closer.Close(shutdownCtx); cerr != nil {
			logger.Warnf("cleanup after failed init: %v", cerr)
		}
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return a, nil
}

func (a *App) init() error {
	initCtx, initCancel := context.WithTimeout(a.ctx, initTimeout)
	defer initCancel()

	// === Postgres: журнал продаж и outbox ===
	db, err := initPGDB(initCtx, a.logger, a.cfg)
	if err != nil {
		return err
	}
	a.closer.AddFunc("postgres", db.Close)

	// === Redis: сессии и кэш товаров ===
	redisClient := clients.NewRedisClient(a.cfg.Redis)
	a.closer.Add("redis", func(context.Context) error { return redisClient.Close() })
	if err := redisClient.Ping(initCtx); err != nil {
		a.logger.Errorf(err, "failed to connect to redis")
		return err
	}

	// === MinIO: архив чеков ===
	minioClient, err := clients.NewMinIOClient(a.cfg.Minio)
	if err != nil {
		a.logger.Errorf(err, "failed to initialize minio client")
		return err
	}
	if err := clients.EnsureBucket(initCtx, minioClient, a.cfg.Minio.BucketName); err != nil {
		a.logger.Errorf(err, "failed to initialize MinIO bucket")
		return err
	}

	// === Kafka: события продаж через outbox ===
	producer := kafka.NewProducer(a.logger, a.cfg.Kafka)
	a.closer.Add("kafka producer", func(context.Context) error { return producer.Close() })
	if err := producer.EnsureTopic(topicTimeout); err != nil {
		// события остаются в outbox, пока брокер не вернется
		a.logger.Warnf("kafka topic check failed: %v", err)
	}

	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool)
	a.worker = kafka.NewOutboxWorker(outboxRepo, a.logger, producer, db.Dsn, pgdb.OutboxChannel,
		a.cfg.Kafka.OutboxBatchSize)
	a.worker.Start(a.ctx)
	a.closer.AddFunc("outbox worker", a.worker.Stop)

	a.archiver = minioInfra.NewReceiptInfrastructure(
		s3Repo.NewReceiptRepo(minioClient, a.cfg.Minio),
		a.logger,
		a.ctx,
	)
	a.closer.Add("receipt archive", a.archiver.WaitForArchive)

	// === Usecases ===
	backendClient := backend.NewClient(*a.cfg.Backend, a.logger)

	productUC := usecase.NewProductUC(
		backendClient,
		redis.NewCacheRepo(redisClient, a.cfg.Redis, a.logger),
		a.logger,
	)
	categoryUC := usecase.NewCategoryUC(backendClient, a.logger)
	receptionUC := usecase.NewReceptionUC(backendClient, productUC, a.logger)
	registerUC := usecase.NewRegisterUC(
		redis.NewSessionRepo(redisClient, a.cfg.Redis),
		productUC,
		backendClient,
		backendClient,
		pgdb.NewSaleJournalRepo(),
		outboxRepo,
		pgdb.NewTxRunner(db.Pool),
		a.archiver,
		usecase.RegisterSettings{
			HighlightDuration: a.cfg.Register.HighlightDuration,
			SubmitTimeout:     a.cfg.Register.SubmitTimeout,
			ArchiveReceipts:   a.cfg.Register.ArchiveReceipts,
		},
		a.logger,
	)

	// === Delivery ===
	a.grpcSrv = v1Grpc.NewGRPCServer(a.cfg.Grpc, a.logger)
	a.grpcSrv.WatchDependencies(a.ctx, healthCheckInterval, map[string]v1Grpc.Pinger{
		"postgres": db,
		"redis":    redisClient,
	})
	a.closer.Add("grpc server", a.grpcSrv.Stop)

	router := v1Http.NewRouter(chi.NewRouter(), a.logger)
	router.Init(v1Http.Usecases{
		Register:  registerUC,
		Catalog:   productUC,
		Category:  categoryUC,
		Reception: receptionUC,
	}, auth.NewDecoder(*a.cfg.Auth), a.cfg.Http.SwaggerURL)

	a.httpSrv = v1Http.NewServer(router.Handler(), a.cfg.Http)
	a.closer.Add("http server", a.httpSrv.Stop)

	return nil
}

// Run обслуживает запросы до сигнала или падения сервера, затем останавливает сервис.
func (a *App) Run() error {
	grpcErrCh := make(chan error, 1)
	go func() {
		a.logger.Infof("gRPC server starting on %s:%s", a.cfg.Grpc.NetworkMode, a.cfg.Grpc.Port)
		if err := a.grpcSrv.Start(); err != nil {
			a.logger.Errorf(err, "gRPC server failed")
			grpcErrCh <- err
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on %s", a.httpSrv.Addr())
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed")
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case appErr = <-grpcErrCh:
		a.logger.Errorf(appErr, "gRPC server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// Сначала закрываются серверы (LIFO), затем чеки в очереди успевают загрузиться
	// до отмены фонового ctx
	closeErr := a.closer.Close(shutdownCtx)
	a.cancel()
	if closeErr != nil {
		a.logger.Warnf("%v", closeErr)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(ctx context.Context, logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(ctx, cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		db.Close()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
