package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/alex-pricope/coop-voting-system/api/controllers"
	"github.com/alex-pricope/coop-voting-system/api/transport"
	"github.com/alex-pricope/coop-voting-system/cache"
	"github.com/alex-pricope/coop-voting-system/logging"
	"github.com/alex-pricope/coop-voting-system/metrics"
	"github.com/alex-pricope/coop-voting-system/scheduler"
	"github.com/alex-pricope/coop-voting-system/storage"
	"github.com/alex-pricope/coop-voting-system/voting"
	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// App is the wired service: router, voting core and the optional sweeper.
type App struct {
	Engine  *gin.Engine
	Service *voting.Service
	Sweeper *scheduler.Sweeper

	closers []func() error
}

func (a *App) Close() error {
	if a.Sweeper != nil {
		a.Sweeper.Stop()
	}
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	return errors.Join(errs...)
}

// Build wires storage, cache, metrics, the voting core and the controllers.
func (s *Server) Build(ctx context.Context) (*App, error) {
	app := &App{}

	backend, err := s.newBackend(ctx)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, backend.Close)

	resultCache, err := s.newResultCache(ctx)
	if err != nil {
		_ = app.Close()
		return nil, err
	}
	if c, ok := resultCache.(*cache.RedisResultCache); ok {
		app.closers = append(app.closers, c.Close)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	app.Service = voting.NewService(backend,
		voting.WithResultCache(resultCache),
		voting.WithMetrics(metrics.New(registry)),
	)

	r := transport.NewRouter(s.config.Mode, registry)

	//Register controllers
	controllers.NewMembersController(app.Service.Members).RegisterRoutes(r)
	controllers.NewAgendasController(app.Service.Agendas, app.Service.Sessions).RegisterRoutes(r)
	controllers.NewSessionsController(app.Service.Sessions, app.Service.Votes, app.Service.Results).RegisterRoutes(r)
	app.Engine = r

	if s.config.SweeperConfig.Enabled {
		app.Sweeper = scheduler.NewSweeper(app.Service.Sessions, s.config.SweeperConfig.Interval)
	}
	return app, nil
}

func (s *Server) Start(ctx context.Context) error {
	app, err := s.Build(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logging.Log.Errorf("failed to release resources: %v", err)
		}
	}()

	//Do not run lambda helper locally
	if os.Getenv("APP_ENV") == "local" {
		if app.Sweeper != nil {
			app.Sweeper.Start(ctx)
		}
		return startLocal(ctx, app.Engine, s.config.Port)
	}
	// Lambda instances are frozen between invocations, so no sweeper runs there.
	startLambda(app.Engine)
	return nil
}

func (s *Server) newBackend(ctx context.Context) (*storage.Backend, error) {
	switch s.config.StorageConfig.Driver {
	case StorageMemory:
		logging.Log.Info("STORAGE: using in-memory backend")
		return storage.NewMemoryBackend(), nil
	case StorageSQLite:
		logging.Log.Infof("STORAGE: using sqlite backend at '%s'", s.config.SQLitePath)
		return storage.NewSQLiteBackend(s.config.SQLitePath)
	case StorageDynamoDB:
		return s.newDynamoBackend(ctx)
	default:
		return nil, fmt.Errorf("unknown storage driver '%s'", s.config.StorageConfig.Driver)
	}
}

func (s *Server) newDynamoBackend(ctx context.Context) (*storage.Backend, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.config.DynamoRegion))
	if err != nil {
		logging.Log.Errorf("failed to load AWS config: %v", err)
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	dynamoClient := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
		if s.config.DynamoEndpoint != "" {
			o.BaseEndpoint = aws.String(s.config.DynamoEndpoint)
		}
	})

	tables := storage.DynamoTables{
		Members:  s.config.TableNameMembers,
		Agendas:  s.config.TableNameAgendas,
		Sessions: s.config.TableNameSessions,
		Votes:    s.config.TableNameVotes,
		Keys:     s.config.TableNameCounters,
	}
	// Local endpoints (localstack) start empty; deployed tables come from infrastructure.
	if s.config.DynamoEndpoint != "" {
		if err := storage.CreateDynamoTables(ctx, dynamoClient, tables); err != nil {
			return nil, err
		}
	}

	logging.Log.Infof("STORAGE: using dynamodb backend in %s", s.config.DynamoRegion)
	return storage.NewDynamoBackend(dynamoClient, tables), nil
}

func (s *Server) newResultCache(ctx context.Context) (voting.ResultCache, error) {
	switch s.config.CacheConfig.Driver {
	case CacheMemory:
		return voting.NewMemoryResultCache(), nil
	case CacheRedis:
		return cache.NewRedisResultCache(ctx, s.config.RedisAddr, s.config.RedisTTL)
	default:
		return nil, fmt.Errorf("unknown cache driver '%s'", s.config.CacheConfig.Driver)
	}
}

// StartLambda sets up for AWS Lambda
func startLambda(engine *gin.Engine) {
	ginLambda := ginadapter.NewV2(engine)

	handler := func(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
		logging.Log.Infof("Lambda handler triggered on path: %s", req.RawPath)
		return ginLambda.ProxyWithContext(ctx, req)
	}

	logging.Log.Info("Starting lambda")
	lambda.Start(handler)
}

// StartLocal serves HTTP until ctx is cancelled, then drains in-flight requests.
func startLocal(ctx context.Context, engine *gin.Engine, port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logging.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
