package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Pato1236897/Golf/api/controllers"
	"github.com/Pato1236897/Golf/api/transport"
	"github.com/Pato1236897/Golf/events"
	"github.com/Pato1236897/Golf/logging"
	"github.com/Pato1236897/Golf/realtime"
	"github.com/Pato1236897/Golf/service"
	"github.com/Pato1236897/Golf/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"
)

type Server struct {
	config *Config
}

func NewServer(config *Config) *Server {
	return &Server{
		config: config,
	}
}

// stores bundles the two storage halves with whatever must be released on shutdown.
type stores struct {
	matches storage.MatchStorage
	scores  storage.ScoreStorage
	close   func() error
}

func (s *Server) Start() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := s.openStorage(ctx)
	if err != nil {
		logging.Log.Fatalf("failed to open storage: %v", err)
	}
	defer func() {
		if err := st.close(); err != nil {
			logging.Log.Errorf("failed to close storage: %v", err)
		}
	}()

	publisher := s.openPublisher()
	defer func() {
		if err := publisher.Close(); err != nil {
			logging.Log.Errorf("EVENTS: failed to close publisher: %v", err)
		}
	}()

	hub := realtime.NewHub(st.matches)
	defer hub.Close()

	matchService := service.NewMatchService(st.matches, st.scores, hub, publisher, s.config.ListLimit)

	r := transport.NewRouter(s.ginMode())

	//Register controllers
	matchController := controllers.NewMatchController(matchService)
	matchController.RegisterRoutes(r)
	realtimeController := controllers.NewRealtimeController(matchService, hub, s.config.WriteTimeout)
	realtimeController.RegisterRoutes(r)

	s.serve(ctx, r)
}

func (s *Server) ginMode() string {
	switch s.config.Mode {
	case gin.ReleaseMode, gin.TestMode, gin.DebugMode:
		return s.config.Mode
	default:
		return gin.DebugMode
	}
}

func (s *Server) openStorage(ctx context.Context) (*stores, error) {
	switch s.config.Driver {
	case StorageDriverDynamo:
		cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(s.config.Region))
		if err != nil {
			return nil, fmt.Errorf("load AWS config: %w", err)
		}
		dynamoClient := dynamodb.NewFromConfig(cfg, func(o *dynamodb.Options) {
			if s.config.Endpoint != "" {
				o.BaseEndpoint = aws.String(s.config.Endpoint)
			}
		})

		if s.config.CreateTables {
			if err := storage.EnsureDynamoTables(ctx, dynamoClient, s.config.TableNameMatches, s.config.TableNameScores); err != nil {
				return nil, err
			}
		}

		logging.Log.Infof("Using DynamoDB tables %s and %s", s.config.TableNameMatches, s.config.TableNameScores)
		return &stores{
			matches: &storage.DynamoMatchStorage{
				Client:    dynamoClient,
				TableName: s.config.TableNameMatches,
			},
			scores: &storage.DynamoScoreStorage{
				Client:    dynamoClient,
				TableName: s.config.TableNameScores,
			},
			close: func() error { return nil },
		}, nil

	case StorageDriverSQLite:
		db, err := storage.OpenSQLite(s.config.SqlitePath)
		if err != nil {
			return nil, err
		}
		logging.Log.Infof("Using SQLite database %s", s.config.SqlitePath)
		return &stores{matches: db, scores: db, close: db.Close}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", s.config.Driver)
	}
}

func (s *Server) openPublisher() events.Publisher {
	if s.config.RabbitURL == "" {
		logging.Log.Info("EVENTS: no broker configured, domain events are dropped")
		return events.NopPublisher{}
	}
	publisher, err := events.NewAMQPPublisher(s.config.RabbitURL, s.config.Exchange)
	if err != nil {
		logging.Log.Errorf("EVENTS: broker unavailable, domain events are dropped: %v", err)
		return events.NopPublisher{}
	}
	logging.Log.Infof("EVENTS: publishing to exchange %s", s.config.Exchange)
	return publisher
}

// serve runs the HTTP server until ctx is cancelled, then drains in-flight requests.
func (s *Server) serve(ctx context.Context, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.config.Port),
		Handler: engine,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Log.Info(fmt.Sprintf("Starting server on http://localhost:%d", s.config.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Log.Errorf("Failed to run server: %v", err)
		}
		return
	case <-ctx.Done():
	}

	logging.Log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Log.Errorf("Graceful shutdown failed: %v", err)
	}
}
