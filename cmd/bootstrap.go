package cmd

import (
	"fmt"

	"masterdata-monitor/core/config"
	"masterdata-monitor/core/database"
	"masterdata-monitor/core/logger"
	"masterdata-monitor/core/metrics"
	"masterdata-monitor/core/probe"
	"masterdata-monitor/core/state"
	"masterdata-monitor/core/storage"
	"masterdata-monitor/feature/history"
	"masterdata-monitor/feature/region"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// session holds what every command builds from configuration.
type session struct {
	cfg     *config.Config
	logger  *zap.Logger
	store   *state.Store
	metrics *metrics.Metrics
	runID   string
	db      *gorm.DB
}

func bootstrap() (*session, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if regionsFlag != "" {
		cfg.Regions.Enabled = regionsFlag
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	runID := uuid.NewString()
	return &session{
		cfg:     cfg,
		logger:  logg.With(zap.String("run_id", runID)),
		store:   state.NewStore(cfg.State),
		metrics: metrics.New(),
		runID:   runID,
	}, nil
}

// close releases the history connection and flushes the logger.
func (s *session) close() {
	if s.db != nil {
		_ = database.Close(s.db)
	}
	_ = s.logger.Sync()
}

// adapters builds the enabled region adapters, each with an instrumented prober.
func (s *session) adapters() ([]region.Adapter, region.ProberFunc, error) {
	codes, err := s.cfg.Regions.Codes()
	if err != nil {
		return nil, nil, err
	}
	if len(codes) == 0 {
		return nil, nil, fmt.Errorf("no regions enabled")
	}

	client := probe.NewClient(s.cfg.Probe)
	probers := make(map[string]probe.Prober, len(codes))
	for _, code := range codes {
		probers[code] = s.metrics.Instrument(client, code)
	}
	proberFor := func(code string) probe.Prober {
		if p, ok := probers[code]; ok {
			return p
		}
		return client
	}

	adapters, err := region.NewSet(codes, proberFor, s.logger)
	if err != nil {
		return nil, nil, err
	}
	return adapters, proberFor, nil
}

// history connects the optional history database. Failures are logged and
// history is skipped.
func (s *session) history() *history.Repository {
	if !s.cfg.Database.Enabled {
		return nil
	}
	db, err := database.Connect(s.cfg.Database)
	if err != nil {
		s.logger.Warn("Optional history database connection failed", zap.Error(err))
		return nil
	}
	repo := history.NewRepository(db)
	if err := repo.Migrate(); err != nil {
		s.logger.Warn("History migration failed", zap.Error(err))
		_ = database.Close(db)
		return nil
	}
	s.db = db
	return repo
}

// bucket returns the optional bucket client and publisher. Both are nil when
// storage is disabled.
func (s *session) bucket() (storage.Client, *storage.Publisher, error) {
	if !s.cfg.Storage.Enabled {
		return nil, nil, nil
	}
	client, err := storage.NewClient(s.cfg.Storage)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	return client, storage.NewPublisher(client, s.cfg.Storage, s.logger), nil
}
