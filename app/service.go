package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kilianp07/sectionplanner/api"
	scheduleapi "github.com/kilianp07/sectionplanner/api/schedule"
	sectionsapi "github.com/kilianp07/sectionplanner/api/sections"
	"github.com/kilianp07/sectionplanner/config"
	"github.com/kilianp07/sectionplanner/core/cache"
	"github.com/kilianp07/sectionplanner/core/calendar"
	"github.com/kilianp07/sectionplanner/core/catalog"
	coremetrics "github.com/kilianp07/sectionplanner/core/metrics"
	"github.com/kilianp07/sectionplanner/core/planner"
	"github.com/kilianp07/sectionplanner/core/sections"
	infracache "github.com/kilianp07/sectionplanner/infra/cache"
	"github.com/kilianp07/sectionplanner/infra/logger"
	"github.com/kilianp07/sectionplanner/infra/metrics"
	"github.com/kilianp07/sectionplanner/infra/mqtt"
	_ "github.com/kilianp07/sectionplanner/infra/registrar"
	infrasections "github.com/kilianp07/sectionplanner/infra/sections"
	"github.com/kilianp07/sectionplanner/infra/watch"
)

// Service wires the catalog, planner and section store behind the HTTP API.
type Service struct {
	Catalog  *catalog.Catalog
	Planner  *planner.Planner
	Sections *sections.Service

	cfg     *config.Config
	log     logger.Logger
	sink    coremetrics.MetricsSink
	closers []func() error
}

// New creates a Service from the configuration. The calendar and rule files
// are loaded before it returns.
func New(ctx context.Context, cfg *config.Config) (*Service, error) {
	if err := logger.SetLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	logg := logger.New("service")
	svc := &Service{cfg: cfg, log: logg}

	sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	svc.sink = sink

	if svc.Catalog, err = LoadCatalog(ctx, cfg); err != nil {
		_ = svc.Close()
		return nil, err
	}

	c, err := svc.newCache(ctx)
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("cache: %w", err)
	}
	svc.Planner = planner.New(svc.Catalog, c, cfg.Cache.TTL(), sink, logger.New("planner"), cfg.Schedule.DefaultStartTime)

	store, err := svc.newStore()
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("section store: %w", err)
	}
	notifier, err := svc.newNotifier()
	if err != nil {
		_ = svc.Close()
		return nil, fmt.Errorf("mqtt notifier: %w", err)
	}
	svc.Sections = sections.NewService(store, notifier, logger.New("sections"))
	return svc, nil
}

// LoadCatalog builds the configured calendar source and loads the calendar
// and rule files.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	src, err := calendar.NewSource(cfg.Calendar.Source)
	if err != nil {
		return nil, fmt.Errorf("calendar source: %w", err)
	}
	cat := catalog.New(src, cfg.Rules.AttendancePath, cfg.Rules.ContactHoursPath)
	if err := cat.Reload(ctx); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return cat, nil
}

func (s *Service) newCache(ctx context.Context) (cache.Cache, error) {
	switch s.cfg.Cache.Backend {
	case "none":
		return cache.Nop{}, nil
	case "redis":
		rc, err := infracache.NewRedisCache(ctx, s.cfg.Cache.Address, s.cfg.Cache.Password, s.cfg.Cache.DB)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, rc.Close)
		return rc, nil
	default:
		return cache.NewMemory(s.cfg.Cache.MaxEntries), nil
	}
}

func (s *Service) newStore() (sections.Store, error) {
	if s.cfg.Storage.Backend != "sqlite" {
		return sections.NewMemoryStore(), nil
	}
	st, err := infrasections.NewSQLiteStore(s.cfg.Storage.Path)
	if err != nil {
		return nil, err
	}
	s.closers = append(s.closers, st.Close)
	return st, nil
}

func (s *Service) newNotifier() (sections.Notifier, error) {
	var next sections.Notifier = sections.NopNotifier{}
	if s.cfg.MQTT.Enabled {
		n, err := mqtt.NewNotifier(s.cfg.MQTT.Config)
		if err != nil {
			return nil, err
		}
		s.closers = append(s.closers, func() error { n.Disconnect(); return nil })
		next = n
	}
	return metrics.SectionCollector{Sink: s.sink, Next: next}, nil
}

func (s *Service) promEnabled() bool {
	for _, c := range s.cfg.Metrics.Sinks {
		if c.Type == "prometheus" {
			return true
		}
	}
	return false
}

// Handler returns the API router with authentication and rate limiting.
func (s *Service) Handler() http.Handler {
	limiter := api.NewLimiter(s.cfg.Server.RatePerSec, s.cfg.Server.Burst)
	wrap := func(h http.Handler) http.Handler {
		return api.RateLimit(limiter, api.Auth(s.cfg.Server.Token, h))
	}
	format := s.cfg.Schedule.Format()

	mux := http.NewServeMux()
	mux.Handle("/api/schedule", wrap(scheduleapi.NewGenerateHandler(s.Planner)))
	mux.Handle("/api/schedule/export", wrap(scheduleapi.NewExportHandler(s.Planner, format)))
	mux.Handle("/api/terms", wrap(scheduleapi.NewTermsHandler(s.Planner)))
	mux.Handle("/api/rules", wrap(scheduleapi.NewRulesHandler(s.Planner)))
	mux.Handle("/api/endtime", wrap(scheduleapi.NewEndTimeHandler()))
	sectionsapi.Register(mux, s.Sections, s.Planner, wrap)
	if s.promEnabled() && s.cfg.Metrics.PrometheusPort == "" {
		mux.Handle("/metrics", metrics.Handler())
	}
	return mux
}

// Run serves the API and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled() && s.cfg.Metrics.PrometheusPort != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.cfg.Calendar.Watch {
		w := &watch.Watcher{Paths: s.Catalog.Paths(), Reload: s.reload, Log: logger.New("watch")}
		go func() {
			if err := w.Run(ctx); err != nil {
				s.log.Errorf("watcher: %v", err)
			}
		}()
	}

	srv := &http.Server{Addr: s.cfg.Server.Address, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("http shutdown: %v", err)
		}
		cancel()
	}()
	s.log.Infof("listening on %s", s.cfg.Server.Address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Service) reload(ctx context.Context) error {
	if err := s.Catalog.Reload(ctx); err != nil {
		return err
	}
	snap, err := s.Catalog.Snapshot()
	if err != nil {
		return err
	}
	s.log.Infof("catalog reloaded: version %d, %d terms", snap.Version, len(snap.Calendar.Terms()))
	return nil
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	if c, ok := s.sink.(interface{ Close() }); ok {
		c.Close()
	}
	return errors.Join(errs...)
}
