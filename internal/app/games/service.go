package games

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/preston-bernstein/bglist/internal/collection"
	"github.com/preston-bernstein/bglist/internal/logging"
	"github.com/preston-bernstein/bglist/internal/metrics"
	"github.com/preston-bernstein/bglist/internal/providers"
)

// Store defines the contract for persisting and retrieving the cached game list.
type Store interface {
	Path() string
	Exists() (bool, error)
	Write(names []string) error
	ReadAll() ([]string, error)
}

// Printer renders the game list.
type Printer interface {
	Print(names []string) error
}

// Service coordinates fetching, filtering, caching and printing unrated games.
type Service struct {
	provider providers.CollectionProvider
	store    Store
	printer  Printer
	logger   *slog.Logger
	metrics  *metrics.Recorder
	now      func() time.Time
}

// NewService constructs a Service. logger and recorder may be nil.
func NewService(provider providers.CollectionProvider, store Store, printer Printer, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		provider: provider,
		store:    store,
		printer:  printer,
		logger:   logger,
		metrics:  recorder,
		now:      time.Now,
	}
}

// Run optionally refreshes the cached list and then prints it.
func (s *Service) Run(ctx context.Context, forceUpdate bool) error {
	if forceUpdate {
		if _, err := s.Update(ctx); err != nil {
			return err
		}
	}
	names, err := s.List(ctx)
	if err != nil {
		return err
	}
	return s.printer.Print(names)
}

// Update fetches the collection, keeps the unrated games and overwrites the cached list.
func (s *Service) Update(ctx context.Context) (names []string, err error) {
	start := s.now()
	defer func() {
		s.metrics.RecordUpdateCycle(s.now().Sub(start), len(names), err)
	}()

	body, err := s.provider.FetchCollection(ctx)
	if err != nil {
		return nil, err
	}
	names, err = collection.ParseUnrated(body)
	if err != nil {
		return nil, err
	}

	logging.Info(s.logger, "saving list", logging.FieldPath, s.store.Path())
	if err := s.store.Write(names); err != nil {
		return nil, fmt.Errorf("save list: %w", err)
	}
	logging.Info(s.logger, "update done", logging.FieldCount, len(names))
	return names, nil
}

// List returns the cached list, running an update first when nothing is cached yet.
func (s *Service) List(ctx context.Context) ([]string, error) {
	exists, err := s.store.Exists()
	if err != nil {
		return nil, err
	}
	if !exists {
		logging.Info(s.logger, "no cached list, updating", logging.FieldPath, s.store.Path())
		if _, err := s.Update(ctx); err != nil {
			return nil, err
		}
	}
	logging.Debug(s.logger, "reading cached list", logging.FieldPath, s.store.Path())
	return s.store.ReadAll()
}
