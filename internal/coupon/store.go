package coupon

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// store implements Store over tables loaded from one or more coupon files.
type store struct {
	tables []Table
	logger zerolog.Logger
	// No mutex needed - tables are read-only after initialisation
}

// StoreConfig holds configuration for the coupon store.
type StoreConfig struct {
	// FilePaths is the list of coupon file paths to load. Later files win
	// when the same code appears more than once.
	FilePaths []string
}

// DefaultStoreConfig returns the default store configuration.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		FilePaths: []string{
			"data/coupons/coupons.gz",
		},
	}
}

// NewStore creates a new coupon store.
// It loads all coupon files at initialisation time.
func NewStore(ctx context.Context, config *StoreConfig, loader Loader, logger zerolog.Logger) (Store, error) {
	if config == nil {
		config = DefaultStoreConfig()
	}

	logger = logger.With().Str("component", "coupon-store").Logger()

	logger.Info().
		Int("file_count", len(config.FilePaths)).
		Msg("initialising coupon store")

	s := &store{
		tables: make([]Table, 0, len(config.FilePaths)),
		logger: logger,
	}

	// Load all coupon files concurrently
	type loadResult struct {
		index int
		table Table
		err   error
	}

	resultChan := make(chan loadResult, len(config.FilePaths))
	var wg sync.WaitGroup

	for i, filePath := range config.FilePaths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			table, err := loader.Load(ctx, path)
			resultChan <- loadResult{
				index: index,
				table: table,
				err:   err,
			}
		}(i, filePath)
	}

	wg.Wait()
	close(resultChan)

	// Collect results in order
	results := make([]loadResult, len(config.FilePaths))
	for result := range resultChan {
		results[result.index] = result
	}

	for i, result := range results {
		if result.err != nil {
			logger.Error().
				Err(result.err).
				Str("file", config.FilePaths[i]).
				Msg("failed to load coupon file")
			return nil, fmt.Errorf("failed to load coupon file %s: %w", config.FilePaths[i], result.err)
		}
		s.tables = append(s.tables, result.table)
		logger.Info().
			Str("file", config.FilePaths[i]).
			Int("size", result.table.Size()).
			Msg("coupon file loaded")
	}

	logger.Info().
		Int("total_coupons", s.Size()).
		Msg("coupon store initialised successfully")

	return s, nil
}

// Lookup returns the coupon for an exact code match. Later files take
// precedence over earlier ones.
func (s *store) Lookup(code string) (Coupon, bool) {
	for i := len(s.tables) - 1; i >= 0; i-- {
		if c, ok := s.tables[i].Get(code); ok {
			return c, true
		}
	}
	return Coupon{}, false
}

// Size returns the total number of coupon entries across all tables.
func (s *store) Size() int {
	total := 0
	for _, t := range s.tables {
		total += t.Size()
	}
	return total
}

// Close releases resources held by the store.
func (s *store) Close() error {
	s.tables = nil
	return nil
}
