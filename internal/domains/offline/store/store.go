package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"yujin/config"
	bookingModel "yujin/internal/domains/booking/model"
	"yujin/internal/domains/offline/model"
	"yujin/shared/constant"
	"yujin/shared/timezone"
)

const fileName = "offline_bookings.jsonl"

// Store is the file-backed fallback sink for bookings the database
// refused. One JSON document per line, guarded by a single mutex; the
// volume here is a handful of rows during an outage, not a data store.
type Store interface {
	Append(ctx context.Context, booking bookingModel.Booking, reason string) (model.OfflineBooking, error)
	List(ctx context.Context) ([]model.OfflineBooking, error)
	Remove(ctx context.Context, id string) error
	Clear(ctx context.Context) error
}

type storeImpl struct {
	path string
	mu   sync.Mutex
}

func New(cfg *config.Config) (Store, error) {
	dir := cfg.Booking.OfflineDir
	if dir == "" {
		dir = "data"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create offline store directory: %w", err)
	}

	return &storeImpl{
		path: filepath.Join(dir, fileName),
	}, nil
}

func (s *storeImpl) Append(_ context.Context, booking bookingModel.Booking, reason string) (model.OfflineBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := timezone.Now()

	booking.Status = constant.BookingStatusPendingOffline

	record := model.OfflineBooking{
		ID:      fmt.Sprintf("%s%d", constant.LocalFallbackPrefix, now.UnixMilli()),
		Booking: booking,
		Reason:  reason,
		SavedAt: now,
	}

	line, err := json.Marshal(record)
	if err != nil {
		return model.OfflineBooking{}, fmt.Errorf("failed to marshal offline booking: %w", err)
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return model.OfflineBooking{}, fmt.Errorf("failed to open offline store: %w", err)
	}
	defer file.Close()

	if _, err = file.Write(append(line, '\n')); err != nil {
		return model.OfflineBooking{}, fmt.Errorf("failed to append offline booking: %w", err)
	}

	log.Warn().Str("id", record.ID).Str("reason", reason).Msg("booking parked in offline store")

	return record, nil
}

func (s *storeImpl) List(_ context.Context) ([]model.OfflineBooking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.readAll()
}

func (s *storeImpl) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records, err := s.readAll()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.ID != id {
			kept = append(kept, record)
		}
	}

	return s.writeAll(kept)
}

func (s *storeImpl) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeAll(nil)
}

func (s *storeImpl) readAll() ([]model.OfflineBooking, error) {
	file, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open offline store: %w", err)
	}
	defer file.Close()

	var records []model.OfflineBooking

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record model.OfflineBooking
		if err := json.Unmarshal(line, &record); err != nil {
			// A torn line from a crashed write is dropped, not fatal.
			log.Error().Err(err).Msg("skipping unreadable offline booking line")

			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read offline store: %w", err)
	}

	return records, nil
}

func (s *storeImpl) writeAll(records []model.OfflineBooking) error {
	tmpPath := s.path + ".tmp"

	file, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open offline store for rewrite: %w", err)
	}

	for _, record := range records {
		line, err := json.Marshal(record)
		if err != nil {
			file.Close()

			return fmt.Errorf("failed to marshal offline booking: %w", err)
		}

		if _, err = file.Write(append(line, '\n')); err != nil {
			file.Close()

			return fmt.Errorf("failed to rewrite offline store: %w", err)
		}
	}

	if err = file.Close(); err != nil {
		return fmt.Errorf("failed to close offline store: %w", err)
	}

	if err = os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace offline store: %w", err)
	}

	return nil
}
