package logic

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/config"
	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/remotelog"
	"github.com/akurlov/shortly/internal/shortcode"
)

const (
	MinValidityMinutes = 1
	MaxValidityMinutes = 1440

	tagCreate  = "create"
	tagClick   = "click"
	tagCleanup = "cleanup"
)

var (
	ErrInvalidURL      = errors.New("original url must be absolute")
	ErrInvalidValidity = errors.New("validity must be between 1 and 1440 minutes")
	ErrShortcodeTaken  = errors.New("shortcode is already taken")
	ErrNotFound        = errors.New("not found")
)

// Repository is the persistence adapter the record store runs on. Reads
// never fail (absent or corrupt storage degrades to empty), writes
// replace the whole collection.
type Repository interface {
	LoadAll() []models.ShortenedRecord
	SaveAll(records []models.ShortenedRecord) error
	Ping() error
}

type CoreLogic struct {
	config *config.ServerConfig
	repo   Repository
	logger *zap.SugaredLogger
	diag   remotelog.Logger
}

func NewCoreLogic(
	config *config.ServerConfig,
	repo Repository,
	logger *zap.SugaredLogger,
	diag remotelog.Logger,
) *CoreLogic {
	return &CoreLogic{
		config: config,
		repo:   repo,
		logger: logger,
		diag:   diag,
	}
}

// Create validates the input, allocates a shortcode when none is given
// and persists the new record. Zero validityMinutes means the
// configured default. The uniqueness check counts expired records that
// have not been cleaned up yet.
func (cl *CoreLogic) Create(
	ctx context.Context,
	originalURL string,
	customShortcode string,
	validityMinutes int,
) (*models.ShortenedRecord, error) {
	if validityMinutes == 0 {
		validityMinutes = cl.config.DefaultValidityMinutes
	}

	parsed, err := url.Parse(originalURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, ErrInvalidURL
	}

	if validityMinutes < MinValidityMinutes || validityMinutes > MaxValidityMinutes {
		return nil, ErrInvalidValidity
	}

	records := cl.repo.LoadAll()

	taken := make(map[string]struct{}, len(records))
	for _, r := range records {
		taken[r.Shortcode] = struct{}{}
	}

	code := customShortcode
	if code != "" {
		if _, ok := taken[code]; ok {
			return nil, ErrShortcodeTaken
		}
	} else {
		code, err = shortcode.GenerateUnique(func(c string) bool {
			_, ok := taken[c]
			return ok
		})
		if err != nil {
			err = fmt.Errorf("error allocating shortcode: %w", err)
			cl.logger.Error(err)
			cl.diag.Error(tagCreate, err.Error())
			return nil, err
		}
	}

	now := time.Now()
	record := models.ShortenedRecord{
		ID:              uuid.New().String(),
		Shortcode:       code,
		OriginalURL:     originalURL,
		CreatedAt:       now,
		ExpiresAt:       now.Add(time.Duration(validityMinutes) * time.Minute),
		ValidityMinutes: validityMinutes,
		Clicks:          []models.ClickEvent{},
	}

	// Filter out any record with the same id before appending. A no-op
	// for brand-new ids, but keeps the write idempotent.
	kept := records[:0]
	for _, r := range records {
		if r.ID != record.ID {
			kept = append(kept, r)
		}
	}
	kept = append(kept, record)

	if err := cl.repo.SaveAll(kept); err != nil {
		err = fmt.Errorf("error saving new record: %w", err)
		cl.logger.Error(err)
		cl.diag.Error(tagCreate, err.Error())
		return nil, err
	}

	cl.diag.Info(tagCreate, fmt.Sprintf("shortcode %q created, expires at %s",
		record.Shortcode, record.ExpiresAt.Format(time.RFC3339)))

	return &record, nil
}

// Get returns the stored record for a shortcode, expired or not.
// Matching is exact and case-sensitive.
func (cl *CoreLogic) Get(ctx context.Context, code string) (*models.ShortenedRecord, error) {
	records := cl.repo.LoadAll()
	for i := range records {
		if records[i].Shortcode == code {
			return &records[i], nil
		}
	}

	return nil, ErrNotFound
}

func (cl *CoreLogic) Exists(ctx context.Context, code string) bool {
	_, err := cl.Get(ctx, code)
	return err == nil
}

// IsExpired reports whether the record's validity window has passed,
// strictly: a record is still active at the exact expiry instant.
func (cl *CoreLogic) IsExpired(record *models.ShortenedRecord) bool {
	return time.Now().After(record.ExpiresAt)
}

// RecordClick appends a click event to an active record. An absent or
// expired shortcode yields (false, nil), only a failed write is an
// error. Empty source and location fall back to "direct" and "unknown".
func (cl *CoreLogic) RecordClick(ctx context.Context, code string, source string, location string) (bool, error) {
	records := cl.repo.LoadAll()

	idx := -1
	for i := range records {
		if records[i].Shortcode == code {
			idx = i
			break
		}
	}
	if idx < 0 {
		cl.diag.Warn(tagClick, fmt.Sprintf("click on unknown shortcode %q", code))
		return false, nil
	}
	if cl.IsExpired(&records[idx]) {
		cl.diag.Warn(tagClick, fmt.Sprintf("click on expired shortcode %q", code))
		return false, nil
	}

	if source == "" {
		source = models.SourceDirect
	}
	if location == "" {
		location = models.LocationUnknown
	}

	records[idx].Clicks = append(records[idx].Clicks, models.ClickEvent{
		Timestamp: time.Now(),
		Source:    source,
		Location:  location,
	})

	if err := cl.repo.SaveAll(records); err != nil {
		err = fmt.Errorf("error saving click: %w", err)
		cl.logger.Error(err)
		cl.diag.Error(tagClick, err.Error())
		return false, err
	}

	cl.diag.Info(tagClick, fmt.Sprintf("click recorded for %q from %q", code, source))

	return true, nil
}

// CleanupExpired removes every expired record and reports how many were
// dropped. When nothing expired, storage is not touched, so running the
// sweep twice in a row is a no-op the second time.
func (cl *CoreLogic) CleanupExpired(ctx context.Context) (int, error) {
	records := cl.repo.LoadAll()

	active := make([]models.ShortenedRecord, 0, len(records))
	for _, r := range records {
		r := r
		if !cl.IsExpired(&r) {
			active = append(active, r)
		}
	}

	removed := len(records) - len(active)
	if removed == 0 {
		return 0, nil
	}

	if err := cl.repo.SaveAll(active); err != nil {
		err = fmt.Errorf("error saving cleaned collection: %w", err)
		cl.logger.Error(err)
		cl.diag.Error(tagCleanup, err.Error())
		return 0, err
	}

	cl.diag.Info(tagCleanup, fmt.Sprintf("removed %d expired records", removed))

	return removed, nil
}

// Stats aggregates over everything currently stored, expired records
// included. Callers wanting totals to match active counts run
// CleanupExpired first.
func (cl *CoreLogic) Stats(ctx context.Context) (*models.Stats, error) {
	records := cl.repo.LoadAll()

	stats := &models.Stats{TotalURLs: len(records)}
	for i := range records {
		stats.TotalClicks += len(records[i].Clicks)
		if !cl.IsExpired(&records[i]) {
			stats.ActiveURLs++
		}
	}

	return stats, nil
}

// ListAll returns the stored collection in insertion order.
func (cl *CoreLogic) ListAll(ctx context.Context) ([]models.ShortenedRecord, error) {
	return cl.repo.LoadAll(), nil
}

func (cl *CoreLogic) Ping(ctx context.Context) error {
	if err := cl.repo.Ping(); err != nil {
		err = fmt.Errorf("error pinging storage: %w", err)
		cl.logger.Error(err)
		return err
	}

	return nil
}
