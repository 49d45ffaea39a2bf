package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/akurlov/shortly/internal/models"
	"github.com/akurlov/shortly/internal/store/memory"
)

func newTestRepository(t *testing.T, seed []byte) *Repository {
	t.Helper()

	kv, err := memory.NewMemoryStorage(seed)
	require.NoError(t, err)

	return NewRepository(kv, zap.L().Sugar())
}

func TestLoadAllEmptyStorage(t *testing.T) {
	tests := []struct {
		name string
		seed []byte
	}{
		{
			name: "absent document",
			seed: nil,
		},
		{
			name: "corrupt document",
			seed: []byte("{not json"),
		},
		{
			name: "wrong shape",
			seed: []byte(`{"a": 1}`),
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			repo := newTestRepository(t, tt.seed)

			records := repo.LoadAll()
			assert.NotNil(t, records)
			assert.Empty(t, records)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	repo := newTestRepository(t, nil)

	now := time.Now().Truncate(time.Second)
	records := []models.ShortenedRecord{
		{
			ID:              "id-1",
			Shortcode:       "abc123",
			OriginalURL:     "https://example.com/a",
			CreatedAt:       now,
			ExpiresAt:       now.Add(30 * time.Minute),
			ValidityMinutes: 30,
			Clicks:          []models.ClickEvent{},
		},
		{
			ID:              "id-2",
			Shortcode:       "XYZ789",
			OriginalURL:     "https://example.com/b",
			CreatedAt:       now,
			ExpiresAt:       now.Add(time.Minute),
			ValidityMinutes: 1,
			Clicks: []models.ClickEvent{
				{Timestamp: now, Source: "direct", Location: "unknown"},
			},
		},
	}

	require.NoError(t, repo.SaveAll(records))

	got := repo.LoadAll()
	require.Len(t, got, 2)

	for i := range records {
		assert.Equal(t, records[i].ID, got[i].ID)
		assert.Equal(t, records[i].Shortcode, got[i].Shortcode)
		assert.Equal(t, records[i].OriginalURL, got[i].OriginalURL)
		assert.True(t, records[i].CreatedAt.Equal(got[i].CreatedAt))
		assert.True(t, records[i].ExpiresAt.Equal(got[i].ExpiresAt))
		assert.Equal(t, records[i].ValidityMinutes, got[i].ValidityMinutes)
		assert.Len(t, got[i].Clicks, len(records[i].Clicks))
	}

	// An empty click history round-trips as an empty slice, not null.
	assert.NotNil(t, got[0].Clicks)
}

func TestSaveAllOverwrites(t *testing.T) {
	repo := newTestRepository(t, nil)

	require.NoError(t, repo.SaveAll([]models.ShortenedRecord{
		{ID: "id-1", Shortcode: "aaaaaa"},
		{ID: "id-2", Shortcode: "bbbbbb"},
	}))
	require.NoError(t, repo.SaveAll([]models.ShortenedRecord{
		{ID: "id-2", Shortcode: "bbbbbb"},
	}))

	got := repo.LoadAll()
	require.Len(t, got, 1)
	assert.Equal(t, "id-2", got[0].ID)
}
