package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/quarry/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/quarry/internal/core/domain"
	"github.com/custodia-labs/quarry/internal/normalisers/plaintext"
	"github.com/custodia-labs/quarry/internal/postprocessors/chunker"
)

var fixedTime = time.Date(2024, 6, 1, 10, 30, 15, 987654321, time.FixedZone("CEST", 2*3600))

func newIngest(conn *mockConnector, store *memory.IndexStore, opts ...IngestOption) *IngestService {
	opts = append([]IngestOption{WithClock(func() time.Time { return fixedTime })}, opts...)
	return NewIngestService(
		&mockFactory{connector: conn},
		plaintext.New(),
		chunker.New(chunker.WithChunkSize(20), chunker.WithOverlap(5)),
		store,
		opts...,
	)
}

func TestIngestService_Ingest(t *testing.T) {
	conn := &mockConnector{docs: []domain.RawDocument{
		raw("a.md", "short note"),
		raw("b.txt", "line one\r\nline two\r\nline three"),
	}}
	store := memory.NewIndexStore()

	report, err := newIngest(conn, store).Ingest(context.Background(), "/corpus")

	require.NoError(t, err)
	assert.Equal(t, 2, report.Files)
	assert.Zero(t, report.Skipped)
	assert.Equal(t, "memory", report.Output)
	assert.True(t, conn.isClosed())

	idx, ok := store.Load(context.Background())
	require.True(t, ok)
	assert.Equal(t, report.Chunks, len(idx.Chunks))
	assert.Equal(t, time.Date(2024, 6, 1, 8, 30, 15, 987000000, time.UTC), idx.CreatedAt)
	assert.Equal(t, idx.CreatedAt, report.CreatedAt)

	assert.Equal(t, "short note", idx.Chunks[0].Text)
	assert.Equal(t, "a.md", idx.Chunks[0].Title)
	for _, c := range idx.Chunks[1:] {
		assert.Equal(t, "b.txt", c.Path)
		assert.NotContains(t, c.Text, "\r")
	}
	assert.Equal(t, chunker.ChunkID("a.md", "short note"), idx.Chunks[0].ID)
}

func TestIngestService_ChunkOrder(t *testing.T) {
	long := strings.Repeat("abcdefghij", 5)
	conn := &mockConnector{docs: []domain.RawDocument{raw("1.txt", long), raw("2.txt", long)}}
	store := memory.NewIndexStore()

	_, err := newIngest(conn, store).Ingest(context.Background(), "/corpus")
	require.NoError(t, err)

	idx, _ := store.Load(context.Background())
	perFile := len(chunker.Split(long, 20, 5))
	require.Len(t, idx.Chunks, 2*perFile)
	for i, c := range idx.Chunks {
		want := "1.txt"
		if i >= perFile {
			want = "2.txt"
		}
		assert.Equal(t, want, c.Path)
	}
}

func TestIngestService_SkipsUnreadableAndEmpty(t *testing.T) {
	conn := &mockConnector{
		docs: []domain.RawDocument{raw("a.md", "alpha"), raw("empty.md", ""), raw("c.md", "gamma")},
		errs: map[int]error{
			1: fmt.Errorf("%w: /corpus/b.md: permission denied", domain.ErrUnreadable),
			2: errors.New("walk /corpus/locked: permission denied"),
		},
	}
	store := memory.NewIndexStore()

	report, err := newIngest(conn, store).Ingest(context.Background(), "/corpus")

	require.NoError(t, err)
	assert.Equal(t, 4, report.Files, "three documents plus one unreadable file")
	assert.Equal(t, 2, report.Skipped)
	assert.Equal(t, 2, report.Chunks)
}

func TestIngestService_NoEligibleFiles(t *testing.T) {
	store := memory.NewIndexStore()

	_, err := newIngest(&mockConnector{}, store).Ingest(context.Background(), "/corpus")

	assert.ErrorIs(t, err, domain.ErrNoEligibleFiles)
	assert.Zero(t, store.Saves(), "nothing is written")
}

func TestIngestService_AllUnreadable(t *testing.T) {
	conn := &mockConnector{errs: map[int]error{0: fmt.Errorf("%w: x.md", domain.ErrUnreadable)}}
	store := memory.NewIndexStore()

	report, err := newIngest(conn, store).Ingest(context.Background(), "/corpus")

	require.NoError(t, err)
	assert.Equal(t, 1, report.Files)
	assert.Zero(t, report.Chunks)
	assert.Equal(t, 1, store.Saves())
	_, ok := store.Load(context.Background())
	assert.False(t, ok, "an empty index reads as absent")
}

func TestIngestService_ValidateFails(t *testing.T) {
	conn := &mockConnector{validateErr: fmt.Errorf("%w: /missing", domain.ErrNotFound)}

	_, err := newIngest(conn, memory.NewIndexStore()).Ingest(context.Background(), "/missing")

	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.True(t, conn.isClosed())
}

func TestIngestService_FactoryFails(t *testing.T) {
	svc := NewIngestService(&mockFactory{err: errors.New("boom")}, plaintext.New(), chunker.New(), memory.NewIndexStore())

	_, err := svc.Ingest(context.Background(), "/corpus")

	assert.ErrorContains(t, err, "create connector")
}

func TestIngestService_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	store := memory.NewIndexStore()

	_, err := newIngest(&mockConnector{docs: []domain.RawDocument{raw("a.md", "x")}}, store).Ingest(ctx, "/corpus")

	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, store.Saves())
}

func TestIngestService_Progress(t *testing.T) {
	var events []domain.IngestProgress
	conn := &mockConnector{docs: []domain.RawDocument{raw("a.md", "one"), raw("b.md", "two")}}

	_, err := newIngest(conn, memory.NewIndexStore(), WithProgress(func(p domain.IngestProgress) {
		events = append(events, p)
	})).Ingest(context.Background(), "/corpus")

	require.NoError(t, err)
	assert.Equal(t, []domain.IngestProgress{{Title: "a.md", Chunks: 1}, {Title: "b.md", Chunks: 2}}, events)
}

func TestIngestService_StableIDs(t *testing.T) {
	docs := []domain.RawDocument{raw("a.md", strings.Repeat("stable content ", 10))}
	first, second := memory.NewIndexStore(), memory.NewIndexStore()

	_, err := newIngest(&mockConnector{docs: docs}, first).Ingest(context.Background(), "/corpus")
	require.NoError(t, err)
	_, err = newIngest(&mockConnector{docs: docs}, second).Ingest(context.Background(), "/corpus")
	require.NoError(t, err)

	a, _ := first.Load(context.Background())
	b, _ := second.Load(context.Background())
	assert.Equal(t, a.Chunks, b.Chunks)

	changed := memory.NewIndexStore()
	_, err = newIngest(&mockConnector{docs: []domain.RawDocument{raw("a.md", "Stable content changed")}}, changed).
		Ingest(context.Background(), "/corpus")
	require.NoError(t, err)
	c, _ := changed.Load(context.Background())
	assert.NotEqual(t, a.Chunks[0].ID, c.Chunks[0].ID)
}
