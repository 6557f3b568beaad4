package marker

import (
	"context"
	"errors"
	"testing"

	"github.com/Maldaris/europa-awareness-map/internal/domain"
	dompoi "github.com/Maldaris/europa-awareness-map/internal/domain/poi"
)

// --- Mocks ---

type mockRepo struct {
	insertErr     error
	insertVec     []float32
	insertCalls   int
	updateErr     error
	getResult     dompoi.POI
	getErr        error
	deleteErr     error
	listPOIs      []dompoi.POI
	listCursor    string
	listErr       error
	gotListLimit  int
	countResult   int
	countErr      error
	nearbyResult  []dompoi.Nearby
	nearbyErr     error
	gotNearestK   int
	gotNearType   string
}

func (m *mockRepo) Insert(_ context.Context, _ *dompoi.POI, vec []float32) error {
	m.insertCalls++
	m.insertVec = vec
	return m.insertErr
}
func (m *mockRepo) Update(_ context.Context, _ *dompoi.POI, _ []float32) error {
	return m.updateErr
}
func (m *mockRepo) Get(_ context.Context, _ string) (dompoi.POI, error) {
	return m.getResult, m.getErr
}
func (m *mockRepo) Delete(_ context.Context, _ string) error {
	return m.deleteErr
}
func (m *mockRepo) List(_ context.Context, _ string, limit int) ([]dompoi.POI, string, error) {
	m.gotListLimit = limit
	return m.listPOIs, m.listCursor, m.listErr
}
func (m *mockRepo) Count(_ context.Context) (int, error) {
	return m.countResult, m.countErr
}
func (m *mockRepo) Nearest(_ context.Context, _, _ float64, k int, poiType string) ([]dompoi.Nearby, error) {
	m.gotNearestK = k
	m.gotNearType = poiType
	return m.nearbyResult, m.nearbyErr
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	if m.err != nil {
		return domain.EmbeddingResult{}, m.err
	}
	return m.result, nil
}

func makePOI(t *testing.T, id, description string) dompoi.POI {
	t.Helper()
	p, err := dompoi.New(id, "Title", description, "", 10, 20, "landmark", "")
	if err != nil {
		t.Fatalf("dompoi.New: %v", err)
	}
	return p
}

// --- Tests ---

func TestCreate_WithoutEmbedder(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	p := makePOI(t, "pwyll", "bright-rayed impact crater")
	if err := svc.Create(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.insertCalls != 1 {
		t.Fatalf("insert calls: got %d", repo.insertCalls)
	}
	if repo.insertVec != nil {
		t.Errorf("expected nil description vector, got %v", repo.insertVec)
	}
}

func TestCreate_EmbedsDescription(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1, 0.2}}}
	svc := New(repo, emb)

	p := makePOI(t, "pwyll", "bright-rayed impact crater")
	if err := svc.Create(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != 1 {
		t.Fatalf("embedder calls: got %d", emb.calls)
	}
	if len(repo.insertVec) != 2 {
		t.Errorf("description vector: got %v", repo.insertVec)
	}
}

func TestCreate_SkipsEmbeddingEmptyDescription(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{0.1}}}
	svc := New(repo, emb)

	p := makePOI(t, "pwyll", "")
	if err := svc.Create(context.Background(), &p); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if emb.calls != 0 {
		t.Errorf("embedder calls: got %d", emb.calls)
	}
}

func TestCreate_EmbedderError(t *testing.T) {
	repo := &mockRepo{}
	emb := &mockEmbedder{err: errors.New("provider down")}
	svc := New(repo, emb)

	p := makePOI(t, "pwyll", "some description")
	if err := svc.Create(context.Background(), &p); err == nil {
		t.Fatal("expected embedder error")
	}
	if repo.insertCalls != 0 {
		t.Errorf("insert should not run after embed failure")
	}
}

func TestCreate_Duplicate(t *testing.T) {
	repo := &mockRepo{insertErr: domain.ErrAlreadyExists}
	svc := New(repo, nil)

	p := makePOI(t, "dup", "")
	err := svc.Create(context.Background(), &p)
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	repo := &mockRepo{updateErr: domain.ErrNotFound}
	svc := New(repo, nil)

	p := makePOI(t, "ghost", "")
	err := svc.Update(context.Background(), &p)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_LimitDefaults(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	if _, _, err := svc.List(context.Background(), "", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotListLimit != 20 {
		t.Errorf("default limit: got %d", repo.gotListLimit)
	}

	if _, _, err := svc.List(context.Background(), "", 500); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotListLimit != 100 {
		t.Errorf("max limit: got %d", repo.gotListLimit)
	}
}

func TestNearest_ClampsK(t *testing.T) {
	repo := &mockRepo{}
	svc := New(repo, nil)

	if _, err := svc.Nearest(context.Background(), 10, 20, 0, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotNearestK != 1 {
		t.Errorf("k=0 should clamp to 1, got %d", repo.gotNearestK)
	}

	if _, err := svc.Nearest(context.Background(), 10, 20, 999, "crater"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.gotNearestK != 50 {
		t.Errorf("k should clamp to 50, got %d", repo.gotNearestK)
	}
	if repo.gotNearType != "crater" {
		t.Errorf("type filter: got %q", repo.gotNearType)
	}
}

func TestNearest_RejectsBadCoordinates(t *testing.T) {
	svc := New(&mockRepo{}, nil)

	_, err := svc.Nearest(context.Background(), 91, 0, 5, "")
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestCount(t *testing.T) {
	svc := New(&mockRepo{countResult: 42}, nil)

	n, err := svc.Count(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 42 {
		t.Errorf("count: got %d", n)
	}
}
