package library_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"rsstok/internal/domain/entity"
	libHandler "rsstok/internal/handler/http/library"
	libUC "rsstok/internal/usecase/library"
)

type stubService struct {
	saved  []*entity.SavedArticle
	liked  []*entity.LikedArticle
	read   []string
	recent []*entity.RecentFeed
	stats  *libUC.Stats

	err        error
	savedCalls []entity.Article
	likedCalls []entity.Article
	readCalls  []string
	touched    []string
	cleared    bool
}

func (s *stubService) SaveArticle(_ context.Context, a entity.Article) error {
	if a.Link == "" {
		return libUC.ErrLinkRequired
	}
	s.savedCalls = append(s.savedCalls, a)
	return s.err
}

func (s *stubService) ListSaved(context.Context) ([]*entity.SavedArticle, error) {
	return s.saved, s.err
}

func (s *stubService) UnsaveArticle(_ context.Context, link string) error {
	s.savedCalls = append(s.savedCalls, entity.Article{Link: link})
	return s.err
}

func (s *stubService) LikeArticle(_ context.Context, a entity.Article) error {
	if a.Link == "" {
		return libUC.ErrLinkRequired
	}
	s.likedCalls = append(s.likedCalls, a)
	return s.err
}

func (s *stubService) ListLiked(context.Context) ([]*entity.LikedArticle, error) {
	return s.liked, s.err
}

func (s *stubService) UnlikeArticle(_ context.Context, link string) error {
	s.likedCalls = append(s.likedCalls, entity.Article{Link: link})
	return s.err
}

func (s *stubService) MarkRead(_ context.Context, link string) error {
	s.readCalls = append(s.readCalls, link)
	return s.err
}

func (s *stubService) ReadLinks(context.Context) ([]string, error) {
	return s.read, s.err
}

func (s *stubService) ClearRead(context.Context) error {
	s.cleared = true
	return s.err
}

func (s *stubService) TouchRecentFeed(_ context.Context, url string) {
	s.touched = append(s.touched, url)
}

func (s *stubService) RecentFeeds(context.Context) ([]*entity.RecentFeed, error) {
	return s.recent, s.err
}

func (s *stubService) Stats(context.Context) (*libUC.Stats, error) {
	return s.stats, s.err
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	return body
}

func TestListSavedHandler_Success(t *testing.T) {
	stub := &stubService{
		saved: []*entity.SavedArticle{
			{
				Article: entity.Article{Title: "Saved", Link: "https://example.com/a"},
				SavedAt: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	rec := httptest.NewRecorder()
	libHandler.ListSavedHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/saved", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	articles := body["articles"].([]any)
	if len(articles) != 1 {
		t.Fatalf("len(articles) = %d, want 1", len(articles))
	}
	first := articles[0].(map[string]any)
	if first["savedAt"] != "2026-05-04T12:00:00Z" {
		t.Errorf("savedAt = %v", first["savedAt"])
	}
}

func TestListSavedHandler_StorageFailureDegrades(t *testing.T) {
	stub := &stubService{err: errors.New("connection refused")}

	rec := httptest.NewRecorder()
	libHandler.ListSavedHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/saved", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if articles := body["articles"].([]any); len(articles) != 0 {
		t.Errorf("len(articles) = %d, want 0", len(articles))
	}
}

func TestSaveHandler_Success(t *testing.T) {
	stub := &stubService{}
	payload := `{"title":"New","link":"https://example.com/new","source":"Example"}`

	rec := httptest.NewRecorder()
	libHandler.SaveHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/saved", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(stub.savedCalls) != 1 || stub.savedCalls[0].Link != "https://example.com/new" {
		t.Errorf("savedCalls = %+v", stub.savedCalls)
	}
}

func TestSaveHandler_MissingLink(t *testing.T) {
	rec := httptest.NewRecorder()
	libHandler.SaveHandler{Svc: &stubService{}}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/saved", strings.NewReader(`{"title":"No Link"}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSaveHandler_InvalidBody(t *testing.T) {
	rec := httptest.NewRecorder()
	libHandler.SaveHandler{Svc: &stubService{}}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/saved", strings.NewReader("{not json")))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestSaveHandler_StorageFailureStillSucceeds(t *testing.T) {
	stub := &stubService{err: errors.New("connection refused")}
	payload := `{"title":"New","link":"https://example.com/new"}`

	rec := httptest.NewRecorder()
	libHandler.SaveHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/saved", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestUnsaveHandler_MissingLink(t *testing.T) {
	rec := httptest.NewRecorder()
	libHandler.UnsaveHandler{Svc: &stubService{}}.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/library/saved", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	body := decodeBody(t, rec)
	if body["error"] != "link parameter is required" {
		t.Errorf("error = %v", body["error"])
	}
}

func TestUnsaveHandler_Success(t *testing.T) {
	stub := &stubService{}

	rec := httptest.NewRecorder()
	libHandler.UnsaveHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/library/saved?link=https://example.com/a", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if len(stub.savedCalls) != 1 || stub.savedCalls[0].Link != "https://example.com/a" {
		t.Errorf("savedCalls = %+v", stub.savedCalls)
	}
}

func TestLikeHandler_Success(t *testing.T) {
	stub := &stubService{}
	payload := `{"title":"Liked","link":"https://example.com/l"}`

	rec := httptest.NewRecorder()
	libHandler.LikeHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/liked", strings.NewReader(payload)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(stub.likedCalls) != 1 {
		t.Errorf("likedCalls = %+v", stub.likedCalls)
	}
}

func TestListReadHandler(t *testing.T) {
	stub := &stubService{read: []string{"https://example.com/a", "https://example.com/b"}}

	rec := httptest.NewRecorder()
	libHandler.ListReadHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/read", nil))

	body := decodeBody(t, rec)
	if int(body["count"].(float64)) != 2 {
		t.Errorf("count = %v, want 2", body["count"])
	}
	if links := body["links"].([]any); len(links) != 2 {
		t.Errorf("len(links) = %d, want 2", len(links))
	}
}

func TestMarkReadHandler(t *testing.T) {
	stub := &stubService{}

	rec := httptest.NewRecorder()
	libHandler.MarkReadHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/read", strings.NewReader(`{"link":"https://example.com/a"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(stub.readCalls) != 1 || stub.readCalls[0] != "https://example.com/a" {
		t.Errorf("readCalls = %v", stub.readCalls)
	}
}

func TestMarkReadHandler_MissingLink(t *testing.T) {
	rec := httptest.NewRecorder()
	libHandler.MarkReadHandler{Svc: &stubService{}}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/read", strings.NewReader(`{}`)))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestClearReadHandler(t *testing.T) {
	stub := &stubService{}

	rec := httptest.NewRecorder()
	libHandler.ClearReadHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/library/read", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !stub.cleared {
		t.Error("ClearRead not called")
	}
}

func TestRecentFeedHandlers(t *testing.T) {
	stub := &stubService{
		recent: []*entity.RecentFeed{
			{URL: "https://hnrss.org/frontpage", UsedAt: time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)},
		},
	}

	rec := httptest.NewRecorder()
	libHandler.ListRecentFeedsHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/recent-feeds", nil))

	body := decodeBody(t, rec)
	feeds := body["feeds"].([]any)
	if len(feeds) != 1 {
		t.Fatalf("len(feeds) = %d, want 1", len(feeds))
	}

	rec = httptest.NewRecorder()
	libHandler.TouchRecentFeedHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/library/recent-feeds", strings.NewReader(`{"url":"https://lobste.rs/rss"}`)))

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
	if len(stub.touched) != 1 || stub.touched[0] != "https://lobste.rs/rss" {
		t.Errorf("touched = %v", stub.touched)
	}
}

func TestStatsHandler_Success(t *testing.T) {
	stub := &stubService{
		stats: &libUC.Stats{
			TotalRead:      10,
			TotalLiked:     3,
			TotalSaved:     5,
			EngagementRate: 30,
			SaveRate:       50,
			TopSources:     []libUC.SourceCount{{Source: "Example", Count: 4}},
		},
	}

	rec := httptest.NewRecorder()
	libHandler.StatsHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if int(body["totalRead"].(float64)) != 10 {
		t.Errorf("totalRead = %v, want 10", body["totalRead"])
	}
	if int(body["engagementRate"].(float64)) != 30 {
		t.Errorf("engagementRate = %v, want 30", body["engagementRate"])
	}
}

func TestStatsHandler_StorageFailureReturnsZeros(t *testing.T) {
	stub := &stubService{err: errors.New("connection refused")}

	rec := httptest.NewRecorder()
	libHandler.StatsHandler{Svc: stub}.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/library/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := decodeBody(t, rec)
	if int(body["totalRead"].(float64)) != 0 {
		t.Errorf("totalRead = %v, want 0", body["totalRead"])
	}
	if sources := body["topSources"].([]any); len(sources) != 0 {
		t.Errorf("topSources = %v, want empty", sources)
	}
}
