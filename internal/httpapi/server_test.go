package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pgprobe/internal/domain"
)

type fakeStatus struct {
	snap domain.Snapshot
}

func (f *fakeStatus) Snapshot() domain.Snapshot { return f.snap }

func TestServer_Healthz(t *testing.T) {
	s := NewServer(zap.NewNop(), &fakeStatus{})
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("want 200, got %d", resp.StatusCode)
	}
}

func TestServer_StatusReturnsSnapshot(t *testing.T) {
	now := time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)
	fs := &fakeStatus{snap: domain.Snapshot{
		Running: true,
		Down:    true,
		Stats:   domain.RunStats{TotalAttempts: 12, SuccessCount: 9, FailureCount: 3},
		Intervals: []domain.DowntimeInterval{
			{Start: now, End: now.Add(time.Second)},
		},
	}}
	s := NewServer(zap.NewNop(), fs)
	srv := httptest.NewServer(s.Router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/status")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var got domain.Snapshot
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !got.Running || !got.Down || got.Stats.TotalAttempts != 12 {
		t.Fatalf("snapshot wrong: %+v", got)
	}
	if len(got.Intervals) != 1 || !got.Intervals[0].Start.Equal(now) {
		t.Fatalf("intervals wrong: %+v", got.Intervals)
	}
}
