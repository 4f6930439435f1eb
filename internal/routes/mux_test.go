package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/stavrou/partwatch/internal/kafka"
	"github.com/stavrou/partwatch/internal/monitor"
)

type staticAdmin struct {
	topics map[string][]kafka.PartitionInfo
}

func (s *staticAdmin) ListTopicNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0, len(s.topics))
	for name := range s.topics {
		names = append(names, name)
	}
	return names, nil
}

func (s *staticAdmin) DescribeTopics(ctx context.Context, names []string) (map[string][]kafka.PartitionInfo, error) {
	out := make(map[string][]kafka.PartitionInfo, len(names))
	for _, name := range names {
		out[name] = s.topics[name]
	}
	return out, nil
}

func (s *staticAdmin) Close(ctx context.Context) error { return nil }

func startedMonitor(t *testing.T) *monitor.Monitor {
	t.Helper()
	admin := &staticAdmin{topics: map[string][]kafka.PartitionInfo{
		"orders": {{ID: 0, Leader: 1}, {ID: 1, Leader: 2}},
	}}
	mon, err := monitor.New(monitor.Config{
		Topics:       []string{"orders"},
		PollInterval: time.Hour,
	}, admin, nil, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, mon.Start())
	t.Cleanup(mon.Shutdown)
	return mon
}

func TestHealthEndpoint(t *testing.T) {
	mux := NewMux(startedMonitor(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"state":"healthy"}`, rec.Body.String())
}

func TestSnapshotEndpoint(t *testing.T) {
	mux := NewMux(startedMonitor(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/snapshot", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Count      int `json:"count"`
		Partitions []struct {
			Leader    int32  `json:"leader"`
			Topic     string `json:"topic"`
			Partition int32  `json:"partition"`
		} `json:"partitions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, 2, body.Count)
	require.Len(t, body.Partitions, 2)
	require.Equal(t, "orders", body.Partitions[0].Topic)
}

func TestMetricsEndpoint(t *testing.T) {
	mux := NewMux(startedMonitor(t), zerolog.Nop())

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "partwatch_topic_partitions")
}
