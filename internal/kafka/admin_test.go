package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

// stubClusterAdmin overrides the handful of sarama.ClusterAdmin methods the
// facade uses; any other call panics via the embedded nil interface.
type stubClusterAdmin struct {
	sarama.ClusterAdmin

	topics        map[string]sarama.TopicDetail
	metas         []*sarama.TopicMetadata
	listErr       error
	callDelay     time.Duration
	closed        int
	describeCalls int
}

func (s *stubClusterAdmin) ListTopics() (map[string]sarama.TopicDetail, error) {
	time.Sleep(s.callDelay)
	return s.topics, s.listErr
}

func (s *stubClusterAdmin) DescribeTopics(names []string) ([]*sarama.TopicMetadata, error) {
	s.describeCalls++
	time.Sleep(s.callDelay)
	return s.metas, nil
}

func (s *stubClusterAdmin) Close() error {
	s.closed++
	return nil
}

func TestListTopicNamesSkipsInternalTopics(t *testing.T) {
	stub := &stubClusterAdmin{topics: map[string]sarama.TopicDetail{
		"events":             {},
		"orders":             {},
		"__consumer_offsets": {},
	}}
	admin := &saramaAdmin{admin: stub}

	names, err := admin.ListTopicNames(context.Background())
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"events", "orders"}, names)
}

func TestDescribeTopicsMapsPartitionLeaders(t *testing.T) {
	stub := &stubClusterAdmin{metas: []*sarama.TopicMetadata{
		{
			Name: "events",
			Partitions: []*sarama.PartitionMetadata{
				{ID: 0, Leader: 1},
				{ID: 1, Leader: 2},
			},
		},
		{Name: "__consumer_offsets", IsInternal: true},
	}}
	admin := &saramaAdmin{admin: stub}

	described, err := admin.DescribeTopics(context.Background(), []string{"events"})
	require.NoError(t, err)
	require.Equal(t, map[string][]PartitionInfo{
		"events": {{ID: 0, Leader: 1}, {ID: 1, Leader: 2}},
	}, described)
}

func TestDescribeTopicsEmptyListStaysEmpty(t *testing.T) {
	// The wire protocol treats an empty topic list as "describe all
	// topics"; the stub simulates a broker answering with an unrequested
	// topic, which must never reach the caller.
	stub := &stubClusterAdmin{metas: []*sarama.TopicMetadata{
		{
			Name:       "unfiltered-topic",
			Partitions: []*sarama.PartitionMetadata{{ID: 0, Leader: 1}},
		},
	}}
	admin := &saramaAdmin{admin: stub}

	described, err := admin.DescribeTopics(context.Background(), nil)
	require.NoError(t, err)
	require.Empty(t, described)
	require.Equal(t, 0, stub.describeCalls)
}

func TestDescribeTopicsSurfacesTopicError(t *testing.T) {
	stub := &stubClusterAdmin{metas: []*sarama.TopicMetadata{
		{Name: "gone", Err: sarama.ErrUnknownTopicOrPartition},
	}}
	admin := &saramaAdmin{admin: stub}

	_, err := admin.DescribeTopics(context.Background(), []string{"gone"})
	require.ErrorIs(t, err, sarama.ErrUnknownTopicOrPartition)
}

func TestCallsHonorContextDeadline(t *testing.T) {
	stub := &stubClusterAdmin{callDelay: 200 * time.Millisecond}
	admin := &saramaAdmin{admin: stub}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := admin.ListTopicNames(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseIsIdempotent(t *testing.T) {
	stub := &stubClusterAdmin{}
	admin := &saramaAdmin{admin: stub}

	require.NoError(t, admin.Close(context.Background()))
	require.NoError(t, admin.Close(context.Background()))
	require.Equal(t, 1, stub.closed)
}
