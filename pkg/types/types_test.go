package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTopicPartitionProjection(t *testing.T) {
	ltp := LeaderTopicPartition{Leader: 3, Topic: "events", Partition: 7}

	require.Equal(t, TopicPartition{Topic: "events", Partition: 7}, ltp.TopicPartition())
	require.Equal(t, "3:events:7", ltp.String())
}

func TestSnapshotEqual(t *testing.T) {
	a := NewSnapshot(
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 0},
		LeaderTopicPartition{Leader: 1, Topic: "b", Partition: 0},
	)
	b := NewSnapshot(
		LeaderTopicPartition{Leader: 1, Topic: "b", Partition: 0},
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 0},
	)

	require.True(t, a.Equal(b))
	require.True(t, b.Equal(a))

	// Same pairs, different leader.
	c := NewSnapshot(
		LeaderTopicPartition{Leader: 2, Topic: "a", Partition: 0},
		LeaderTopicPartition{Leader: 1, Topic: "b", Partition: 0},
	)
	require.False(t, a.Equal(c))
	require.True(t, a.SameTopicPartitions(c))
}

func TestSnapshotSameTopicPartitions(t *testing.T) {
	a := NewSnapshot(
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 0},
	)
	b := NewSnapshot(
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 0},
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 1},
	)

	require.False(t, a.SameTopicPartitions(b))
	require.False(t, b.SameTopicPartitions(a))
}

func TestSnapshotList(t *testing.T) {
	s := NewSnapshot(
		LeaderTopicPartition{Leader: 1, Topic: "b", Partition: 0},
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 1},
		LeaderTopicPartition{Leader: 0, Topic: "a", Partition: 0},
	)

	require.Equal(t, []LeaderTopicPartition{
		{Leader: 0, Topic: "a", Partition: 0},
		{Leader: 0, Topic: "a", Partition: 1},
		{Leader: 1, Topic: "b", Partition: 0},
	}, s.List())
}

func TestEmptySnapshot(t *testing.T) {
	s := NewSnapshot()

	require.Equal(t, 0, s.Len())
	require.True(t, s.Equal(NewSnapshot()))
	require.Empty(t, s.List())
	require.False(t, s.Contains(LeaderTopicPartition{Topic: "a"}))
}
