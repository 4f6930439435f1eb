package kafka

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/IBM/sarama"
)

// PartitionInfo describes one partition of a topic and its current leader
// broker.
type PartitionInfo struct {
	ID     int32
	Leader int32
}

// Admin is the slice of cluster metadata the monitor needs. Every call is
// bounded by the caller's context deadline.
type Admin interface {
	// ListTopicNames returns the names of all non-internal topics.
	ListTopicNames(ctx context.Context) ([]string, error)

	// DescribeTopics returns the partitions and leader ids of exactly the
	// named topics.
	DescribeTopics(ctx context.Context, names []string) (map[string][]PartitionInfo, error)

	// Close shuts down the underlying connection. Safe to call more than
	// once.
	Close(ctx context.Context) error
}

type saramaAdmin struct {
	admin     sarama.ClusterAdmin
	closeOnce sync.Once
	closeErr  error
}

// NewAdmin connects a cluster admin client to the given brokers. The
// sarama config is passed through unchanged; nil selects defaults.
func NewAdmin(brokers []string, cfg *sarama.Config) (Admin, error) {
	if cfg == nil {
		cfg = sarama.NewConfig()
		cfg.Version = sarama.V2_8_0_0
	}
	admin, err := sarama.NewClusterAdmin(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka admin client: %w", err)
	}
	return &saramaAdmin{admin: admin}, nil
}

func (a *saramaAdmin) ListTopicNames(ctx context.Context) ([]string, error) {
	topics, err := await(ctx, func() (map[string]sarama.TopicDetail, error) {
		return a.admin.ListTopics()
	})
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	names := make([]string, 0, len(topics))
	for name := range topics {
		if isInternalTopic(name) {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

func (a *saramaAdmin) DescribeTopics(ctx context.Context, names []string) (map[string][]PartitionInfo, error) {
	// sarama encodes an empty topic list as the metadata request's null
	// array, which the broker reads as "all topics". An empty request must
	// stay an empty response.
	if len(names) == 0 {
		return map[string][]PartitionInfo{}, nil
	}
	metas, err := await(ctx, func() ([]*sarama.TopicMetadata, error) {
		return a.admin.DescribeTopics(names)
	})
	if err != nil {
		return nil, fmt.Errorf("describe topics: %w", err)
	}
	out := make(map[string][]PartitionInfo, len(metas))
	for _, meta := range metas {
		if meta.Err != sarama.ErrNoError {
			return nil, fmt.Errorf("describe topic %q: %w", meta.Name, meta.Err)
		}
		if meta.IsInternal {
			continue
		}
		parts := make([]PartitionInfo, 0, len(meta.Partitions))
		for _, p := range meta.Partitions {
			parts = append(parts, PartitionInfo{ID: p.ID, Leader: p.Leader})
		}
		out[meta.Name] = parts
	}
	return out, nil
}

func (a *saramaAdmin) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		_, a.closeErr = await(ctx, func() (struct{}, error) {
			return struct{}{}, a.admin.Close()
		})
	})
	return a.closeErr
}

// Internal topics (__consumer_offsets, __transaction_state, ...) are never
// monitored.
func isInternalTopic(name string) bool {
	return strings.HasPrefix(name, "__")
}

// await runs a blocking sarama call in its own goroutine so the caller's
// deadline is honored. sarama has no per-call cancellation, so an expired
// context abandons the call rather than interrupting it.
func await[T any](ctx context.Context, call func() (T, error)) (T, error) {
	type result struct {
		val T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		val, err := call()
		ch <- result{val, err}
	}()
	select {
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	case res := <-ch:
		return res.val, res.err
	}
}
