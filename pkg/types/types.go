// Package types
package types

import (
	"fmt"
	"sort"
)

// LeaderTopicPartition identifies a single partition of a topic together
// with the broker currently leading it. It is a comparable value type and
// can be used as a map key.
type LeaderTopicPartition struct {
	Leader    int32  `json:"leader"`
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
}

// TopicPartition is the leader-agnostic projection of a
// LeaderTopicPartition, used when leader moves must be ignored.
type TopicPartition struct {
	Topic     string `json:"topic"`
	Partition int32  `json:"partition"`
}

// TopicPartition drops the leader from the triple.
func (ltp LeaderTopicPartition) TopicPartition() TopicPartition {
	return TopicPartition{Topic: ltp.Topic, Partition: ltp.Partition}
}

func (ltp LeaderTopicPartition) String() string {
	return fmt.Sprintf("%d:%s:%d", ltp.Leader, ltp.Topic, ltp.Partition)
}

// Snapshot is a point-in-time set of leader/topic/partition assignments.
// A snapshot is built by one poll cycle and never mutated after it has
// been published; it is superseded by the next cycle's snapshot.
type Snapshot map[LeaderTopicPartition]struct{}

// NewSnapshot builds a snapshot from the given triples.
func NewSnapshot(entries ...LeaderTopicPartition) Snapshot {
	s := make(Snapshot, len(entries))
	for _, e := range entries {
		s.Add(e)
	}
	return s
}

// Add inserts a triple. Only the cycle building the snapshot may call it.
func (s Snapshot) Add(ltp LeaderTopicPartition) {
	s[ltp] = struct{}{}
}

func (s Snapshot) Contains(ltp LeaderTopicPartition) bool {
	_, ok := s[ltp]
	return ok
}

func (s Snapshot) Len() int {
	return len(s)
}

// Equal reports whether both snapshots hold exactly the same triples,
// leaders included.
func (s Snapshot) Equal(other Snapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for ltp := range s {
		if _, ok := other[ltp]; !ok {
			return false
		}
	}
	return true
}

// TopicPartitions projects the snapshot down to its (topic, partition)
// pairs.
func (s Snapshot) TopicPartitions() map[TopicPartition]struct{} {
	out := make(map[TopicPartition]struct{}, len(s))
	for ltp := range s {
		out[ltp.TopicPartition()] = struct{}{}
	}
	return out
}

// SameTopicPartitions reports whether both snapshots cover the same
// (topic, partition) pairs, ignoring which broker leads them.
func (s Snapshot) SameTopicPartitions(other Snapshot) bool {
	a, b := s.TopicPartitions(), other.TopicPartitions()
	if len(a) != len(b) {
		return false
	}
	for tp := range a {
		if _, ok := b[tp]; !ok {
			return false
		}
	}
	return true
}

// List returns the triples ordered by topic, partition and leader, for
// stable JSON responses and log output.
func (s Snapshot) List() []LeaderTopicPartition {
	out := make([]LeaderTopicPartition, 0, len(s))
	for ltp := range s {
		out = append(out, ltp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Topic != out[j].Topic {
			return out[i].Topic < out[j].Topic
		}
		if out[i].Partition != out[j].Partition {
			return out[i].Partition < out[j].Partition
		}
		return out[i].Leader < out[j].Leader
	})
	return out
}
