// Package monitor tracks the set of topic partitions (and their leader
// brokers) visible in a Kafka cluster and signals a controlling process
// when a change warrants redistributing work.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/stavrou/partwatch/internal/kafka"
	"github.com/stavrou/partwatch/internal/metrics"
	"github.com/stavrou/partwatch/pkg/types"
)

// Lifecycle states.
const (
	stateCreated int32 = iota
	stateRunning
	stateShuttingDown
	stateStopped
)

// Monitor periodically retrieves cluster metadata, diffs it against the
// last known snapshot and invokes the onChange callback when the topology
// changed. It owns the admin client and closes it on shutdown.
type Monitor struct {
	cfg      Config
	admin    kafka.Admin
	filter   *TopicFilter
	onChange func()
	logger   zerolog.Logger

	state   atomic.Int32
	current atomic.Pointer[types.Snapshot]

	// stopCh is created at construction so Shutdown never observes a
	// half-initialized monitor; done closes when the poll loop exits, or
	// when Start fails and the loop will never run.
	stopCh chan struct{}
	done   chan struct{}
}

// New validates the configuration and builds a monitor. onChange is called
// from the poll goroutine whenever the diff policy detects a change; nil
// disables the signal.
func New(cfg Config, admin kafka.Admin, onChange func(), logger zerolog.Logger) (*Monitor, error) {
	ApplyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrAdminRequired
	}
	filter, err := NewTopicFilter(cfg.Topics, cfg.TopicRegex)
	if err != nil {
		return nil, err
	}
	if onChange == nil {
		onChange = func() {}
	}
	return &Monitor{
		cfg:      cfg,
		admin:    admin,
		filter:   filter,
		onChange: onChange,
		logger:   logger.With().Str("component", "monitor").Logger(),
		stopCh:   make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Start performs one synchronous retrieval and, on success, launches the
// poll loop. A failed first retrieval is fatal and is returned to the
// caller: a broken configuration should surface at startup instead of
// retrying forever in the background.
func (m *Monitor) Start() error {
	if !m.state.CompareAndSwap(stateCreated, stateRunning) {
		return ErrAlreadyStarted
	}
	m.logger.Info().Msg("retrieving initial topic partitions")
	snap, err := m.retrieve(context.Background())
	if err != nil {
		m.state.Store(stateStopped)
		// The loop will never run; unblock any Shutdown racing this Start.
		close(m.done)
		return fmt.Errorf("initial topic retrieval: %w", err)
	}
	m.current.Store(&snap)
	metrics.TopicPartitions.Set(float64(snap.Len()))
	m.logger.Info().Int("partitions", snap.Len()).Msg("monitor started")

	go m.run()
	return nil
}

// Snapshot returns the current snapshot. It never blocks on network I/O.
// The result is nil only before a successful Start.
func (m *Monitor) Snapshot() types.Snapshot {
	snap := m.current.Load()
	if snap == nil {
		return nil
	}
	return *snap
}

// Shutdown stops the poll loop and closes the admin client. An in-flight
// tick is allowed to finish; if it has not finished within the shutdown
// budget the wait is abandoned. Shutdown never fails and later calls are
// no-ops.
func (m *Monitor) Shutdown() {
	if !m.state.CompareAndSwap(stateRunning, stateShuttingDown) {
		return
	}
	m.logger.Info().Msg("shutdown called")
	deadline := time.Now().Add(m.cfg.ShutdownTimeout)

	// Prevents new ticks from starting. A running tick uses its own
	// retrieval context and is not interrupted here.
	close(m.stopCh)

	closeCtx, cancel := context.WithDeadline(context.Background(), deadline)
	if err := m.admin.Close(closeCtx); err != nil {
		m.logger.Warn().Err(err).Msg("admin client close failed")
	}
	cancel()

	select {
	case <-m.done:
	case <-time.After(time.Until(deadline)):
		m.logger.Warn().Msg("poll loop did not stop within the shutdown budget, abandoning wait")
	}
	m.state.Store(stateStopped)
	m.logger.Info().Msg("shutdown complete")
}

// run executes ticks on a fixed delay: the interval counts down from the
// end of one tick to the start of the next, so ticks never overlap.
func (m *Monitor) run() {
	defer close(m.done)
	timer := time.NewTimer(m.cfg.PollInterval)
	defer timer.Stop()
	for {
		select {
		case <-m.stopCh:
			return
		case <-timer.C:
		}
		m.tick()
		timer.Reset(m.cfg.PollInterval)
	}
}

// tick runs one poll cycle. Failures are logged and swallowed: the
// previous snapshot stays current and the next tick retries.
func (m *Monitor) tick() {
	m.logger.Debug().Msg("fetching latest topic partitions")
	start := time.Now()
	snap, err := m.retrieve(context.Background())
	if err != nil {
		reason := "execution"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "timeout"
		}
		metrics.PollFailuresTotal.WithLabelValues(reason).Inc()
		m.logger.Error().Err(err).Str("reason", reason).
			Msg("topic retrieval failed, keeping previous snapshot")
		return
	}
	metrics.PollCyclesTotal.Inc()
	metrics.PollLatencySeconds.Observe(time.Since(start).Seconds())

	old := *m.current.Load()
	var changed bool
	if m.cfg.ReconfigureOnLeaderChange {
		changed = !snap.Equal(old)
	} else {
		changed = !snap.SameTopicPartitions(old)
	}

	// The stored snapshot is replaced even when nothing changed; readers
	// observe a fresh handle after every successful cycle.
	m.current.Store(&snap)
	metrics.TopicPartitions.Set(float64(snap.Len()))

	if changed {
		metrics.ReconfigurationsTotal.Inc()
		m.logger.Info().Int("partitions", snap.Len()).
			Msg("topic partitions changed, requesting reconfiguration")
		m.onChange()
		return
	}
	m.logger.Debug().Msg("no topic partition changes detected")
}

// retrieve performs one discover/filter/describe cycle. Both metadata
// calls share a single deadline computed here, so a slow topic listing
// shortens the budget left for the describe call.
func (m *Monitor) retrieve(parent context.Context) (types.Snapshot, error) {
	ctx, cancel := context.WithTimeout(parent, m.cfg.RequestTimeout)
	defer cancel()

	ctx, span := otel.Tracer("partwatch-monitor").Start(ctx, "monitor.retrieve")
	defer span.End()

	names, err := m.admin.ListTopicNames(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	matched := make([]string, 0, len(names))
	for _, name := range names {
		if m.filter.Matches(name) {
			matched = append(matched, name)
		}
	}
	span.SetAttributes(
		attribute.Int("topics.listed", len(names)),
		attribute.Int("topics.matched", len(matched)),
	)

	described, err := m.admin.DescribeTopics(ctx, matched)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	snap := make(types.Snapshot)
	for topic, partitions := range described {
		for _, p := range partitions {
			snap.Add(types.LeaderTopicPartition{
				Leader:    p.Leader,
				Topic:     topic,
				Partition: p.ID,
			})
		}
	}
	span.SetStatus(codes.Ok, "")
	return snap, nil
}
