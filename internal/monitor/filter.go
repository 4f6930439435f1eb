package monitor

import (
	"fmt"
	"regexp"
)

// TopicFilter decides whether a discovered topic is watched. The mode is
// fixed at construction: either an exact-name set or a regular expression
// matched against the full topic name, never both.
type TopicFilter struct {
	names   map[string]struct{}
	pattern *regexp.Regexp
}

// NewTopicFilter builds a filter from exactly one of names or pattern.
func NewTopicFilter(names []string, pattern string) (*TopicFilter, error) {
	switch {
	case len(names) > 0 && pattern != "":
		return nil, fmt.Errorf("%w: topic list and topic regex are mutually exclusive", ErrInvalidConfig)
	case len(names) == 0 && pattern == "":
		return nil, fmt.Errorf("%w: either a topic list or a topic regex is required", ErrInvalidConfig)
	case pattern != "":
		// Anchor so partial matches never count.
		re, err := regexp.Compile(`\A(?:` + pattern + `)\z`)
		if err != nil {
			return nil, fmt.Errorf("%w: topic regex: %v", ErrInvalidConfig, err)
		}
		return &TopicFilter{pattern: re}, nil
	default:
		set := make(map[string]struct{}, len(names))
		for _, name := range names {
			set[name] = struct{}{}
		}
		return &TopicFilter{names: set}, nil
	}
}

// Matches reports whether the topic passes the filter.
func (f *TopicFilter) Matches(topic string) bool {
	if f.names != nil {
		_, ok := f.names[topic]
		return ok
	}
	return f.pattern.MatchString(topic)
}
