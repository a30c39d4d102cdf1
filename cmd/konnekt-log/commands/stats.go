package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/konnekting/konnekting-go/pkg/log"
	"github.com/konnekting/konnekting-go/pkg/wire"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByLayer     map[log.Layer]int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	FramesByType      map[wire.MessageType]int
	DropReasons       map[string]int
	Sessions          map[string]*SessionStats
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// SessionStats holds statistics for one device boot.
type SessionStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
	Addresses []uint16
	Restarts  int
}

func newStats() *Stats {
	return &Stats{
		EventsByLayer:     make(map[log.Layer]int),
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		FramesByType:      make(map[wire.MessageType]int),
		DropReasons:       make(map[string]int),
		Sessions:          make(map[string]*SessionStats),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByLayer[event.Layer]++
	s.EventsByCategory[event.Category]++
	s.EventsByDirection[event.Direction]++

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	sess, ok := s.Sessions[event.SessionID]
	if !ok {
		sess = &SessionStats{FirstSeen: event.Timestamp, LastSeen: event.Timestamp}
		s.Sessions[event.SessionID] = sess
	}
	sess.Events++
	if event.Timestamp.After(sess.LastSeen) {
		sess.LastSeen = event.Timestamp
	}
	if n := len(sess.Addresses); n == 0 || sess.Addresses[n-1] != event.DeviceAddress {
		sess.Addresses = append(sess.Addresses, event.DeviceAddress)
	}

	switch {
	case event.Frame != nil:
		s.FramesByType[event.Frame.MessageType]++
	case event.StateChange != nil:
		if event.StateChange.Entity == log.StateEntityDevice && event.StateChange.NewState == "RESTARTING" {
			sess.Restarts++
		}
	case event.Error != nil:
		s.Errors++
		s.DropReasons[event.Error.Message]++
	}
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== KONNEKTING Protocol Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Layer:")
	for _, layer := range []log.Layer{log.LayerBus, log.LayerProtocol, log.LayerDevice} {
		if count := stats.EventsByLayer[layer]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", layer.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.FramesByType) > 0 {
		types := make([]wire.MessageType, 0, len(stats.FramesByType))
		for t := range stats.FramesByType {
			types = append(types, t)
		}
		sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })

		fmt.Fprintln(w, "Frames by Type:")
		for _, t := range types {
			fmt.Fprintf(w, "  %-27s %d\n", t.String()+":", stats.FramesByType[t])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Sessions: %d\n", len(stats.Sessions))
	if len(stats.Sessions) > 0 {
		type sessionInfo struct {
			id    string
			stats *SessionStats
		}
		sessions := make([]sessionInfo, 0, len(stats.Sessions))
		for id, ss := range stats.Sessions {
			sessions = append(sessions, sessionInfo{id, ss})
		}
		sort.Slice(sessions, func(i, j int) bool {
			return sessions[i].stats.FirstSeen.Before(sessions[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, s := range sessions {
			duration := s.stats.LastSeen.Sub(s.stats.FirstSeen).Round(time.Millisecond)
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortenSessionID(s.id), s.stats.Events, duration)
			for _, addr := range s.stats.Addresses {
				fmt.Fprintf(w, "           Address: %s\n", wire.FormatPhysical(addr))
			}
			if s.stats.Restarts > 0 {
				fmt.Fprintf(w, "           Restarts: %d\n", s.stats.Restarts)
			}
		}
	}

	if stats.Errors > 0 {
		reasons := make([]string, 0, len(stats.DropReasons))
		for r := range stats.DropReasons {
			reasons = append(reasons, r)
		}
		sort.Strings(reasons)

		fmt.Fprintln(w)
		fmt.Fprintf(w, "Dropped Requests: %d\n", stats.Errors)
		for _, r := range reasons {
			fmt.Fprintf(w, "  %4d  %s\n", stats.DropReasons[r], r)
		}
	}
}
