// Package analytics derives accuracy and timing diagnostics from a
// learner's attempt history.
package analytics

import (
	"sort"

	"github.com/abhisek/learntwin/internal/attempt"
)

// Merge returns user's persisted records followed by the session entries
// in row form. Session entries that were persisted under the same
// (user, question, timestamp) are already in the history and are not
// counted twice.
func Merge(user string, persisted []attempt.Record, session []attempt.Entry) []attempt.Record {
	var merged []attempt.Record
	seen := make(map[attempt.Key]bool)
	for _, r := range persisted {
		if r.User != user {
			continue
		}
		merged = append(merged, r)
		seen[r.Key()] = true
	}
	for _, e := range session {
		r := e.Record(user)
		if r.Timestamp != "" && seen[r.Key()] {
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

// Analyze builds a report for user from persisted history and the live
// session log. It is recomputed from scratch on every call.
func Analyze(user string, persisted []attempt.Record, session []attempt.Entry) *Report {
	return Summarize(user, Merge(user, persisted, session))
}

// Summarize builds a report from an already merged history.
func Summarize(user string, rows []attempt.Record) *Report {
	if len(rows) == 0 {
		return &Report{User: user, Empty: true}
	}

	rep := &Report{User: user, Attempts: len(rows)}

	var timeSum float64
	var timed int
	for _, r := range rows {
		rep.Correct += r.Correct.Int()
		if r.HasTime() {
			timeSum += r.TimeTaken
			timed++
			rep.TimeTrend = append(rep.TimeTrend, r.TimeTaken)
		}
	}
	rep.OverallAccuracy = float64(rep.Correct) / float64(rep.Attempts)
	if timed > 0 {
		rep.AverageTime = timeSum / float64(timed)
	}

	rep.Topics = groupBy(rows, func(r attempt.Record) string { return r.Topic })
	rep.Chapters = groupBy(rows, func(r attempt.Record) string { return r.Chapter })
	rep.Difficulties = groupBy(rows, func(r attempt.Record) string { return string(r.Difficulty) })

	rep.AccuracyByTopic = toMap(rep.Topics)
	rep.AccuracyByChapter = toMap(rep.Chapters)
	rep.AccuracyByDifficulty = toMap(rep.Difficulties)

	rep.WeakestChapter = weakest(rep.Chapters)
	rep.Recommendation = Recommend(rep.WeakestChapter)
	return rep
}

// groupBy aggregates rows by key, sorted ascending by key. Only keys that
// occur are present.
func groupBy(rows []attempt.Record, key func(attempt.Record) string) []GroupAccuracy {
	idx := make(map[string]int)
	var groups []GroupAccuracy
	for _, r := range rows {
		k := key(r)
		i, ok := idx[k]
		if !ok {
			i = len(groups)
			idx[k] = i
			groups = append(groups, GroupAccuracy{Key: k})
		}
		groups[i].Attempts++
		groups[i].Correct += r.Correct.Int()
	}
	for i := range groups {
		groups[i].Accuracy = float64(groups[i].Correct) / float64(groups[i].Attempts)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Key < groups[j].Key })
	return groups
}

func toMap(groups []GroupAccuracy) map[string]float64 {
	m := make(map[string]float64, len(groups))
	for _, g := range groups {
		m[g.Key] = g.Accuracy
	}
	return m
}

// weakest returns the key with the lowest accuracy. groups is sorted by
// key, so ties go to the alphabetically first chapter.
func weakest(groups []GroupAccuracy) string {
	if len(groups) == 0 {
		return ""
	}
	best := groups[0]
	for _, g := range groups[1:] {
		if g.Accuracy < best.Accuracy {
			best = g
		}
	}
	return best.Key
}
