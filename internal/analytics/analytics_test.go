package analytics

import (
	"math"
	"strings"
	"testing"

	"github.com/abhisek/learntwin/internal/attempt"
	"github.com/abhisek/learntwin/internal/questionbank"
)

func rec(user, qid, topic, chapter string, d questionbank.Difficulty, correct attempt.Correctness, secs float64, ts string) attempt.Record {
	return attempt.Record{
		User: user, QuestionID: qid, Topic: topic, Chapter: chapter,
		Difficulty: d, Correct: correct, TimeTaken: secs, Timestamp: ts,
	}
}

var (
	yes = attempt.FromBool(true)
	no  = attempt.FromBool(false)
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAnalyze_NoHistory(t *testing.T) {
	rep := Analyze("ana", nil, nil)
	if !rep.Empty {
		t.Fatal("expected empty report")
	}
	if rep.WeakestChapter != "" || rep.Recommendation != "" {
		t.Errorf("empty report should carry no diagnosis: %+v", rep)
	}
}

func TestAnalyze_OtherUsersIgnored(t *testing.T) {
	persisted := []attempt.Record{
		rec("ben", "1", "algebra", "linear", questionbank.Easy, yes, 3, "t1"),
	}
	if rep := Analyze("ana", persisted, nil); !rep.Empty {
		t.Errorf("ana has no history, got %+v", rep)
	}
}

func TestAnalyze_GroupsAndTiming(t *testing.T) {
	persisted := []attempt.Record{
		rec("ana", "1", "algebra", "linear", questionbank.Easy, yes, 2, "t1"),
		rec("ana", "2", "algebra", "quadratics", questionbank.Medium, no, 4, "t2"),
		rec("ben", "3", "geometry", "circles", questionbank.Hard, no, 100, "t3"),
		rec("ana", "4", "geometry", "circles", questionbank.Hard, yes, 6, "t4"),
	}
	session := []attempt.Entry{
		{QuestionID: "5", Topic: "algebra", Chapter: "quadratics", Difficulty: questionbank.Medium, Correct: true, TimeTaken: 8},
	}

	rep := Analyze("ana", persisted, session)
	if rep.Empty {
		t.Fatal("unexpected empty report")
	}

	if rep.Attempts != 4 || rep.Correct != 3 {
		t.Errorf("Attempts/Correct = %d/%d, want 4/3", rep.Attempts, rep.Correct)
	}

	wantTopic := map[string]float64{"algebra": 2.0 / 3, "geometry": 1}
	for k, want := range wantTopic {
		if !approx(rep.AccuracyByTopic[k], want) {
			t.Errorf("topic %q accuracy = %v, want %v", k, rep.AccuracyByTopic[k], want)
		}
	}
	if len(rep.AccuracyByTopic) != 2 {
		t.Errorf("topics = %v, want only groups with rows", rep.AccuracyByTopic)
	}

	wantChapter := map[string]float64{"linear": 1, "quadratics": 0.5, "circles": 1}
	for k, want := range wantChapter {
		if !approx(rep.AccuracyByChapter[k], want) {
			t.Errorf("chapter %q accuracy = %v, want %v", k, rep.AccuracyByChapter[k], want)
		}
	}

	if !approx(rep.AccuracyByDifficulty["medium"], 0.5) {
		t.Errorf("medium accuracy = %v, want 0.5", rep.AccuracyByDifficulty["medium"])
	}

	if !approx(rep.AverageTime, 5) {
		t.Errorf("AverageTime = %v, want 5", rep.AverageTime)
	}
	wantTrend := []float64{2, 4, 6, 8}
	if len(rep.TimeTrend) != len(wantTrend) {
		t.Fatalf("TimeTrend = %v, want %v", rep.TimeTrend, wantTrend)
	}
	for i := range wantTrend {
		if rep.TimeTrend[i] != wantTrend[i] {
			t.Errorf("TimeTrend[%d] = %v, want %v", i, rep.TimeTrend[i], wantTrend[i])
		}
	}

	if rep.WeakestChapter != "quadratics" {
		t.Errorf("WeakestChapter = %q, want quadratics", rep.WeakestChapter)
	}
	if !strings.Contains(rep.Recommendation, "quadratics") {
		t.Errorf("recommendation does not mention the weakest chapter: %q", rep.Recommendation)
	}

	keys := make([]string, len(rep.Chapters))
	for i, g := range rep.Chapters {
		keys[i] = g.Key
	}
	if strings.Join(keys, ",") != "circles,linear,quadratics" {
		t.Errorf("chapters not sorted by key: %v", keys)
	}
}

func TestAnalyze_WeakestChapterTieBreak(t *testing.T) {
	persisted := []attempt.Record{
		rec("ana", "1", "t", "zeta", questionbank.Easy, no, 1, "t1"),
		rec("ana", "2", "t", "alpha", questionbank.Easy, no, 1, "t2"),
		rec("ana", "3", "t", "mid", questionbank.Easy, yes, 1, "t3"),
	}

	first := Analyze("ana", persisted, nil).WeakestChapter
	if first != "alpha" {
		t.Errorf("WeakestChapter = %q, want alpha (ascending name on ties)", first)
	}
	for i := 0; i < 20; i++ {
		if got := Analyze("ana", persisted, nil).WeakestChapter; got != first {
			t.Fatalf("call %d returned %q, want %q", i, got, first)
		}
	}
}

// Scenario F: a legacy "True" string counts as correct.
func TestAnalyze_LegacyCorrectness(t *testing.T) {
	persisted := []attempt.Record{
		rec("ana", "1", "t", "c", questionbank.Easy, attempt.ParseCorrectness("True"), 1, "t1"),
		rec("ana", "2", "t", "c", questionbank.Easy, attempt.ParseCorrectness("banana"), 1, "t2"),
	}

	rep := Analyze("ana", persisted, nil)
	if !approx(rep.AccuracyByChapter["c"], 0.5) {
		t.Errorf("accuracy = %v, want 0.5", rep.AccuracyByChapter["c"])
	}
}

func TestAnalyze_MissingTimesExcluded(t *testing.T) {
	persisted := []attempt.Record{
		rec("ana", "1", "t", "c", questionbank.Easy, yes, math.NaN(), "t1"),
		rec("ana", "2", "t", "c", questionbank.Easy, yes, 3, "t2"),
	}

	rep := Analyze("ana", persisted, nil)
	if rep.Attempts != 2 {
		t.Errorf("Attempts = %d, want 2", rep.Attempts)
	}
	if !approx(rep.AverageTime, 3) {
		t.Errorf("AverageTime = %v, want 3", rep.AverageTime)
	}
	if len(rep.TimeTrend) != 1 {
		t.Errorf("TimeTrend = %v, want one value", rep.TimeTrend)
	}
}

func TestMerge_SkipsPersistedSessionEntries(t *testing.T) {
	persisted := []attempt.Record{
		rec("ana", "1", "t", "c", questionbank.Easy, yes, 1, "2026-01-01T10:00:00"),
	}
	session := []attempt.Entry{
		{QuestionID: "1", Chapter: "c", Correct: true, TimeTaken: 1, Timestamp: "2026-01-01T10:00:00"},
		{QuestionID: "2", Chapter: "c", Correct: false, TimeTaken: 2, Timestamp: "2026-01-01T10:00:05"},
		{QuestionID: "3", Chapter: "c", Correct: false, TimeTaken: 2},
	}

	merged := Merge("ana", persisted, session)
	if len(merged) != 3 {
		t.Fatalf("merged %d rows, want 3: %+v", len(merged), merged)
	}
	if merged[1].QuestionID != "2" || merged[2].QuestionID != "3" {
		t.Errorf("unexpected merge order: %+v", merged)
	}
	if merged[1].User != "ana" {
		t.Errorf("session rows take the learner's identity, got %q", merged[1].User)
	}
}

func TestRecommend_Deterministic(t *testing.T) {
	if Recommend("optics") != Recommend("optics") {
		t.Error("recommendation must depend only on the chapter")
	}
	if !strings.Contains(Recommend("optics"), "Focus extra on optics") {
		t.Errorf("unexpected template: %q", Recommend("optics"))
	}
}
