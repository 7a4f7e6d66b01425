package analytics

import "fmt"

// GroupAccuracy is the mean correctness of one group of attempts.
type GroupAccuracy struct {
	Key      string  `json:"key"`
	Attempts int     `json:"attempts"`
	Correct  int     `json:"correct"`
	Accuracy float64 `json:"accuracy"`
}

// Report summarizes a learner's merged attempt history.
type Report struct {
	User string `json:"user"`

	// Empty is set when there is no history; only User is filled in then.
	Empty bool `json:"empty"`

	Attempts        int     `json:"attempts"`
	Correct         int     `json:"correct"`
	OverallAccuracy float64 `json:"overall_accuracy"`

	AccuracyByTopic      map[string]float64 `json:"accuracy_by_topic"`
	AccuracyByChapter    map[string]float64 `json:"accuracy_by_chapter"`
	AccuracyByDifficulty map[string]float64 `json:"accuracy_by_difficulty"`

	// Topics, Chapters and Difficulties hold the same figures as the maps,
	// sorted ascending by key.
	Topics       []GroupAccuracy `json:"-"`
	Chapters     []GroupAccuracy `json:"-"`
	Difficulties []GroupAccuracy `json:"-"`

	// AverageTime is the mean time per question in seconds.
	AverageTime float64 `json:"average_time"`

	// TimeTrend lists time per question in history order.
	TimeTrend []float64 `json:"time_trend"`

	WeakestChapter string `json:"weakest_chapter,omitempty"`
	Recommendation string `json:"recommendation,omitempty"`
}

// NoHistoryMessage is shown when a learner has no attempts yet.
const NoHistoryMessage = "No history yet. Answer a few questions to build your twin."

// Recommend renders the study plan for the weakest chapter.
func Recommend(weakestChapter string) string {
	return fmt.Sprintf(`Based on your performance so far:

- Focus extra on %[1]s
- Revise theory and solve at least 10 problems from %[1]s
- Start with easy and medium questions, then move to hard
- Revisit your mistakes and check where you spent too much time`, weakestChapter)
}
