package model

import "encoding/json"

// AttemptSelector picks which complete attempt of a student on a set the
// aggregation reads.
type AttemptSelector string

const (
	FirstAttempt AttemptSelector = "first"
	LastAttempt  AttemptSelector = "last"
)

// Set-score sentinels for the dashboard view.
const (
	ScoreNotStarted   = "not_started"
	ScoreNotEvaluated = "not_evaluated"
)

// SetScoreValue renders a per-set score: a percentage, one of the string
// sentinels, or JSON null when the student has no access to the set.
type SetScoreValue struct {
	Pct      *float64
	Sentinel string
}

func (v SetScoreValue) MarshalJSON() ([]byte, error) {
	if v.Sentinel != "" {
		return json.Marshal(v.Sentinel)
	}
	if v.Pct == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*v.Pct)
}

// QuestionStat is per-question correctness across a supervisor's students.
type QuestionStat struct {
	QuestionID   uint         `json:"questionId"`
	Title        string       `json:"title"`
	QuestionType QuestionType `json:"questionType"`
	Order        int          `json:"order"`
	Answered     int          `json:"answered"`
	Correct      int          `json:"correct"`
	// CorrectPct is null when no answers exist.
	CorrectPct *float64 `json:"correctPct"`
}

// SetScore is one row of the per-student dashboard.
type SetScore struct {
	QuestionSetID uint          `json:"questionSetId"`
	Name          string        `json:"name"`
	Order         int           `json:"order"`
	Evaluated     bool          `json:"evaluated"`
	Score         SetScoreValue `json:"score"`
}

// StudentAssessmentScore aggregates a student over an assessment's evaluated
// sets (first complete attempts only).
type StudentAssessmentScore struct {
	StudentID uint     `json:"studentId"`
	Username  string   `json:"username"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Answered  int      `json:"answered"`
	Correct   int      `json:"correct"`
	ScorePct  *float64 `json:"scorePct"`
}

// AssessmentScore is the supervisor-facing average over evaluated sets.
type AssessmentScore struct {
	AssessmentID uint     `json:"assessmentId"`
	Title        string   `json:"title"`
	ScorePct     *float64 `json:"scorePct"`
	SetCount     int      `json:"setCount"`
}

// QuestionDuration is the mean answering time of one student on one question.
type QuestionDuration struct {
	QuestionID uint     `json:"questionId"`
	Title      string   `json:"title"`
	AvgSeconds *float64 `json:"avgSeconds"`
	Samples    int      `json:"samples"`
}

// StudentOverview is the student home dashboard.
type StudentOverview struct {
	ActiveAssessments int `json:"activeAssessments"`
	CompletedTopics   int `json:"completedTopics"`
}

// SetCompletion counts the distinct students who completed a set.
type SetCompletion struct {
	QuestionSetID     uint `json:"questionSetId"`
	StudentsCompleted int  `json:"studentsCompleted"`
}
