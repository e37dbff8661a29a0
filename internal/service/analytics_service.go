package service

import (
	"errors"
	"fmt"
	"time"

	"edu_assessment_backend/internal/model"
	"edu_assessment_backend/internal/repository"
	"edu_assessment_backend/internal/util"

	"gorm.io/gorm"
)

type AnalyticsService struct {
	UserRepo       *repository.UserRepository
	AssessmentRepo *repository.AssessmentRepository
	SetRepo        *repository.QuestionSetRepository
	QuestionRepo   *repository.QuestionRepository
	AccessRepo     *repository.AccessRepository
	AttemptRepo    *repository.AttemptRepository
	AnswerRepo     *repository.AnswerRepository
	Cache          *VizCache
}

func NewAnalyticsService(
	userRepo *repository.UserRepository,
	assessmentRepo *repository.AssessmentRepository,
	setRepo *repository.QuestionSetRepository,
	questionRepo *repository.QuestionRepository,
	accessRepo *repository.AccessRepository,
	attemptRepo *repository.AttemptRepository,
	answerRepo *repository.AnswerRepository,
	cache *VizCache,
) *AnalyticsService {
	return &AnalyticsService{
		UserRepo:       userRepo,
		AssessmentRepo: assessmentRepo,
		SetRepo:        setRepo,
		QuestionRepo:   questionRepo,
		AccessRepo:     accessRepo,
		AttemptRepo:    attemptRepo,
		AnswerRepo:     answerRepo,
		Cache:          cache,
	}
}

// QuestionStats computes per-question correctness across the supervisor's
// students on one set, over the first or last complete attempt of each
// student.
func (s *AnalyticsService) QuestionStats(viewer *util.Claims, setID uint, selector model.AttemptSelector) ([]model.QuestionStat, error) {
	if viewer.Role != model.Supervisor {
		return []model.QuestionStat{}, nil
	}
	if _, err := s.visibleSet(viewer, setID); err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("viz:qstats:%d:%d:%s", viewer.UserID, setID, selector)
	var cached []model.QuestionStat
	if s.cacheGet(cacheKey, &cached) {
		return cached, nil
	}

	students, err := s.UserRepo.ListStudentsBySupervisor(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	studentIDs := make([]uint, len(students))
	for i, st := range students {
		studentIDs[i] = st.ID
	}
	answers, err := s.selectedAttemptAnswers(setID, studentIDs, selector)
	if err != nil {
		return nil, err
	}
	counts := CountValidAnswers(answers)

	questions, err := s.QuestionRepo.ListBySet(setID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	stats := make([]model.QuestionStat, 0, len(questions))
	for _, q := range questions {
		if q.IsSEL() {
			continue
		}
		c := counts[q.ID]
		stats = append(stats, model.QuestionStat{
			QuestionID:   q.ID,
			Title:        q.Title,
			QuestionType: q.QuestionType,
			Order:        q.Order,
			Correct:      c[0],
			Answered:     c[1],
			CorrectPct:   Percentage(c[0], c[1]),
		})
	}
	s.cacheSet(cacheKey, stats)
	return stats, nil
}

// StudentSetScores is the dashboard view: one row per set of the assessment
// with a percentage, a sentinel, or null (no access).
func (s *AnalyticsService) StudentSetScores(viewer *util.Claims, studentID, assessmentID uint) ([]model.SetScore, error) {
	if err := s.canViewStudent(viewer, studentID); err != nil {
		return nil, err
	}
	sets, err := s.SetRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	out := make([]model.SetScore, 0, len(sets))
	for _, set := range sets {
		row := model.SetScore{
			QuestionSetID: set.ID,
			Name:          set.Name,
			Order:         set.Order,
			Evaluated:     set.Evaluated,
		}
		if !set.Evaluated {
			row.Score = model.SetScoreValue{Sentinel: model.ScoreNotEvaluated}
			out = append(out, row)
			continue
		}
		access, err := s.AccessRepo.FindByStudentAndSet(studentID, set.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// No access: null score.
				out = append(out, row)
				continue
			}
			return nil, util.NewStoreError(err)
		}
		score, started, err := s.firstAttemptSetScore(access, set.ID)
		if err != nil {
			return nil, err
		}
		if !started {
			row.Score = model.SetScoreValue{Sentinel: model.ScoreNotStarted}
		} else {
			row.Score = model.SetScoreValue{Pct: score}
		}
		out = append(out, row)
	}
	return out, nil
}

// StudentAssessmentScore aggregates total valid over total answered on the student's
// first complete attempts on every accessible evaluated set.
func (s *AnalyticsService) StudentAssessmentScore(viewer *util.Claims, studentID, assessmentID uint) (*model.StudentAssessmentScore, error) {
	if err := s.canViewStudent(viewer, studentID); err != nil {
		return nil, err
	}
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("student not found")
		}
		return nil, util.NewStoreError(err)
	}

	sets, err := s.SetRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	valid, answered := 0, 0
	for _, set := range sets {
		if !set.Evaluated {
			continue
		}
		access, err := s.AccessRepo.FindByStudentAndSet(studentID, set.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, util.NewStoreError(err)
		}
		attempts, err := s.AttemptRepo.ListCompleteByAccess(access.ID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		first := SelectAttempt(attempts, model.FirstAttempt)
		if first == nil {
			continue
		}
		answers, err := s.AnswerRepo.ListByAttempt(first.ID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		for _, ans := range answers {
			if ans.QuestionID == nil || ans.AnswerType == model.QuestionTypeSEL {
				continue
			}
			answered++
			if ans.Valid {
				valid++
			}
		}
	}
	return &model.StudentAssessmentScore{
		StudentID: student.ID,
		Username:  student.Username,
		FirstName: student.FirstName,
		LastName:  student.LastName,
		Answered:  answered,
		Correct:   valid,
		ScorePct:  Percentage(valid, answered),
	}, nil
}

// AssessmentScore averages the non-null per-set scores across evaluated
// sets that have at least one answering student.
func (s *AnalyticsService) AssessmentScore(viewer *util.Claims, assessmentID uint) (*model.AssessmentScore, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	assessment, err := s.AssessmentRepo.FindByID(assessmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("assessment not found")
		}
		return nil, util.NewStoreError(err)
	}
	if assessment.CreatedByID != viewer.UserID && assessment.Private {
		return nil, util.NewNotFoundError("assessment not found")
	}

	cacheKey := fmt.Sprintf("viz:ascore:%d:%d", viewer.UserID, assessmentID)
	var cached model.AssessmentScore
	if s.cacheGet(cacheKey, &cached) {
		return &cached, nil
	}

	students, err := s.UserRepo.ListStudentsBySupervisor(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	studentIDs := make([]uint, len(students))
	for i, st := range students {
		studentIDs[i] = st.ID
	}

	sets, err := s.SetRepo.ListByAssessment(assessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	var setScores []*float64
	counted := 0
	for _, set := range sets {
		if !set.Evaluated {
			continue
		}
		total, err := s.QuestionRepo.CountNonSELBySet(set.ID)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		accesses, err := s.AccessRepo.ListBySetAndStudents(set.ID, studentIDs)
		if err != nil {
			return nil, util.NewStoreError(err)
		}
		var studentScores []*float64
		for _, access := range accesses {
			attempts, err := s.AttemptRepo.ListCompleteByAccess(access.ID)
			if err != nil {
				return nil, util.NewStoreError(err)
			}
			first := SelectAttempt(attempts, model.FirstAttempt)
			if first == nil {
				continue
			}
			correct, err := s.countValidInAttempt(first.ID)
			if err != nil {
				return nil, err
			}
			studentScores = append(studentScores, SetScoreForAttempt(correct, int(total)))
		}
		if len(studentScores) == 0 {
			continue
		}
		counted++
		setScores = append(setScores, MeanOfNonNil(studentScores))
	}

	result := &model.AssessmentScore{
		AssessmentID: assessmentID,
		Title:        assessment.Title,
		ScorePct:     MeanOfNonNil(setScores),
		SetCount:     counted,
	}
	s.cacheSet(cacheKey, result)
	return result, nil
}

// ListStudentScores returns the per-student aggregate for every student of
// the supervisor on one assessment.
func (s *AnalyticsService) ListStudentScores(viewer *util.Claims, assessmentID uint) ([]model.StudentAssessmentScore, error) {
	if viewer.Role != model.Supervisor {
		return []model.StudentAssessmentScore{}, nil
	}
	students, err := s.UserRepo.ListStudentsBySupervisor(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	out := make([]model.StudentAssessmentScore, 0, len(students))
	for _, st := range students {
		score, err := s.StudentAssessmentScore(viewer, st.ID, assessmentID)
		if err != nil {
			return nil, err
		}
		out = append(out, *score)
	}
	return out, nil
}

// QuestionDurations averages answer durations per question over every
// complete attempt of the student on the set.
func (s *AnalyticsService) QuestionDurations(viewer *util.Claims, studentID, setID uint) ([]model.QuestionDuration, error) {
	if err := s.canViewStudent(viewer, studentID); err != nil {
		return nil, err
	}
	access, err := s.AccessRepo.FindByStudentAndSet(studentID, setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []model.QuestionDuration{}, nil
		}
		return nil, util.NewStoreError(err)
	}
	attempts, err := s.AttemptRepo.ListCompleteByAccess(access.ID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	attemptIDs := make([]uint, len(attempts))
	for i, a := range attempts {
		attemptIDs[i] = a.ID
	}
	answers, err := s.AnswerRepo.ListByAttemptIDs(attemptIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	sums := map[uint]float64{}
	samples := map[uint]int{}
	for _, ans := range answers {
		if ans.QuestionID == nil {
			continue
		}
		sums[*ans.QuestionID] += ans.Duration().Seconds()
		samples[*ans.QuestionID]++
	}

	questions, err := s.QuestionRepo.ListBySet(setID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	out := make([]model.QuestionDuration, 0, len(questions))
	for _, q := range questions {
		d := model.QuestionDuration{QuestionID: q.ID, Title: q.Title, Samples: samples[q.ID]}
		if n := samples[q.ID]; n > 0 {
			avg := Round2(sums[q.ID] / float64(n))
			d.AvgSeconds = &avg
		}
		out = append(out, d)
	}
	return out, nil
}

// StudentOverview counts the student's active assessments and completed
// topics for the home dashboard.
func (s *AnalyticsService) StudentOverview(viewer *util.Claims) (*model.StudentOverview, error) {
	if viewer.Role != model.Student {
		return nil, util.NewPermissionError("student role required")
	}
	active, err := s.AccessRepo.ListActiveByStudent(viewer.UserID, time.Now())
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	setIDs := make([]uint, 0, len(active))
	for _, a := range active {
		setIDs = append(setIDs, a.QuestionSetID)
	}
	sets, err := s.SetRepo.FindByIDs(setIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	assessments := map[uint]bool{}
	for _, set := range sets {
		assessments[set.AssessmentID] = true
	}

	completed, err := s.AttemptRepo.CountCompletedSetsByStudent(viewer.UserID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return &model.StudentOverview{
		ActiveAssessments: len(assessments),
		CompletedTopics:   int(completed),
	}, nil
}

// SetCompletion counts distinct students with a complete attempt on the
// set; activeOnly restricts to currently valid access windows.
func (s *AnalyticsService) SetCompletion(viewer *util.Claims, setID uint, activeOnly bool) (*model.SetCompletion, error) {
	if viewer.Role != model.Supervisor {
		return nil, util.NewPermissionError("supervisor role required")
	}
	if _, err := s.visibleSet(viewer, setID); err != nil {
		return nil, err
	}
	var accesses []model.QuestionSetAccess
	var err error
	if activeOnly {
		accesses, err = s.AccessRepo.ListActiveBySet(setID, time.Now())
	} else {
		accesses, err = s.AccessRepo.ListBySet(setID)
	}
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	accessIDs := make([]uint, len(accesses))
	studentByAccess := make(map[uint]uint, len(accesses))
	for i, a := range accesses {
		accessIDs[i] = a.ID
		studentByAccess[a.ID] = a.StudentID
	}
	attempts, err := s.AttemptRepo.ListCompleteByAccessIDs(accessIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	students := map[uint]bool{}
	for _, a := range attempts {
		students[studentByAccess[a.AccessID]] = true
	}
	return &model.SetCompletion{QuestionSetID: setID, StudentsCompleted: len(students)}, nil
}

// --- internals ---

// selectedAttemptAnswers collects the answers of the chosen complete attempt
// of every given student on the set.
func (s *AnalyticsService) selectedAttemptAnswers(setID uint, studentIDs []uint, selector model.AttemptSelector) ([]model.Answer, error) {
	accesses, err := s.AccessRepo.ListBySetAndStudents(setID, studentIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	accessIDs := make([]uint, len(accesses))
	for i, a := range accesses {
		accessIDs[i] = a.ID
	}
	attempts, err := s.AttemptRepo.ListCompleteByAccessIDs(accessIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}

	var selectedIDs []uint
	for _, group := range GroupAttemptsByAccess(attempts) {
		if picked := SelectAttempt(group, selector); picked != nil {
			selectedIDs = append(selectedIDs, picked.ID)
		}
	}
	answers, err := s.AnswerRepo.ListByAttemptIDs(selectedIDs)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	return answers, nil
}

// firstAttemptSetScore computes the first-attempt score on one access;
// started is false when no complete attempt exists.
func (s *AnalyticsService) firstAttemptSetScore(access *model.QuestionSetAccess, setID uint) (*float64, bool, error) {
	attempts, err := s.AttemptRepo.ListCompleteByAccess(access.ID)
	if err != nil {
		return nil, false, util.NewStoreError(err)
	}
	first := SelectAttempt(attempts, model.FirstAttempt)
	if first == nil {
		return nil, false, nil
	}
	correct, err := s.countValidInAttempt(first.ID)
	if err != nil {
		return nil, false, err
	}
	total, err := s.QuestionRepo.CountNonSELBySet(setID)
	if err != nil {
		return nil, false, util.NewStoreError(err)
	}
	return SetScoreForAttempt(correct, int(total)), true, nil
}

func (s *AnalyticsService) countValidInAttempt(attemptID uint) (int, error) {
	answers, err := s.AnswerRepo.ListByAttempt(attemptID)
	if err != nil {
		return 0, util.NewStoreError(err)
	}
	correct := 0
	for _, ans := range answers {
		if ans.QuestionID == nil || ans.AnswerType == model.QuestionTypeSEL {
			continue
		}
		if ans.Valid {
			correct++
		}
	}
	return correct, nil
}

// canViewStudent admits the student themself and the owning supervisor.
func (s *AnalyticsService) canViewStudent(viewer *util.Claims, studentID uint) error {
	if viewer.Role == model.Student {
		if viewer.UserID != studentID {
			return util.NewNotFoundError("student not found")
		}
		return nil
	}
	if viewer.Role != model.Supervisor {
		return util.NewPermissionError("unsupported role")
	}
	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NewNotFoundError("student not found")
		}
		return util.NewStoreError(err)
	}
	if !student.IsStudent() || student.CreatedByID == nil || *student.CreatedByID != viewer.UserID {
		return util.NewNotFoundError("student not found")
	}
	return nil
}

func (s *AnalyticsService) visibleSet(viewer *util.Claims, setID uint) (*model.QuestionSet, error) {
	set, err := s.SetRepo.FindByID(setID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NewNotFoundError("question set not found")
		}
		return nil, util.NewStoreError(err)
	}
	assessment, err := s.AssessmentRepo.FindByID(set.AssessmentID)
	if err != nil {
		return nil, util.NewStoreError(err)
	}
	if assessment.CreatedByID != viewer.UserID && assessment.Private {
		return nil, util.NewNotFoundError("question set not found")
	}
	return set, nil
}

func (s *AnalyticsService) cacheGet(key string, dest interface{}) bool {
	return s.Cache.Get(key, dest)
}

func (s *AnalyticsService) cacheSet(key string, value interface{}) {
	s.Cache.Set(key, value)
}
