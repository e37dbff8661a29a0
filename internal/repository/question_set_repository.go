package repository

import (
	"time"

	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionSetRepository struct {
	DB *gorm.DB
}

func NewQuestionSetRepository(db *gorm.DB) *QuestionSetRepository {
	return &QuestionSetRepository{DB: db}
}

func (r *QuestionSetRepository) Create(set *model.QuestionSet) error {
	return r.DB.Create(set).Error
}

func (r *QuestionSetRepository) Update(set *model.QuestionSet) error {
	return r.DB.Save(set).Error
}

func (r *QuestionSetRepository) FindByID(id uint) (*model.QuestionSet, error) {
	var s model.QuestionSet
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *QuestionSetRepository) ListByAssessment(assessmentID uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	err := r.DB.Where("assessment_id = ?", assessmentID).
		Order("order_num ASC").Find(&sets).Error
	return sets, err
}

func (r *QuestionSetRepository) FindByIDs(ids []uint) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	if len(ids) == 0 {
		return sets, nil
	}
	err := r.DB.Where("id IN ?", ids).Find(&sets).Error
	return sets, err
}

func (r *QuestionSetRepository) MaxOrder(assessmentID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.QuestionSet{}).Where("assessment_id = ?", assessmentID).
		Select("COALESCE(MAX(order_num), 0)").Scan(&max).Error
	return max, err
}

func (r *QuestionSetRepository) CountQuestions(setID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("question_set_id = ?", setID).Count(&count).Error
	return count, err
}

// ListStudentSets returns the sets of an assessment the student can see: the
// ones with an access valid on the given day.
func (r *QuestionSetRepository) ListStudentSets(studentID, assessmentID uint, day time.Time) ([]model.QuestionSet, error) {
	var sets []model.QuestionSet
	err := r.DB.Distinct("question_sets.*").
		Joins("JOIN question_set_accesses ON question_set_accesses.question_set_id = question_sets.id AND question_set_accesses.deleted_at IS NULL").
		Where("question_sets.assessment_id = ?", assessmentID).
		Where("question_set_accesses.student_id = ?", studentID).
		Where("question_set_accesses.start_date <= ? AND question_set_accesses.end_date >= ?", day, day).
		Order("question_sets.order_num ASC").
		Find(&sets).Error
	return sets, err
}

// Reorder rewrites the full order column of an assessment's sets under a
// row lock on the assessment so concurrent reorders do not interleave.
// orderedIDs must be exactly the assessment's set ids; callers validate.
func (r *QuestionSetRepository) Reorder(assessmentID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var a model.Assessment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, assessmentID).Error; err != nil {
			return err
		}
		for i, id := range orderedIDs {
			if err := tx.Model(&model.QuestionSet{}).
				Where("id = ? AND assessment_id = ?", id, assessmentID).
				Update("order_num", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteCascade removes a set with its questions, accesses, attempts and
// answers, then resequences the sibling orders back to 1..N.
func (r *QuestionSetRepository) DeleteCascade(set *model.QuestionSet) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []uint
		if err := tx.Model(&model.Question{}).Where("question_set_id = ?", set.ID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}
		if len(questionIDs) > 0 {
			if err := deleteQuestionChildren(tx, questionIDs); err != nil {
				return err
			}
			if err := tx.Delete(&model.Question{}, questionIDs).Error; err != nil {
				return err
			}
		}
		var accessIDs []uint
		if err := tx.Model(&model.QuestionSetAccess{}).Where("question_set_id = ?", set.ID).
			Pluck("id", &accessIDs).Error; err != nil {
			return err
		}
		if len(accessIDs) > 0 {
			var attemptIDs []uint
			if err := tx.Model(&model.QuestionSetAnswer{}).Where("access_id IN ?", accessIDs).
				Pluck("id", &attemptIDs).Error; err != nil {
				return err
			}
			if len(attemptIDs) > 0 {
				if err := tx.Where("attempt_id IN ?", attemptIDs).Delete(&model.Answer{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&model.QuestionSetAnswer{}, attemptIDs).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&model.QuestionSetAccess{}, accessIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("question_set_id = ?", set.ID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.QuestionSet{}, set.ID).Error; err != nil {
			return err
		}

		// Close the gap left by the removed order.
		var siblings []model.QuestionSet
		if err := tx.Where("assessment_id = ?", set.AssessmentID).
			Order("order_num ASC").Find(&siblings).Error; err != nil {
			return err
		}
		for i, s := range siblings {
			if s.Order != i+1 {
				if err := tx.Model(&model.QuestionSet{}).Where("id = ?", s.ID).
					Update("order_num", i+1).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
