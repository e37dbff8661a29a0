package repository

import (
	"time"

	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
)

type AssessmentRepository struct {
	DB *gorm.DB
}

func NewAssessmentRepository(db *gorm.DB) *AssessmentRepository {
	return &AssessmentRepository{DB: db}
}

func (r *AssessmentRepository) Create(a *model.Assessment) error {
	return r.DB.Create(a).Error
}

func (r *AssessmentRepository) Update(a *model.Assessment) error {
	return r.DB.Save(a).Error
}

func (r *AssessmentRepository) FindByID(id uint) (*model.Assessment, error) {
	var a model.Assessment
	if err := r.DB.First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AssessmentRepository) FindByIDWithSets(id uint) (*model.Assessment, error) {
	var a model.Assessment
	err := r.DB.Preload("QuestionSets", func(db *gorm.DB) *gorm.DB {
		return db.Order("question_sets.order_num ASC")
	}).First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// ListVisibleToSupervisor returns public assessments plus the supervisor's
// own, archived ones included only for the owner.
func (r *AssessmentRepository) ListVisibleToSupervisor(supervisorID uint) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Where("created_by_id = ? OR (private = ? AND archived = ?)", supervisorID, false, false).
		Order("id ASC").Find(&out).Error
	return out, err
}

// ListForStudent returns assessments reachable through at least one access
// valid on the given day.
func (r *AssessmentRepository) ListForStudent(studentID uint, day time.Time) ([]model.Assessment, error) {
	var out []model.Assessment
	err := r.DB.Distinct("assessments.*").
		Joins("JOIN question_sets ON question_sets.assessment_id = assessments.id AND question_sets.deleted_at IS NULL").
		Joins("JOIN question_set_accesses ON question_set_accesses.question_set_id = question_sets.id AND question_set_accesses.deleted_at IS NULL").
		Where("question_set_accesses.student_id = ?", studentID).
		Where("question_set_accesses.start_date <= ? AND question_set_accesses.end_date >= ?", day, day).
		Where("assessments.archived = ?", false).
		Order("assessments.id ASC").
		Find(&out).Error
	return out, err
}

// DeleteCascade removes the assessment and every descendant row in one
// transaction: sets, questions, options, attachments, accesses, attempts
// and answers.
func (r *AssessmentRepository) DeleteCascade(assessmentID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var setIDs []uint
		if err := tx.Model(&model.QuestionSet{}).Where("assessment_id = ?", assessmentID).
			Pluck("id", &setIDs).Error; err != nil {
			return err
		}
		if len(setIDs) > 0 {
			var questionIDs []uint
			if err := tx.Model(&model.Question{}).Where("question_set_id IN ?", setIDs).
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
			if err := tx.Model(&model.QuestionSetAccess{}).Where("question_set_id IN ?", setIDs).
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
			if err := tx.Where("question_set_id IN ?", setIDs).Delete(&model.Attachment{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&model.QuestionSet{}, setIDs).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&model.Assessment{}, assessmentID).Error
	})
}

func deleteQuestionChildren(tx *gorm.DB, questionIDs []uint) error {
	var selectIDs, draggableIDs []uint
	if err := tx.Model(&model.SelectOption{}).Where("question_id IN ?", questionIDs).
		Pluck("id", &selectIDs).Error; err != nil {
		return err
	}
	if err := tx.Model(&model.DraggableOption{}).Where("question_id IN ?", questionIDs).
		Pluck("id", &draggableIDs).Error; err != nil {
		return err
	}
	if len(selectIDs) > 0 {
		if err := tx.Where("select_option_id IN ?", selectIDs).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
	}
	if len(draggableIDs) > 0 {
		if err := tx.Where("draggable_option_id IN ?", draggableIDs).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
	}
	for _, m := range []interface{}{
		&model.SelectOption{}, &model.SortOption{}, &model.AreaOption{},
		&model.DraggableOption{}, &model.DominoOption{}, &model.Attachment{},
	} {
		if err := tx.Where("question_id IN ?", questionIDs).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}
