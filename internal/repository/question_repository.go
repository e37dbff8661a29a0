package repository

import (
	"edu_assessment_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Create(q).Error
}

func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Save(q).Error
}

// FindByID materialises the concrete variant: the question row plus every
// option association.
func (r *QuestionRepository) FindByID(id uint) (*model.Question, error) {
	var q model.Question
	err := r.DB.
		Preload("SelectOptions").
		Preload("SortOptions").
		Preload("AreaOptions").
		Preload("DraggableOptions").
		Preload("DominoOptions").
		First(&q, id).Error
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuestionRepository) ListBySet(setID uint) ([]model.Question, error) {
	var questions []model.Question
	err := r.DB.
		Preload("SelectOptions").
		Preload("SortOptions").
		Preload("AreaOptions").
		Preload("DraggableOptions").
		Preload("DominoOptions").
		Where("question_set_id = ?", setID).
		Order("order_num ASC").
		Find(&questions).Error
	return questions, err
}

func (r *QuestionRepository) CountNonSELBySet(setID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).
		Where("question_set_id = ? AND question_type <> ?", setID, model.QuestionTypeSEL).
		Count(&count).Error
	return count, err
}

func (r *QuestionRepository) MaxOrder(setID uint) (int, error) {
	var max int
	err := r.DB.Model(&model.Question{}).Where("question_set_id = ?", setID).
		Select("COALESCE(MAX(order_num), 0)").Scan(&max).Error
	return max, err
}

// ListSELQuestionSetIDs returns the distinct set ids of an assessment that
// hold SEL questions; the placement rule checks them against the first set.
func (r *QuestionRepository) ListSELQuestionSetIDs(assessmentID uint) ([]uint, error) {
	var setIDs []uint
	err := r.DB.Model(&model.Question{}).
		Joins("JOIN question_sets ON question_sets.id = questions.question_set_id AND question_sets.deleted_at IS NULL").
		Where("question_sets.assessment_id = ? AND questions.question_type = ?", assessmentID, model.QuestionTypeSEL).
		Distinct("questions.question_set_id").
		Pluck("questions.question_set_id", &setIDs).Error
	return setIDs, err
}

// DeleteVariantSubrecords drops every option row of a question; used when a
// type change re-materialises the variant payload.
func (r *QuestionRepository) DeleteVariantSubrecords(tx *gorm.DB, questionID uint) error {
	for _, m := range []interface{}{
		&model.SelectOption{}, &model.SortOption{}, &model.AreaOption{},
		&model.DraggableOption{}, &model.DominoOption{},
	} {
		if err := tx.Where("question_id = ?", questionID).Delete(m).Error; err != nil {
			return err
		}
	}
	return nil
}

// ReplaceVariant swaps the question row and its subrecords in one
// transaction.
func (r *QuestionRepository) ReplaceVariant(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := r.DeleteVariantSubrecords(tx, q.ID); err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(q).Error
	})
}

// Delete soft-deletes the question and its subrecords. Answers keep a null
// question reference (the store nulls it so grading sees a deleted question).
func (r *QuestionRepository) Delete(questionID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := r.DeleteVariantSubrecords(tx, questionID); err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", questionID).Delete(&model.Attachment{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Answer{}).Where("question_id = ?", questionID).
			Update("question_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, questionID).Error
	})
}

// Reorder rewrites the order column of a set's questions under a row lock on
// the owning assessment.
func (r *QuestionRepository) Reorder(assessmentID, setID uint, orderedIDs []uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var a model.Assessment
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&a, assessmentID).Error; err != nil {
			return err
		}
		for i, id := range orderedIDs {
			if err := tx.Model(&model.Question{}).
				Where("id = ? AND question_set_id = ?", id, setID).
				Update("order_num", i+1).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
