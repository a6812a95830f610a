package repository

import (
	"context"

	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type CandidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) *CandidateRepository {
	return &CandidateRepository{db}
}

// profile preloads every association the scorer reads.
func (r *CandidateRepository) profile(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Skills").
		Preload("Experiences").
		Preload("Educations").
		Preload("Certifications").
		Preload("Badges").
		Preload("TestResults")
}

func (r *CandidateRepository) CreateCandidate(ctx context.Context, c *model.Candidate) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CandidateRepository) FindCandidateByID(ctx context.Context, id string) (*model.Candidate, error) {
	var c model.Candidate
	if err := r.profile(ctx).First(&c, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CandidateRepository) FindCandidatesByIDs(ctx context.Context, ids []string) ([]model.Candidate, error) {
	var candidates []model.Candidate
	err := r.profile(ctx).Where("id IN ?", ids).Find(&candidates).Error
	return candidates, err
}

// UpdateCV stores the extracted CV text and its embedding. A nil embedding clears the column.
func (r *CandidateRepository) UpdateCV(ctx context.Context, id string, text string, embedding *pgvector.Vector) error {
	res := r.db.WithContext(ctx).
		Model(&model.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]any{"cv_text": text, "embedding": embedding})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateCandidate rewrites the profile and replaces every child row. CV text and embedding are
// left untouched.
func (r *CandidateRepository) UpdateCandidate(ctx context.Context, c *model.Candidate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, child := range []any{
			&model.CandidateSkill{},
			&model.CandidateExperience{},
			&model.CandidateEducation{},
			&model.CandidateCertification{},
			&model.CandidateBadge{},
			&model.CandidateTestResult{},
		} {
			if err := tx.Where("candidate_id = ?", c.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).
			Omit("cv_text", "embedding", "created_at").
			Save(c).Error
	})
}
