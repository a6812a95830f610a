package repository

import (
	"context"

	"github.com/fadilmartias/connect-matching/internal/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type JobOfferRepository struct {
	db *gorm.DB
}

func NewJobOfferRepository(db *gorm.DB) *JobOfferRepository {
	return &JobOfferRepository{db}
}

// SearchPublishedOffers returns the topK published offers nearest to embedding.
func (r *JobOfferRepository) SearchPublishedOffers(ctx context.Context, embedding pgvector.Vector, topK int) ([]model.JobOffer, error) {
	var offers []model.JobOffer

	err := r.db.WithContext(ctx).Raw(`
        SELECT *
        FROM job_offers
        WHERE status = ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, model.OfferStatusPublished, embedding, topK).Scan(&offers).Error

	return offers, err
}

func (r *JobOfferRepository) CreateOffer(ctx context.Context, offer *model.JobOffer) error {
	return r.db.WithContext(ctx).Create(offer).Error
}

func (r *JobOfferRepository) UpdateOffer(ctx context.Context, offer *model.JobOffer) error {
	return r.db.WithContext(ctx).Save(offer).Error
}

func (r *JobOfferRepository) FindOfferByID(ctx context.Context, id string) (*model.JobOffer, error) {
	var o model.JobOffer
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// ListPublishedOffers returns one page of published offers, newest first, and the total count.
func (r *JobOfferRepository) ListPublishedOffers(ctx context.Context, page, pageSize int) ([]model.JobOffer, int64, error) {
	var (
		offers []model.JobOffer
		total  int64
	)
	q := r.db.WithContext(ctx).
		Model(&model.JobOffer{}).
		Where("status = ?", model.OfferStatusPublished).
		Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&offers).Error
	return offers, total, err
}

func (r *JobOfferRepository) UpdateOfferEmbedding(ctx context.Context, id string, embedding pgvector.Vector) error {
	res := r.db.WithContext(ctx).
		Model(&model.JobOffer{}).
		Where("id = ?", id).
		Update("embedding", embedding)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
