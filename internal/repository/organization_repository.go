package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Tomlord1122/tenant-backend/internal/domain"
)

type gormOrganizationRepository struct {
	db *gorm.DB
}

func NewGormOrganizationRepository(db *gorm.DB) OrganizationRepository {
	return &gormOrganizationRepository{db: db}
}

func (r *gormOrganizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	return translateError(r.db.WithContext(ctx).Create(org).Error)
}

func (r *gormOrganizationRepository) FindByID(ctx context.Context, id uint) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).First(&org, id).Error; err != nil {
		return nil, translateError(err)
	}
	return &org, nil
}

func (r *gormOrganizationRepository) FindByName(ctx context.Context, name string) (*domain.Organization, error) {
	var org domain.Organization
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&org).Error; err != nil {
		return nil, translateError(err)
	}
	return &org, nil
}
