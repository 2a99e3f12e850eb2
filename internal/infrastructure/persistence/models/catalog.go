package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/brownstreet/backend/internal/domain/catalog"
)

// ItemModel is the persistence model for the local item cache. One row per
// upstream origin product; rows mirror what the engine last observed or
// wrote upstream.
type ItemModel struct {
	ProductNo          string    `gorm:"type:varchar(50);primaryKey"`
	Name               string    `gorm:"type:varchar(300);not null"`
	Brand              string    `gorm:"type:varchar(200);index"`
	Description        string    `gorm:"type:text"`
	RegisteredAt       time.Time `gorm:"index"`
	LifecycleOverride  *time.Time
	Stage              string   `gorm:"type:varchar(20);not null;default:'NEW';index"`
	ArchiveCategory    *string  `gorm:"type:varchar(40)"`
	SellerTags         []string `gorm:"type:text;serializer:json"`
	DisplayCategoryIDs []string `gorm:"type:text;serializer:json"`
	ClassifiedAt       *time.Time
	SyncedAt           *time.Time
	UpdatedAt          time.Time
}

// TableName returns the table name for GORM
func (ItemModel) TableName() string {
	return "channel_product_map"
}

// ToDomain converts the persistence model to a domain Item.
func (m *ItemModel) ToDomain() *catalog.Item {
	item := &catalog.Item{
		ProductNo:          m.ProductNo,
		Name:               m.Name,
		Brand:              m.Brand,
		Description:        m.Description,
		RegisteredAt:       m.RegisteredAt,
		LifecycleOverride:  m.LifecycleOverride,
		Stage:              catalog.LifecycleStage(m.Stage),
		SellerTags:         m.SellerTags,
		DisplayCategoryIDs: m.DisplayCategoryIDs,
		ClassifiedAt:       m.ClassifiedAt,
		SyncedAt:           m.SyncedAt,
		UpdatedAt:          m.UpdatedAt,
	}
	if m.ArchiveCategory != nil {
		c := catalog.Category(*m.ArchiveCategory)
		item.ArchiveCategory = &c
	}
	return item
}

// FromDomain populates the persistence model from a domain Item.
func (m *ItemModel) FromDomain(item *catalog.Item) {
	m.ProductNo = item.ProductNo
	m.Name = item.Name
	m.Brand = item.Brand
	m.Description = item.Description
	m.RegisteredAt = item.RegisteredAt
	m.LifecycleOverride = item.LifecycleOverride
	m.Stage = item.Stage.String()
	m.SellerTags = item.SellerTags
	m.DisplayCategoryIDs = item.DisplayCategoryIDs
	m.ClassifiedAt = item.ClassifiedAt
	m.SyncedAt = item.SyncedAt
	m.UpdatedAt = item.UpdatedAt
	if item.ArchiveCategory != nil {
		s := item.ArchiveCategory.String()
		m.ArchiveCategory = &s
	} else {
		m.ArchiveCategory = nil
	}
}

// ItemModelFromDomain creates a persistence model from a domain Item.
func ItemModelFromDomain(item *catalog.Item) *ItemModel {
	m := &ItemModel{}
	m.FromDomain(item)
	return m
}

// SyncAttemptModel is the persistence model for the append-only sync audit
// log. Rows are inserted once and never updated.
type SyncAttemptModel struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductNo      string    `gorm:"type:varchar(50);not null;index"`
	ProductName    string    `gorm:"type:varchar(300)"`
	TargetCategory string    `gorm:"type:varchar(40)"`
	Outcome        string    `gorm:"type:varchar(10);not null"`
	Skipped        bool      `gorm:"not null;default:false"`
	ErrorMessage   string    `gorm:"type:text"`
	SyncedBy       string    `gorm:"type:varchar(100)"`
	CreatedAt      time.Time `gorm:"index"`
}

// TableName returns the table name for GORM
func (SyncAttemptModel) TableName() string {
	return "exhibition_sync_logs"
}

// ToDomain converts the persistence model to a domain SyncAttempt.
func (m *SyncAttemptModel) ToDomain() *catalog.SyncAttempt {
	return &catalog.SyncAttempt{
		ID:             m.ID,
		ProductNo:      m.ProductNo,
		ProductName:    m.ProductName,
		TargetCategory: m.TargetCategory,
		Outcome:        catalog.SyncOutcome(m.Outcome),
		Skipped:        m.Skipped,
		ErrorMessage:   m.ErrorMessage,
		SyncedBy:       m.SyncedBy,
		CreatedAt:      m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain SyncAttempt.
func (m *SyncAttemptModel) FromDomain(a *catalog.SyncAttempt) {
	m.ID = a.ID
	m.ProductNo = a.ProductNo
	m.ProductName = a.ProductName
	m.TargetCategory = a.TargetCategory
	m.Outcome = string(a.Outcome)
	m.Skipped = a.Skipped
	m.ErrorMessage = a.ErrorMessage
	m.SyncedBy = a.SyncedBy
	m.CreatedAt = a.CreatedAt
}

// VisionSignalModel is the persistence model for vision analysis results.
// One row per product; re-analysis overwrites the row.
type VisionSignalModel struct {
	ProductNo   string   `gorm:"type:varchar(50);primaryKey"`
	Brand       string   `gorm:"type:varchar(200)"`
	GarmentType string   `gorm:"type:varchar(50)"`
	GarmentSub  string   `gorm:"type:varchar(100)"`
	Gender      string   `gorm:"type:varchar(20)"`
	Grade       string   `gorm:"type:varchar(10)"`
	GradeReason string   `gorm:"type:text"`
	Colors      []string `gorm:"type:text;serializer:json"`
	Pattern     string   `gorm:"type:varchar(50)"`
	Fabric      string   `gorm:"type:varchar(100)"`
	Size        string   `gorm:"type:varchar(50)"`
	Confidence  int      `gorm:"not null;default:0"`
	Status      string   `gorm:"type:varchar(20);not null;default:'pending'"`
	Error       string   `gorm:"type:text"`
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (VisionSignalModel) TableName() string {
	return "vision_signals"
}

// ToDomain converts the persistence model to a domain VisionSignal.
func (m *VisionSignalModel) ToDomain() *catalog.VisionSignal {
	return &catalog.VisionSignal{
		ProductNo:   m.ProductNo,
		Brand:       m.Brand,
		GarmentType: m.GarmentType,
		GarmentSub:  m.GarmentSub,
		Gender:      m.Gender,
		Grade:       m.Grade,
		GradeReason: m.GradeReason,
		Colors:      m.Colors,
		Pattern:     m.Pattern,
		Fabric:      m.Fabric,
		Size:        m.Size,
		Confidence:  m.Confidence,
		Status:      catalog.VisionStatus(m.Status),
		Error:       m.Error,
		UpdatedAt:   m.UpdatedAt,
	}
}

// FromDomain populates the persistence model from a domain VisionSignal.
func (m *VisionSignalModel) FromDomain(v *catalog.VisionSignal) {
	m.ProductNo = v.ProductNo
	m.Brand = v.Brand
	m.GarmentType = v.GarmentType
	m.GarmentSub = v.GarmentSub
	m.Gender = v.Gender
	m.Grade = v.Grade
	m.GradeReason = v.GradeReason
	m.Colors = v.Colors
	m.Pattern = v.Pattern
	m.Fabric = v.Fabric
	m.Size = v.Size
	m.Confidence = v.Confidence
	m.Status = string(v.Status)
	m.Error = v.Error
	m.UpdatedAt = v.UpdatedAt
}

// BrandModel is the persistence model for the manual brand override registry.
type BrandModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(200);not null;uniqueIndex"`
	LocalName string    `gorm:"type:varchar(200)"`
	Tier      string    `gorm:"type:varchar(20);not null;default:'OTHER'"`
	Aliases   []string  `gorm:"type:text;serializer:json"`
	Active    bool      `gorm:"not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brand_registry"
}

// ToDomain converts the persistence model to a registry entry.
func (m *BrandModel) ToDomain() catalog.BrandRegistryEntry {
	return catalog.BrandRegistryEntry{
		Name:      m.Name,
		LocalName: m.LocalName,
		Tier:      catalog.BrandTier(m.Tier),
		Aliases:   m.Aliases,
		Active:    m.Active,
	}
}
