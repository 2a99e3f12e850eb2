package classify

import (
	"time"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/classify"
)

// AnalyzeProductRequest asks the vision collaborator to analyze one product.
type AnalyzeProductRequest struct {
	ProductNo   string   `json:"product_no" binding:"required"`
	ProductName string   `json:"product_name"`
	ImageURLs   []string `json:"image_urls" binding:"required,min=1"`
}

// ManualSignalRequest records an operator-entered classification for one
// product, overriding whatever the analyzer produced.
type ManualSignalRequest struct {
	ProductNo   string   `json:"product_no" binding:"required"`
	Brand       string   `json:"brand"`
	GarmentType string   `json:"garment_type"`
	GarmentSub  string   `json:"garment_sub"`
	Gender      string   `json:"gender"`
	Grade       string   `json:"grade"`
	GradeReason string   `json:"grade_reason"`
	Colors      []string `json:"colors"`
	Pattern     string   `json:"pattern"`
	Fabric      string   `json:"fabric"`
	Size        string   `json:"size"`
	Confidence  int      `json:"confidence" binding:"min=0,max=100"`
}

// VisionSignalResponse is the API view of a stored vision signal.
type VisionSignalResponse struct {
	ProductNo   string    `json:"product_no"`
	Brand       string    `json:"brand,omitempty"`
	GarmentType string    `json:"garment_type,omitempty"`
	GarmentSub  string    `json:"garment_sub,omitempty"`
	Gender      string    `json:"gender,omitempty"`
	Grade       string    `json:"grade,omitempty"`
	GradeReason string    `json:"grade_reason,omitempty"`
	Colors      []string  `json:"colors,omitempty"`
	Pattern     string    `json:"pattern,omitempty"`
	Fabric      string    `json:"fabric,omitempty"`
	Size        string    `json:"size,omitempty"`
	Confidence  int       `json:"confidence"`
	Status      string    `json:"status"`
	Error       string    `json:"error,omitempty"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ClassificationResponse is the reconciled classification for one item.
type ClassificationResponse struct {
	ProductNo     string     `json:"product_no"`
	Category      *string    `json:"category"`
	CategoryLabel string     `json:"category_label,omitempty"`
	Brand         string     `json:"brand,omitempty"`
	BrandTier     string     `json:"brand_tier"`
	GarmentType   string     `json:"garment_type,omitempty"`
	GarmentSub    string     `json:"garment_sub,omitempty"`
	Grade         string     `json:"grade,omitempty"`
	Colors        []string   `json:"colors,omitempty"`
	Pattern       string     `json:"pattern,omitempty"`
	Fabric        string     `json:"fabric,omitempty"`
	Size          string     `json:"size,omitempty"`
	Confidence    int        `json:"confidence"`
	Reason        string     `json:"reason,omitempty"`
	Stage         string     `json:"stage"`
	ClassifiedAt  *time.Time `json:"classified_at"`
}

// BatchClassifyResponse summarizes one classification sweep.
type BatchClassifyResponse struct {
	Processed int `json:"processed"`
	Matched   int `json:"matched"`
	Unmatched int `json:"unmatched"`
	Failed    int `json:"failed"`
}

// BatchAnalyzeRequest submits multiple products for vision analysis.
type BatchAnalyzeRequest struct {
	Products []AnalyzeProductRequest `json:"products" binding:"required,min=1,dive"`
}

// BatchAnalyzeResponse summarizes one analysis batch.
type BatchAnalyzeResponse struct {
	Submitted int `json:"submitted"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// ToVisionSignalResponse converts a domain vision signal to its API view.
func ToVisionSignalResponse(v *catalog.VisionSignal) *VisionSignalResponse {
	return &VisionSignalResponse{
		ProductNo:   v.ProductNo,
		Brand:       v.Brand,
		GarmentType: v.GarmentType,
		GarmentSub:  v.GarmentSub,
		Gender:      v.Gender,
		Grade:       v.Grade,
		GradeReason: v.GradeReason,
		Colors:      v.Colors,
		Pattern:     v.Pattern,
		Fabric:      v.Fabric,
		Size:        v.Size,
		Confidence:  v.Confidence,
		Status:      string(v.Status),
		Error:       v.Error,
		UpdatedAt:   v.UpdatedAt,
	}
}

// ToClassificationResponse converts a classified item and its merged verdict
// to the API view.
func ToClassificationResponse(item *catalog.Item, merged classify.Merged) *ClassificationResponse {
	resp := &ClassificationResponse{
		ProductNo:    item.ProductNo,
		Brand:        merged.Brand,
		BrandTier:    string(merged.BrandTier),
		GarmentType:  merged.GarmentType,
		GarmentSub:   merged.GarmentSub,
		Grade:        merged.Grade,
		Colors:       merged.Colors,
		Pattern:      merged.Pattern,
		Fabric:       merged.Fabric,
		Size:         merged.Size,
		Confidence:   merged.Confidence,
		Reason:       merged.Reason,
		Stage:        string(item.Stage),
		ClassifiedAt: item.ClassifiedAt,
	}
	if merged.Category != nil {
		c := string(*merged.Category)
		resp.Category = &c
		resp.CategoryLabel = merged.Category.DisplayLabel()
	}
	return resp
}
