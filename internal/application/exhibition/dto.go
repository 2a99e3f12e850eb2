package exhibition

import (
	"strings"
	"time"

	"github.com/brownstreet/backend/internal/domain/catalog"
	"github.com/brownstreet/backend/internal/domain/shared"
)

// SyncRequest describes one synchronization run: which products to touch and
// which storefront placement to give them.
type SyncRequest struct {
	ProductNos []string `json:"product_nos" binding:"required,min=1"`

	// InternalCategory is one of the archive category codes. It drives both
	// the managed seller tag and, unless explicit ids are given, the
	// storefront display categories. It may be omitted when explicit ids
	// are supplied; such a run places the products without retagging them.
	InternalCategory string `json:"internal_category"`

	// DisplayCategoryIDs, when present, wins over the category's configured
	// storefront bucket.
	DisplayCategoryIDs []string `json:"display_category_ids"`

	// TagCategory optionally overrides which category's managed tag is
	// applied, for runs that tag one way but exhibit another.
	TagCategory string `json:"tag_category"`

	// SyncedBy is stamped on every audit row. Set from the authenticated
	// actor, never from the request body.
	SyncedBy string `json:"-"`
}

// syncPlan is a validated request: the parsed category, the managed tag to
// apply, and the storefront bucket ids to write. An ids-only request leaves
// category and tag empty.
type syncPlan struct {
	category           catalog.Category
	tag                string
	displayCategoryIDs []string
}

// target is the audit label for the plan: the category code, or the joined
// bucket ids when the run gave no category.
func (p syncPlan) target() string {
	if p.category != "" {
		return string(p.category)
	}
	return strings.Join(p.displayCategoryIDs, ",")
}

// resolve validates the request against the display-category table. Explicit
// display ids win over the table; an unknown category is a validation error,
// and so is a plan that resolves to no storefront bucket at all, since an
// update without displayCategoryIds would wipe the listing's placement.
func (r *SyncRequest) resolve(table catalog.DisplayCategoryTable) (syncPlan, error) {
	if len(r.ProductNos) == 0 {
		return syncPlan{}, shared.NewDomainError("INVALID_REQUEST", "at least one product number is required")
	}
	if r.InternalCategory == "" && len(r.DisplayCategoryIDs) == 0 {
		return syncPlan{}, shared.NewDomainError("INVALID_REQUEST",
			"internal category or display category ids are required")
	}

	var plan syncPlan
	if r.InternalCategory != "" {
		category, err := catalog.ParseCategory(r.InternalCategory)
		if err != nil {
			return syncPlan{}, shared.NewDomainError("INVALID_CATEGORY",
				"unknown category "+r.InternalCategory+"; allowed: "+allowedCategories())
		}
		plan.category = category
		plan.tag = category.SellerTag()
	}

	if r.TagCategory != "" {
		tagCategory, err := catalog.ParseCategory(r.TagCategory)
		if err != nil {
			return syncPlan{}, shared.NewDomainError("INVALID_CATEGORY",
				"unknown tag category "+r.TagCategory+"; allowed: "+allowedCategories())
		}
		plan.tag = tagCategory.SellerTag()
	}

	if len(r.DisplayCategoryIDs) > 0 {
		plan.displayCategoryIDs = r.DisplayCategoryIDs
	} else if id, ok := table.Resolve(plan.category); ok {
		plan.displayCategoryIDs = []string{id}
	}
	if len(plan.displayCategoryIDs) == 0 {
		return syncPlan{}, shared.NewDomainError("INVALID_REQUEST",
			"category "+r.InternalCategory+" has no configured display category")
	}

	return plan, nil
}

// SyncLogResponse is the API view of one audit row.
type SyncLogResponse struct {
	ID             string    `json:"id"`
	ProductNo      string    `json:"product_no"`
	ProductName    string    `json:"product_name,omitempty"`
	TargetCategory string    `json:"target_category"`
	Outcome        string    `json:"outcome"`
	Skipped        bool      `json:"skipped"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	SyncedBy       string    `json:"synced_by,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// SyncLogPage is one page of the audit trail.
type SyncLogPage struct {
	Items    []SyncLogResponse `json:"items"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// ToSyncLogPage converts a page of audit rows to the API view.
func ToSyncLogPage(attempts []catalog.SyncAttempt, total int64, page, pageSize int) *SyncLogPage {
	items := make([]SyncLogResponse, len(attempts))
	for i, a := range attempts {
		items[i] = SyncLogResponse{
			ID:             a.ID.String(),
			ProductNo:      a.ProductNo,
			ProductName:    a.ProductName,
			TargetCategory: a.TargetCategory,
			Outcome:        string(a.Outcome),
			Skipped:        a.Skipped,
			ErrorMessage:   a.ErrorMessage,
			SyncedBy:       a.SyncedBy,
			CreatedAt:      a.CreatedAt,
		}
	}
	return &SyncLogPage{Items: items, Total: total, Page: page, PageSize: pageSize}
}

func allowedCategories() string {
	all := catalog.AllCategories()
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
