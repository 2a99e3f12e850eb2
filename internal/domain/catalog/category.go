package catalog

import (
	"strings"

	"github.com/brownstreet/backend/internal/domain/shared"
)

// Category is the closed set of internal merchandising categories. The
// historical code keyed these by free-form display strings ("MILITARY" in one
// module, "MILITARY ARCHIVE" in another); the enum plus the canonical mapping
// tables below are the single source of truth.
type Category string

const (
	// CategoryNew holds freshly registered items
	CategoryNew Category = "NEW"
	// CategoryCurated holds items promoted to the curated storefront section
	CategoryCurated Category = "CURATED"
	// CategoryMilitary groups military surplus and milspec reproductions
	CategoryMilitary Category = "MILITARY_ARCHIVE"
	// CategoryWorkwear groups work and labor garments
	CategoryWorkwear Category = "WORKWEAR_ARCHIVE"
	// CategoryOutdoor groups outdoor and technical apparel
	CategoryOutdoor Category = "OUTDOOR_ARCHIVE"
	// CategoryJapan groups Japanese brands and Americana
	CategoryJapan Category = "JAPANESE_ARCHIVE"
	// CategoryHeritage groups continental heritage labels
	CategoryHeritage Category = "HERITAGE_EUROPE"
	// CategoryBritish groups British brands and styles
	CategoryBritish Category = "BRITISH_ARCHIVE"
	// CategoryUnisex groups gender-neutral archive items
	CategoryUnisex Category = "UNISEX_ARCHIVE"
	// CategoryArchive is the archive root bucket
	CategoryArchive Category = "ARCHIVE"
	// CategoryClearance holds items past their merchandising window
	CategoryClearance Category = "CLEARANCE"
)

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryNew, CategoryCurated,
		CategoryMilitary, CategoryWorkwear, CategoryOutdoor,
		CategoryJapan, CategoryHeritage, CategoryBritish, CategoryUnisex,
		CategoryArchive, CategoryClearance,
	}
}

// IsValid returns true if the category is a member of the closed set.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNew, CategoryCurated, CategoryMilitary, CategoryWorkwear,
		CategoryOutdoor, CategoryJapan, CategoryHeritage, CategoryBritish,
		CategoryUnisex, CategoryArchive, CategoryClearance:
		return true
	default:
		return false
	}
}

// String returns the canonical code of the category.
func (c Category) String() string {
	return string(c)
}

// DisplayLabel returns the human-readable storefront label.
func (c Category) DisplayLabel() string {
	switch c {
	case CategoryNew:
		return "NEW"
	case CategoryCurated:
		return "CURATED"
	case CategoryMilitary:
		return "MILITARY ARCHIVE"
	case CategoryWorkwear:
		return "WORKWEAR ARCHIVE"
	case CategoryOutdoor:
		return "OUTDOOR ARCHIVE"
	case CategoryJapan:
		return "JAPANESE ARCHIVE"
	case CategoryHeritage:
		return "HERITAGE EUROPE"
	case CategoryBritish:
		return "BRITISH ARCHIVE"
	case CategoryUnisex:
		return "UNISEX ARCHIVE"
	case CategoryArchive:
		return "ARCHIVE"
	case CategoryClearance:
		return "CLEARANCE"
	default:
		return string(c)
	}
}

// SellerTag returns the managed seller tag attached to listings in this
// category. All managed tags carry the reserved ManagedTagPrefix so they can
// be stripped and replaced on re-sync.
func (c Category) SellerTag() string {
	switch c {
	case CategoryNew:
		return "BS뉴"
	case CategoryCurated:
		return "BS큐레이티드"
	case CategoryMilitary:
		return "BS밀리터리"
	case CategoryWorkwear:
		return "BS워크웨어"
	case CategoryOutdoor:
		return "BS아웃도어"
	case CategoryJapan:
		return "BS재팬"
	case CategoryHeritage:
		return "BS유로빈티지"
	case CategoryBritish:
		return "BS브리티시"
	case CategoryUnisex:
		return "BS유니섹스"
	case CategoryArchive:
		return "BS아카이브"
	case CategoryClearance:
		return "BS클리어런스"
	default:
		return ""
	}
}

// ParseCategory maps a category name to its enum value. It accepts both the
// canonical codes and the legacy display-string spellings that predate the
// enum ("MILITARY ARCHIVE", "HERITAGE EUROPE", ...).
func ParseCategory(s string) (Category, error) {
	normalized := Category(strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(s)), " ", "_"))
	switch normalized {
	case "MILITARY":
		normalized = CategoryMilitary
	case "WORKWEAR":
		normalized = CategoryWorkwear
	case "OUTDOOR":
		normalized = CategoryOutdoor
	case "JAPAN", "JAPANESE":
		normalized = CategoryJapan
	case "HERITAGE", "EUROPE":
		normalized = CategoryHeritage
	case "BRITISH":
		normalized = CategoryBritish
	case "UNISEX":
		normalized = CategoryUnisex
	case "CLEARANCE_KEEP", "CLEARANCE_DISPOSE":
		normalized = CategoryClearance
	}
	if !normalized.IsValid() {
		return "", shared.NewDomainError("INVALID_CATEGORY", "unknown category: "+s)
	}
	return normalized, nil
}

// DisplayCategoryTable maps internal categories to the external platform's
// storefront navigation bucket ids. The ids are environment-specific and come
// from configuration; the zero value simply resolves nothing.
type DisplayCategoryTable map[Category]string

// Resolve returns the display-category id for a category, or false when the
// category has no storefront bucket configured.
func (t DisplayCategoryTable) Resolve(c Category) (string, bool) {
	id, ok := t[c]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
