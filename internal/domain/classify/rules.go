package classify

import "github.com/brownstreet/backend/internal/domain/catalog"

// Scoring weights and the acceptance floor. A brand hit is worth five keyword
// hits; anything under MinScore is not archive material.
const (
	BrandMatchWeight   = 50
	KeywordMatchWeight = 10
	MinScore           = 10
)

// CategoryRule is one scoring rule: a target category, the brands that
// strongly indicate it, and the keywords that weakly indicate it. Matching is
// uppercase substring matching, so entries must be uppercase.
type CategoryRule struct {
	Category    catalog.Category
	BrandLabel  string
	KeywordsLbl string
	Brands      []string
	Keywords    []string
}

// RuleSet is an ordered list of category rules. Order is load-bearing: ties
// are resolved in favor of the first-declared rule.
type RuleSet []CategoryRule

// DefaultRuleSet returns the production rule tables. Keyword lists carry both
// romanized and Korean spellings because product names mix scripts.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		{
			Category:    catalog.CategoryMilitary,
			BrandLabel:  "military brand",
			KeywordsLbl: "military keyword",
			Brands:      []string{"ALPHA", "ROTHCO", "PROPPER", "TRU-SPEC", "BUZZ RICKSON"},
			Keywords: []string{
				"M-65", "M65", "BDU", "MA-1", "MA1", "N-3B", "N3B", "CWU",
				"FIELD JACKET", "필드자켓", "필드 자켓",
				"MILITARY", "밀리터리", "군복", "군용", "군납",
				"CARGO", "카고", "CAMO", "카모", "CAMOUFLAGE",
				"FATIGUE", "피티그", "COMBAT", "컴뱃",
				"ARMY", "NAVY", "AIR FORCE", "USMC", "USAF",
				"ALPHA", "ROTHCO", "PROPPER", "TRU-SPEC",
			},
		},
		{
			Category:    catalog.CategoryWorkwear,
			BrandLabel:  "workwear brand",
			KeywordsLbl: "workwear keyword",
			Brands:      []string{"CARHARTT", "DICKIES", "RED KAP", "BEN DAVIS", "POINTER", "KEY"},
			Keywords: []string{
				"CHORE", "초어", "COVERALL", "커버올",
				"PAINTER", "페인터", "DUNGAREE", "던가리",
				"WORK", "워크", "WORKWEAR", "작업복",
				"DOUBLE KNEE", "더블니",
				"CARHARTT", "칼하트", "DICKIES", "딕키즈",
				"RED KAP", "REDKAP", "BEN DAVIS", "BENDAVIS",
				"POINTER", "ROUND HOUSE", "KEY",
			},
		},
		{
			Category:    catalog.CategoryOutdoor,
			BrandLabel:  "outdoor brand",
			KeywordsLbl: "outdoor keyword",
			Brands:      []string{"PATAGONIA", "THE NORTH FACE", "ARC'TERYX", "MONT-BELL", "SIERRA DESIGNS", "COLUMBIA"},
			Keywords: []string{
				"FLEECE", "플리스", "GORE-TEX", "GORETEX", "고어텍스",
				"MOUNTAIN PARKA", "마운틴파카", "ANORAK", "아노락",
				"OUTDOOR", "아웃도어", "HIKING", "하이킹", "TRAIL",
				"PATAGONIA", "파타고니아", "NORTH FACE", "노스페이스",
				"ARC'TERYX", "아크테릭스", "MONT-BELL", "몽벨", "COLUMBIA", "컬럼비아",
			},
		},
		{
			Category:    catalog.CategoryJapan,
			BrandLabel:  "japan brand",
			KeywordsLbl: "japan keyword",
			Brands: []string{
				"BEAMS", "UNITED ARROWS", "COMME DES GARCONS", "KAPITAL",
				"VISVIM", "NEIGHBORHOOD", "WTAPS", "NANAMICA",
				"ENGINEERED GARMENTS", "PORTER", "UNIQLO", "MUJI",
			},
			Keywords: []string{
				"BEAMS", "빔스", "UNITED ARROWS", "유나이티드 애로우",
				"COMME DES GARCONS", "CDG", "꼼데가르송",
				"KAPITAL", "캐피탈", "VISVIM", "비스빔",
				"NEIGHBORHOOD", "네이버후드", "WTAPS", "더블탭스",
				"NANAMICA", "나나미카", "ENGINEERED GARMENTS", "EG",
				"PORTER", "포터", "MASTER-PIECE", "마스터피스",
				"UNIQLO", "유니클로", "MUJI", "무인양품",
				"BORO", "보로", "SASHIKO", "사시코",
				"INDIGO", "인디고", "SELVEDGE", "셀비지",
			},
		},
		{
			Category:    catalog.CategoryHeritage,
			BrandLabel:  "heritage brand",
			KeywordsLbl: "heritage keyword",
			Brands: []string{
				"RALPH LAUREN", "POLO", "BROOKS BROTHERS", "J.PRESS",
				"GANT", "LACOSTE", "LL BEAN", "EDDIE BAUER",
				"PENDLETON", "WOOLRICH",
			},
			Keywords: []string{
				"HERITAGE", "헤리티지", "VINTAGE", "빈티지",
				"CLASSIC", "클래식", "TRADITIONAL", "트래디셔널",
				"IVY", "아이비", "PREPPY", "프레피",
				"OXFORD", "옥스포드", "TWEED", "트위드",
				"HARRIS TWEED", "해리스 트위드",
				"OLD LOGO", "올드로고", "ARCHIVE",
				"RALPH LAUREN", "랄프로렌", "POLO", "폴로",
				"BROOKS BROTHERS", "브룩스브라더스",
				"J.PRESS", "J PRESS", "GANT", "간트",
				"LACOSTE", "라코스테",
				"LL BEAN", "LLBEAN", "EDDIE BAUER", "에디바우어",
				"PENDLETON", "펜들턴", "WOOLRICH", "울리치",
			},
		},
		{
			Category:    catalog.CategoryBritish,
			BrandLabel:  "british brand",
			KeywordsLbl: "british keyword",
			Brands: []string{
				"BARBOUR", "BURBERRY", "AQUASCUTUM", "GLOVERALL",
				"MACKINTOSH", "FRED PERRY", "BARACUTA",
				"DR. MARTENS", "CLARKS",
			},
			Keywords: []string{
				"BARBOUR", "바버", "BURBERRY", "버버리",
				"AQUASCUTUM", "아쿠아스큐텀",
				"GLOVERALL", "글로버올", "DUFFLE", "더플",
				"MACKINTOSH", "맥킨토시",
				"FRED PERRY", "프레드페리",
				"BARACUTA", "바라쿠타", "HARRINGTON",
				"DR. MARTENS", "닥터마틴", "CLARKS", "클락스",
				"BRITISH", "브리티시", "ENGLAND", "잉글랜드",
				"LONDON", "런던", "SCOTTISH", "스코티시",
				"TARTAN", "타탄", "CHECK", "체크",
			},
		},
	}
}
