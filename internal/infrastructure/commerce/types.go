package commerce

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// BearerCredential is the token endpoint's response
type BearerCredential struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ChannelProductDetail is the typed read view of one upstream listing
type ChannelProductDetail struct {
	OriginProduct  OriginProduct  `json:"originProduct"`
	ChannelProduct ChannelProduct `json:"channelProduct"`
}

// OriginProduct holds the seller-managed portion of a listing
type OriginProduct struct {
	StatusType      string          `json:"statusType,omitempty"`
	Name            string          `json:"name"`
	SalePrice       decimal.Decimal `json:"salePrice"`
	DetailAttribute DetailAttribute `json:"detailAttribute"`
}

// DetailAttribute nests the searchable and SEO metadata of a listing
type DetailAttribute struct {
	SearchInfo SearchInfo `json:"searchInfo"`
	SeoInfo    SeoInfo    `json:"seoInfo"`
}

// SearchInfo carries the brand identity fields
type SearchInfo struct {
	BrandName    string `json:"brandName,omitempty"`
	Manufacturer string `json:"manufacturerName,omitempty"`
	ModelName    string `json:"modelName,omitempty"`
}

// SeoInfo carries the storefront search metadata, including seller tags
type SeoInfo struct {
	PageTitle       string      `json:"pageTitle,omitempty"`
	MetaDescription string      `json:"metaDescription,omitempty"`
	SellerTags      []SellerTag `json:"sellerTags,omitempty"`
}

// SellerTag is one storefront tag
type SellerTag struct {
	Code string `json:"code,omitempty"`
	Text string `json:"text"`
}

// ChannelProduct holds the storefront-channel portion of a listing.
// DisplayCategoryIDs is write-only upstream: reads never return it, and
// writes must always resend the full intended set.
type ChannelProduct struct {
	ChannelProductNo   int64    `json:"channelProductNo,omitempty"`
	RegDate            string   `json:"regDate,omitempty"`
	DisplayStatusType  string   `json:"displayStatusType,omitempty"`
	DisplayCategoryIDs []string `json:"displayCategoryIds,omitempty"`
}

// ProductEnvelope pairs the typed detail view with the verbatim upstream
// document. The update endpoint replaces the whole record, so writes patch
// the original document in place instead of re-serializing the typed view,
// which would silently drop every field the view does not model.
type ProductEnvelope struct {
	Detail ChannelProductDetail
	doc    map[string]any
}

func newProductEnvelope(body []byte) (*ProductEnvelope, error) {
	env := &ProductEnvelope{}
	if err := json.Unmarshal(body, &env.Detail); err != nil {
		return nil, fmt.Errorf("commerce: decode product detail: %w", err)
	}
	if err := json.Unmarshal(body, &env.doc); err != nil {
		return nil, fmt.Errorf("commerce: decode product document: %w", err)
	}
	return env, nil
}

// SellerTagTexts returns the current tag texts in listing order.
func (e *ProductEnvelope) SellerTagTexts() []string {
	tags := e.Detail.OriginProduct.DetailAttribute.SeoInfo.SellerTags
	if len(tags) == 0 {
		return nil
	}
	texts := make([]string, 0, len(tags))
	for _, t := range tags {
		texts = append(texts, t.Text)
	}
	return texts
}

// SetSellerTags replaces originProduct.detailAttribute.seoInfo.sellerTags in
// both the typed view and the raw document.
func (e *ProductEnvelope) SetSellerTags(texts []string) {
	tags := make([]SellerTag, 0, len(texts))
	rawTags := make([]any, 0, len(texts))
	for _, text := range texts {
		tags = append(tags, SellerTag{Text: text})
		rawTags = append(rawTags, map[string]any{"text": text})
	}
	e.Detail.OriginProduct.DetailAttribute.SeoInfo.SellerTags = tags
	seo := e.childMap("originProduct", "detailAttribute", "seoInfo")
	seo["sellerTags"] = rawTags
}

// SetDisplayCategoryIDs sets channelProduct.displayCategoryIds. The field is
// write-only upstream, so it is always absent from the fetched document and
// must be injected before every update.
func (e *ProductEnvelope) SetDisplayCategoryIDs(ids []string) {
	e.Detail.ChannelProduct.DisplayCategoryIDs = ids
	rawIDs := make([]any, 0, len(ids))
	for _, id := range ids {
		rawIDs = append(rawIDs, id)
	}
	channel := e.childMap("channelProduct")
	channel["displayCategoryIds"] = rawIDs
}

// Payload returns the full document to send on update.
func (e *ProductEnvelope) Payload() map[string]any {
	return e.doc
}

// childMap walks the raw document, creating intermediate objects as needed.
func (e *ProductEnvelope) childMap(path ...string) map[string]any {
	if e.doc == nil {
		e.doc = make(map[string]any)
	}
	node := e.doc
	for _, key := range path {
		child, ok := node[key].(map[string]any)
		if !ok {
			child = make(map[string]any)
			node[key] = child
		}
		node = child
	}
	return node
}
