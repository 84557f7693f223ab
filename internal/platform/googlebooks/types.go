package googlebooks

// VolumeList matches GET /books/v1/volumes.
type VolumeList struct {
	Kind       string   `json:"kind,omitempty"`
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items,omitempty"`
}

// Volume matches GET /books/v1/volumes/{id}. Every nested record is optional
// upstream, so pointers and omitempty are used throughout.
type Volume struct {
	ID         string      `json:"id"`
	Kind       string      `json:"kind,omitempty"`
	SelfLink   string      `json:"selfLink,omitempty"`
	VolumeInfo *VolumeInfo `json:"volumeInfo,omitempty"`
	SaleInfo   *SaleInfo   `json:"saleInfo,omitempty"`
}

type VolumeInfo struct {
	Title         string      `json:"title,omitempty"`
	Subtitle      string      `json:"subtitle,omitempty"`
	Authors       []string    `json:"authors,omitempty"`
	Publisher     string      `json:"publisher,omitempty"`
	PublishedDate string      `json:"publishedDate,omitempty"`
	Description   string      `json:"description,omitempty"`
	PageCount     *int        `json:"pageCount,omitempty"`
	Categories    []string    `json:"categories,omitempty"`
	AverageRating *float64    `json:"averageRating,omitempty"`
	RatingsCount  *int        `json:"ratingsCount,omitempty"`
	Language      string      `json:"language,omitempty"`
	ImageLinks    *ImageLinks `json:"imageLinks,omitempty"`
	PreviewLink   string      `json:"previewLink,omitempty"`
	InfoLink      string      `json:"infoLink,omitempty"`
}

type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail,omitempty"`
	Thumbnail      string `json:"thumbnail,omitempty"`
}

type SaleInfo struct {
	Country     string  `json:"country,omitempty"`
	Saleability string  `json:"saleability,omitempty"`
	IsEbook     *bool   `json:"isEbook,omitempty"`
	BuyLink     string  `json:"buyLink,omitempty"`
	ListPrice   *Price  `json:"listPrice,omitempty"`
	RetailPrice *Price  `json:"retailPrice,omitempty"`
	Offers      []Offer `json:"offers,omitempty"`
}

type Price struct {
	Amount       *float64 `json:"amount,omitempty"`
	CurrencyCode string   `json:"currencyCode,omitempty"`
}

// OfferPrice uses micros, unlike Price.
type OfferPrice struct {
	AmountInMicros *int64 `json:"amountInMicros,omitempty"`
	CurrencyCode   string `json:"currencyCode,omitempty"`
}

type Offer struct {
	FinskyOfferType *int        `json:"finskyOfferType,omitempty"`
	ListPrice       *OfferPrice `json:"listPrice,omitempty"`
	RetailPrice     *OfferPrice `json:"retailPrice,omitempty"`
}

// Info returns the volume info, or an empty record when upstream sent none.
func (v Volume) Info() VolumeInfo {
	if v.VolumeInfo == nil {
		return VolumeInfo{}
	}
	return *v.VolumeInfo
}

// Thumbnail prefers the regular thumbnail and falls back to the small one.
func (i VolumeInfo) Thumbnail() string {
	if i.ImageLinks == nil {
		return ""
	}
	if i.ImageLinks.Thumbnail != "" {
		return i.ImageLinks.Thumbnail
	}
	return i.ImageLinks.SmallThumbnail
}

// SmallThumbnail prefers the small thumbnail and falls back to the regular one.
func (i VolumeInfo) SmallThumbnail() string {
	if i.ImageLinks == nil {
		return ""
	}
	if i.ImageLinks.SmallThumbnail != "" {
		return i.ImageLinks.SmallThumbnail
	}
	return i.ImageLinks.Thumbnail
}
