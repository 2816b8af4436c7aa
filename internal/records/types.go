// Package records defines the canonical record types produced by the
// extraction pipeline, the loosely-typed candidates that precede them,
// and the cleaning/deduplication steps between the two.
package records

// VideoRecord is the canonical, fully-validated unit of output. A
// VideoRecord either satisfies all six required-field predicates (id,
// title, durationSeconds, pagePath, thumbnailUrl, viewCount) or it is
// never constructed; Cleaner.Clean enforces this at build time.
type VideoRecord struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	PagePath        string `json:"pagePath"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	ViewCount       int    `json:"viewCount"`

	CreatedAt              int64                  `json:"createdAt,omitempty"`
	VideoType              string                 `json:"videoType,omitempty"`
	PreviewThumbnailURL    string                 `json:"previewThumbnailUrl,omitempty"`
	HighResImageURL        string                 `json:"highResImageUrl,omitempty"`
	SpriteURL              string                 `json:"spriteUrl,omitempty"`
	TrailerURL             string                 `json:"trailerUrl,omitempty"`
	TrailerFallbackURL     string                 `json:"trailerFallbackUrl,omitempty"`
	Landing                *LandingInfo           `json:"landingInfo,omitempty"`
	IsCustomThumbnail      bool                   `json:"isCustomThumbnail,omitempty"`
	IsAdminCustomThumbnail bool                   `json:"isAdminCustomThumbnail,omitempty"`
	UserCountry            string                 `json:"userCountry,omitempty"`
	Attributes             map[string]interface{} `json:"attributes,omitempty"`
	Classes                string                 `json:"classes,omitempty"`
}

// LandingInfo identifies the channel or sponsor a thumbnail links out to.
type LandingInfo struct {
	Type string `json:"type,omitempty"`
	ID   int    `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Logo string `json:"logo,omitempty"`
	Link string `json:"link,omitempty"`
}

// DetailRecord describes a single video's detail page. Unlike VideoRecord
// it is built leniently: a detail page always corresponds to one real
// video, so missing fields are filled with defaults instead of causing
// rejection.
type DetailRecord struct {
	ID              int    `json:"id"`
	Title           string `json:"title"`
	DurationSeconds int    `json:"durationSeconds"`
	PagePath        string `json:"pagePath"`
	ThumbnailURL    string `json:"thumbnailUrl"`
	ViewCount       int    `json:"viewCount"`

	Description  string  `json:"description,omitempty"`
	RatingValue  float64 `json:"ratingValue"`
	CommentCount int     `json:"commentCount"`
	CreatedAt    int64   `json:"createdAt"`

	IsVR  bool `json:"isVR"`
	IsHD  bool `json:"isHD"`
	IsFHD bool `json:"isFHD"`
	IsUHD bool `json:"isUHD"`

	Author *AuthorInfo `json:"author,omitempty"`
}

// AuthorInfo describes the uploader shown on a detail page.
type AuthorInfo struct {
	ID       int    `json:"id,omitempty"`
	Name     string `json:"name,omitempty"`
	PagePath string `json:"pagePath,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

// PageMetadata holds Open-Graph/Twitter-card strings. All fields are
// optional; extraction never fails on their absence.
type PageMetadata struct {
	Title              string `json:"title,omitempty"`
	Description        string `json:"description,omitempty"`
	Image              string `json:"image,omitempty"`
	URL                string `json:"url,omitempty"`
	Type               string `json:"type,omitempty"`
	SiteName           string `json:"siteName,omitempty"`
	TwitterCard        string `json:"twitterCard,omitempty"`
	TwitterTitle       string `json:"twitterTitle,omitempty"`
	TwitterDescription string `json:"twitterDescription,omitempty"`
	TwitterImage       string `json:"twitterImage,omitempty"`
}

// PaginationInfo reports the pager state read from a results page.
type PaginationInfo struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	HasNext     bool `json:"hasNext"`
	HasPrevious bool `json:"hasPrevious"`
}

// DefaultPagination is the documented fallback when pager extraction
// fails for any reason.
func DefaultPagination() PaginationInfo {
	return PaginationInfo{CurrentPage: 1, TotalPages: 1}
}

// Stats reports exact per-stage counts for a response. The identities
// Found == Unique + DuplicatesRemoved and Unique == Complete + FilteredOut
// always hold.
type Stats struct {
	Found             int `json:"found"`
	DuplicatesRemoved int `json:"duplicatesRemoved"`
	Unique            int `json:"unique"`
	FilteredOut       int `json:"filteredOut"`
	Complete          int `json:"complete"`
}
