// Package api re-exports the proxy's public response types so library
// consumers do not import internal packages directly.
package api

import (
	"github.com/vidproxy/vidproxy/internal/records"
	"github.com/vidproxy/vidproxy/internal/service"
)

// Record types.
type VideoRecord = records.VideoRecord
type DetailRecord = records.DetailRecord
type LandingInfo = records.LandingInfo
type AuthorInfo = records.AuthorInfo
type PageMetadata = records.PageMetadata
type PaginationInfo = records.PaginationInfo
type Stats = records.Stats

// Operation payloads.
type SearchResult = service.SearchResult
type DetailsResult = service.DetailsResult
