// internal/records/clean.go
package records

import (
	"strings"

	"github.com/vidproxy/vidproxy/internal/normalize"
	"github.com/vidproxy/vidproxy/internal/utils"
)

// Cleaner turns loosely-typed candidates into strictly-valid
// VideoRecords, or rejects them outright. Partial video records are
// considered worse than no record: downstream consumers assume every
// field they read is trustworthy, so the gate is all-or-nothing.
type Cleaner struct {
	norm   normalize.Normalizer
	logger utils.Logger
}

// NewCleaner creates a cleaner. A nil logger disables diagnostics.
func NewCleaner(norm normalize.Normalizer, logger utils.Logger) *Cleaner {
	if logger == nil {
		logger = utils.NopLogger()
	}
	return &Cleaner{norm: norm, logger: logger}
}

// Clean validates and canonicalizes a candidate. It returns nil when the
// candidate cannot be made fully valid; the rejected field names are
// logged for observability and never surface in any response.
func (cl *Cleaner) Clean(cand Candidate) *VideoRecord {
	rawPath := strings.TrimSpace(cand.Path())
	if !strings.Contains(rawPath, "/videos/") {
		cl.logger.WithField("path", rawPath).Debug("candidate rejected: no /videos/ segment")
		return nil
	}

	rec := &VideoRecord{
		Title:        cand.String("title"),
		PagePath:     normalize.CanonicalPath(rawPath),
		ThumbnailURL: cl.norm.EscapeForCDN(cand.String("thumbURL")),
	}

	id, idOK := cand.Int("id")
	duration, durOK := cand.Int("duration")
	views, viewsOK := cand.Int("views")
	rec.ID = id
	rec.DurationSeconds = duration
	rec.ViewCount = views

	var failed []string
	if !idOK || rec.ID <= 0 {
		failed = append(failed, "id")
	}
	if rec.Title == "" {
		failed = append(failed, "title")
	}
	if !durOK || rec.DurationSeconds <= 0 {
		failed = append(failed, "durationSeconds")
	}
	if rec.PagePath == "" {
		failed = append(failed, "pagePath")
	}
	if rec.ThumbnailURL == "" {
		failed = append(failed, "thumbnailUrl")
	}
	if !viewsOK || rec.ViewCount < 0 {
		failed = append(failed, "viewCount")
	}
	if len(failed) > 0 {
		cl.logger.WithFields(map[string]interface{}{
			"path":   rawPath,
			"failed": strings.Join(failed, ","),
		}).Debug("candidate rejected: required fields invalid")
		return nil
	}

	cl.fillOptional(rec, cand)
	return rec
}

// fillOptional copies the optional attributes a strategy may have
// recovered. Absence of any of them is normal.
func (cl *Cleaner) fillOptional(rec *VideoRecord, cand Candidate) {
	if created, ok := cand.Int("created"); ok {
		rec.CreatedAt = int64(created)
	}
	rec.VideoType = cand.String("videoType")
	if rec.VideoType == "" {
		rec.VideoType = "video"
	}
	rec.PreviewThumbnailURL = cl.norm.EscapeForCDN(cand.String("previewThumbURL"))
	rec.HighResImageURL = cand.String("imageURL")
	rec.SpriteURL = cand.String("spriteURL")
	rec.TrailerURL = cand.String("trailerURL")
	rec.TrailerFallbackURL = cand.String("trailerFallbackURL")
	rec.IsCustomThumbnail = cand.Bool("isCustomPic")
	rec.IsAdminCustomThumbnail = cand.Bool("isCustomPicAdmin")
	rec.UserCountry = cand.String("userCountry")
	rec.Classes = cand.String("classes")

	if attrs := cand.Sub("attributes"); attrs != nil {
		rec.Attributes = map[string]interface{}(attrs)
	}
	if landing := cand.Sub("landing"); landing != nil {
		info := &LandingInfo{
			Type: landing.String("type"),
			Name: landing.String("name"),
			Logo: landing.String("logo"),
			Link: landing.String("link"),
		}
		if id, ok := landing.Int("id"); ok {
			info.ID = id
		}
		rec.Landing = info
	}
}
