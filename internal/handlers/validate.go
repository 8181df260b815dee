// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"carouselpress/internal/models"
)

// Validation limits for request fields.
const (
	maxTextLen      = 100_000
	maxURLLen       = 2_048
	maxReviewSlides = 10
	maxSlideTitle   = 200
	maxSlideSub     = 120
	maxSlideBody    = 2_000
	maxBullets      = 8
	maxStats        = 4
	maxStatLen      = 60
	maxHandleLen    = 60
	maxBrandLen     = 80
	maxFontLen      = 60
)

// validateSource checks the text or URL a carousel is planned from and
// returns the first error found.
func validateSource(text, rawURL string) string {
	text = strings.TrimSpace(text)
	rawURL = strings.TrimSpace(rawURL)
	if text == "" && rawURL == "" {
		return "Either text or url is required."
	}
	if utf8.RuneCountInString(text) > maxTextLen {
		return "Text is too long (max 100,000 characters)."
	}
	if len(rawURL) > maxURLLen {
		return "URL is too long (max 2,048 characters)."
	}
	return ""
}

// validateSlides checks reviewed slides before they replace a plan.
func validateSlides(slides []models.Slide) string {
	if len(slides) == 0 {
		return "At least one slide is required."
	}
	if len(slides) > maxReviewSlides {
		return fmt.Sprintf("Too many slides (max %d).", maxReviewSlides)
	}
	for i, s := range slides {
		n := i + 1
		if utf8.RuneCountInString(s.Title) > maxSlideTitle {
			return fmt.Sprintf("Slide %d: title is too long (max %d characters).", n, maxSlideTitle)
		}
		if utf8.RuneCountInString(s.Subtitle) > maxSlideSub {
			return fmt.Sprintf("Slide %d: subtitle is too long (max %d characters).", n, maxSlideSub)
		}
		if utf8.RuneCountInString(s.Body.PlainText()) > maxSlideBody {
			return fmt.Sprintf("Slide %d: body is too long (max %d characters).", n, maxSlideBody)
		}
		if len(s.Body.Bullets()) > maxBullets {
			return fmt.Sprintf("Slide %d: too many bullets (max %d).", n, maxBullets)
		}
		if len(s.Stats) > maxStats {
			return fmt.Sprintf("Slide %d: too many stats (max %d).", n, maxStats)
		}
		for _, st := range s.Stats {
			if utf8.RuneCountInString(st.Value) > maxStatLen || utf8.RuneCountInString(st.Label) > maxStatLen {
				return fmt.Sprintf("Slide %d: stat is too long (max %d characters).", n, maxStatLen)
			}
		}
		if s.Layout != "" && !s.Layout.Valid() {
			return fmt.Sprintf("Slide %d: unknown layout %q.", n, s.Layout)
		}
	}
	return ""
}

// validateStyle checks user-facing style fields. Asset paths are checked
// against assetDir but returned unresolved; see resolveStyle.
func validateStyle(s models.StyleConfig, assetDir string) string {
	if _, err := s.Normalized(); err != nil {
		return "Invalid color: " + err.Error() + "."
	}
	if utf8.RuneCountInString(s.AuthorHandle) > maxHandleLen {
		return fmt.Sprintf("Author handle is too long (max %d characters).", maxHandleLen)
	}
	if utf8.RuneCountInString(s.BrandName) > maxBrandLen {
		return fmt.Sprintf("Brand name is too long (max %d characters).", maxBrandLen)
	}
	if utf8.RuneCountInString(s.FontFamily) > maxFontLen {
		return fmt.Sprintf("Font family is too long (max %d characters).", maxFontLen)
	}
	if s.LinkURL != "" {
		if len(s.LinkURL) > maxURLLen {
			return "Link URL is too long (max 2,048 characters)."
		}
		u, err := url.Parse(s.LinkURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return "Link URL must be an absolute http or https URL."
		}
	}
	if _, err := resolveAsset(assetDir, s.LogoPath); err != nil {
		return "Logo: " + err.Error() + "."
	}
	if _, err := resolveAsset(assetDir, s.BackgroundPath); err != nil {
		return "Background: " + err.Error() + "."
	}
	return ""
}

// resolveStyle returns a copy of s with asset names joined to assetDir.
// The style must have passed validateStyle.
func resolveStyle(s models.StyleConfig, assetDir string) (models.StyleConfig, error) {
	var err error
	if s.LogoPath, err = resolveAsset(assetDir, s.LogoPath); err != nil {
		return s, err
	}
	if s.BackgroundPath, err = resolveAsset(assetDir, s.BackgroundPath); err != nil {
		return s, err
	}
	return s, nil
}

// resolveAsset maps a request-supplied asset name to a file inside dir.
// Names must be local relative paths; absolute paths and ".." escapes are
// rejected.
func resolveAsset(dir, name string) (string, error) {
	if name == "" {
		return "", nil
	}
	if dir == "" {
		return "", fmt.Errorf("file assets are not enabled")
	}
	if !filepath.IsLocal(name) {
		return "", fmt.Errorf("%q is not a local asset name", name)
	}
	return filepath.Join(dir, name), nil
}
