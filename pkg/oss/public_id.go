package oss

import (
	"net/url"
	"path"
	"regexp"
	"strings"
)

const uploadMarker = "upload"

var versionSegment = regexp.MustCompile(`^v\d+$`)

// ExtractContentID derives the content identifier from a stored media URL:
//
//	https://cdn.example.com/video/upload/v1712/folder/clip.mp4 -> folder/clip
//
// It returns false when the URL has no upload marker or nothing after it.
func ExtractContentID(rawURL string) (string, bool) {
	if rawURL == "" {
		return "", false
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	parts := strings.Split(u.Path, "/")
	idx := -1
	for i, p := range parts {
		if p == uploadMarker {
			idx = i
			break
		}
	}
	if idx < 0 {
		return "", false
	}
	rest := parts[idx+1:]
	if len(rest) > 0 && versionSegment.MatchString(rest[0]) {
		rest = rest[1:]
	}
	segments := make([]string, 0, len(rest))
	for _, p := range rest {
		if p != "" {
			segments = append(segments, p)
		}
	}
	if len(segments) == 0 {
		return "", false
	}
	last := segments[len(segments)-1]
	last = strings.TrimSuffix(last, path.Ext(last))
	if last == "" {
		return "", false
	}
	segments[len(segments)-1] = last
	return strings.Join(segments, "/"), true
}

// SplitObjectPath turns the part of a media URL after the upload marker into the
// object key, dropping the version segment: v1712/folder/clip.mp4 -> folder/clip.mp4
func SplitObjectPath(p string) (string, bool) {
	p = strings.Trim(p, "/")
	parts := strings.Split(p, "/")
	if len(parts) > 0 && versionSegment.MatchString(parts[0]) {
		parts = parts[1:]
	}
	for _, s := range parts {
		if s == "" || s == "." || s == ".." {
			return "", false
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, "/"), true
}
