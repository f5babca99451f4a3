package sources

import (
	"net/url"
	"strings"
)

// ExtractVideoID pulls the video ID out of the accepted YouTube URL shapes:
// youtu.be short links, watch?v=, /shorts/<id>, and /embed/<id>.
// Malformed input is never an error — it just reports not found.
func ExtractVideoID(raw string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", false
	}
	host := strings.ToLower(u.Hostname())

	if strings.Contains(host, "youtu.be") {
		id := firstPathSegment(u.Path)
		return id, id != ""
	}

	if strings.Contains(host, "youtube.com") {
		if v := u.Query().Get("v"); v != "" {
			return v, true
		}
		if id := segmentAfter(u.Path, "/shorts/"); id != "" {
			return id, true
		}
		if id := segmentAfter(u.Path, "/embed/"); id != "" {
			return id, true
		}
	}

	return "", false
}

func firstPathSegment(path string) string {
	for _, seg := range strings.Split(strings.Trim(path, "/"), "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}

// segmentAfter returns the path segment directly following marker, or "".
func segmentAfter(path, marker string) string {
	idx := strings.Index(path, marker)
	if idx < 0 {
		return ""
	}
	rest := path[idx+len(marker):]
	if slash := strings.IndexByte(rest, '/'); slash >= 0 {
		rest = rest[:slash]
	}
	return rest
}
