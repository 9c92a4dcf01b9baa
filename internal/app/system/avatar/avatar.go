// Package avatar derives Gravatar URLs for user avatars. The URL is computed
// once at registration and stored on the user document; posts snapshot it at
// creation time.
package avatar

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://www.gravatar.com/avatar/"

// URL returns the Gravatar URL for email: 200px, PG-rated, with the
// "mystery person" fallback for addresses without a Gravatar account.
func URL(baseURL, email string) string {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	sum := md5.Sum([]byte(strings.ToLower(strings.TrimSpace(email))))
	return baseURL + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
