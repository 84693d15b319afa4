package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/draftforge/draftforge-api/internal/domain"
)

// Fingerprint hashes the semantically relevant fields of a request into
// a stable cache key. Volatile fields — the provider overrides — are
// excluded on purpose: the same article request served by a different
// provider is still the same article request.
func Fingerprint(req *domain.GenerationRequest) string {
	var b strings.Builder
	b.WriteString(strings.ToLower(req.FocusKeyword))
	b.WriteString("|")
	b.WriteString(strings.ToLower(strings.Join(req.RelatedKeywords, ",")))
	b.WriteString("|")
	b.WriteString(string(req.SearchIntent))
	b.WriteString("|")
	b.WriteString(string(req.ContentType))
	b.WriteString("|")
	b.WriteString(req.Locale.Code)
	b.WriteString("|")
	fmt.Fprintf(&b, "%d-%d", req.WordCountMin, req.WordCountMax)
	b.WriteString("|")
	b.WriteString(req.Author.Name)

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
