// Package ids generates the prefixed resource ids the stores persist.
// Uniqueness is best-effort: unix-millisecond timestamp plus a short random
// base36 suffix. Collisions are possible and are handled at insert time.
package ids

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const suffixLen = 7

// New returns "<prefix>_<unix-ms>_<7 base36 chars>".
func New(prefix string) string {
	var b strings.Builder
	b.WriteString(prefix)
	b.WriteByte('_')
	b.WriteString(strconv.FormatInt(time.Now().UnixMilli(), 10))
	b.WriteByte('_')
	for i := 0; i < suffixLen; i++ {
		b.WriteByte("0123456789abcdefghijklmnopqrstuvwxyz"[rand.Intn(36)])
	}
	return b.String()
}

// Favorite returns the synthetic id for a favorited catalog item:
// the catalog id joined with the current unix-millisecond timestamp.
func Favorite(catalogID string) string {
	return catalogID + "_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
}
