// Package id provides prefixed ULID generation for gateway entities.
//
// ULIDs are lexicographically sortable, so listings come back in creation
// order without a separate timestamp, and the type prefix keeps logs
// readable (emb_*).
package id

import (
	"crypto/rand"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// EmbedID identifies an embed instance.
type EmbedID string

const embedPrefix = "emb"

var entropyPool = sync.Pool{
	New: func() interface{} {
		return ulid.Monotonic(rand.Reader, 0)
	},
}

func newULID() string {
	entropy := entropyPool.Get().(io.Reader)
	defer entropyPool.Put(entropy)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}

// NewEmbedID generates a new embed instance ID.
func NewEmbedID() EmbedID {
	return EmbedID(fmt.Sprintf("%s_%s", embedPrefix, newULID()))
}

func (i EmbedID) String() string { return string(i) }
