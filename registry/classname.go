package registry

import (
	"encoding/binary"
	"encoding/hex"
	"hash/fnv"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"go.uber.org/zap"
)

// DefaultPrefix starts every generated class name.
const DefaultPrefix = "sk"

type idSource func() uuid.UUID

func newUUID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}

// normalizePrefix makes prefix usable as the start of a CSS identifier.
func normalizePrefix(prefix string) string {
	p := slug.Make(prefix)
	if p == "" || p[0] < 'a' || p[0] > 'z' {
		return DefaultPrefix
	}
	return p
}

// token derives class suffix from id. Salt 0 is the short primary token,
// every other salt produces a longer secondary token.
func token(id uuid.UUID, salt uint32) string {
	h := fnv.New64a()
	h.Write(id[:])
	if salt == 0 {
		return hex.EncodeToString(h.Sum(nil))[:10]
	}
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], salt)
	h.Write(b[:])
	return hex.EncodeToString(h.Sum(nil))
}

// reserve stores a single reference entry under a newly generated name. A
// name already present in the map, live or dead, is never reused.
func (r *Registry) reserve() string {
	id := r.newID()
	for salt := uint32(0); ; salt++ {
		name := r.prefix + "-" + token(id, salt)
		fresh := &entry{}
		fresh.refs.Store(1)
		if _, taken := r.entries.LoadOrStore(name, fresh); !taken {
			r.log.Debug("Acquired class", zap.String("class", name), zap.Int64("refs", 1))
			return name
		}
		r.log.Debug("Generated class name is taken, escalating", zap.String("class", name), zap.Uint32("salt", salt))
	}
}
