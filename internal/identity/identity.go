package identity

import (
	"strconv"
	"strings"

	"github.com/mauv0809/commander-league/internal/record"
)

// Resolve extracts the identity of rec. A numeric id (or numeric-looking
// string) is preferred and a trimmed name is kept alongside it. The second
// return value is false when neither is present.
func Resolve(rec record.Record, kind Kind) (Identity, bool) {
	var id Identity
	if rec == nil {
		return id, false
	}
	if n, ok := rec.Number(kind.IDKeys); ok {
		id.ID = n
		id.HasID = true
	}
	if name, ok := rec.Text(kind.NameKeys); ok {
		if _, numeric := record.ToNumber(name); !numeric || !id.HasID {
			id.Name = name
		}
	}
	// A bare numeric string under a name key is an id, not a display name.
	if !id.HasID && id.Name != "" {
		if n, ok := record.ToNumber(id.Name); ok {
			id = Identity{ID: n, HasID: true}
		}
	}
	return id, id.Valid()
}

// FromName builds a name-only identity.
func FromName(name string) Identity {
	return Identity{Name: strings.TrimSpace(name)}
}

// FromID builds an id-only identity.
func FromID(id int64) Identity {
	return Identity{ID: id, HasID: true}
}

// Valid reports whether the identity can be associated with anything.
func (i Identity) Valid() bool {
	return i.HasID || Normalize(i.Name) != ""
}

// Key is the internal join key: "id:<n>" when an id is known, otherwise
// "name:<normalized>". It is never persisted.
func (i Identity) Key() string {
	if i.HasID {
		return "id:" + strconv.FormatInt(i.ID, 10)
	}
	return i.NameKey()
}

// NameKey is the name-based key regardless of whether an id is known. Empty
// when there is no name.
func (i Identity) NameKey() string {
	n := Normalize(i.Name)
	if n == "" {
		return ""
	}
	return "name:" + n
}

// Same reports whether two identities refer to the same entity: ids are
// compared when both sides have one, names otherwise.
func (i Identity) Same(o Identity) bool {
	if i.HasID && o.HasID {
		return i.ID == o.ID
	}
	n := Normalize(i.Name)
	return n != "" && n == Normalize(o.Name)
}

func (i Identity) String() string {
	if i.Name != "" {
		return i.Name
	}
	return i.Key()
}

// Normalize trims and case-folds a name for comparisons.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
