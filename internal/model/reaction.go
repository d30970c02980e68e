package model

import (
	"bytes"
	"slices"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
)

// ReactionKind is stored as its token, never as an ordinal.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

var ReactionKinds = []ReactionKind{ReactionLike, ReactionDislike}

func (k ReactionKind) IsValid() bool {
	return slices.Contains(ReactionKinds, k)
}

func ParseReactionKind(value string) (ReactionKind, bool) {
	kind := ReactionKind(value)
	if !kind.IsValid() {
		return "", false
	}

	return kind, true
}

type Reaction struct {
	UserId    uuid.UUID
	PostId    uuid.UUID
	Kind      ReactionKind
	CreatedAt time.Time
}

// UserSet encodes as a sorted JSON array of user ids.
type UserSet map[uuid.UUID]struct{}

func (s UserSet) Sorted() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}

	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return bytes.Compare(a[:], b[:])
	})

	return ids
}

func (s UserSet) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(s.Sorted())
}

func (s *UserSet) UnmarshalJSON(data []byte) error {
	var ids []uuid.UUID
	err := sonic.Unmarshal(data, &ids)
	if err != nil {
		return err
	}

	set := make(UserSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	*s = set

	return nil
}

// ReactionView maps every declared kind to the users who chose it.
type ReactionView map[ReactionKind]UserSet

func NewReactionView() ReactionView {
	view := make(ReactionView, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		view[kind] = UserSet{}
	}

	return view
}

// Normalize fills in any declared kind missing from the view, e.g. after
// decoding a cache entry written before a kind was added.
func (v ReactionView) Normalize() ReactionView {
	if v == nil {
		return NewReactionView()
	}

	for _, kind := range ReactionKinds {
		if v[kind] == nil {
			v[kind] = UserSet{}
		}
	}

	return v
}

func (v ReactionView) HasUser(userId uuid.UUID) bool {
	for _, users := range v {
		if _, ok := users[userId]; ok {
			return true
		}
	}

	return false
}

func (v ReactionView) Add(kind ReactionKind, userId uuid.UUID) {
	users, ok := v[kind]
	if !ok || users == nil {
		users = UserSet{}
		v[kind] = users
	}

	users[userId] = struct{}{}
}

// IsEmpty reports whether no kind has any user.
func (v ReactionView) IsEmpty() bool {
	for _, users := range v {
		if len(users) > 0 {
			return false
		}
	}

	return true
}

func (v ReactionView) Counts() ReactionCounts {
	counts := NewReactionCounts()
	for kind, users := range v {
		counts[kind] = len(users)
	}

	return counts
}

type ReactionCounts map[ReactionKind]int

func NewReactionCounts() ReactionCounts {
	counts := make(ReactionCounts, len(ReactionKinds))
	for _, kind := range ReactionKinds {
		counts[kind] = 0
	}

	return counts
}
