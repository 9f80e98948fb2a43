package storage

import "fmt"

// ListOptions controls the direction, the starting key and the number of
// items of a prefix iteration. A zero limit means no limit.
type ListOptions interface {
	Reverse() bool
	Cursor() []byte
	Limit() uint64
}

type DefaultListOptions struct {
	reverse bool
	cursor  []byte
	limit   uint64
}

func NewDefaultListOptions(reverse bool, cursor []byte, limit uint64) *DefaultListOptions {
	return &DefaultListOptions{
		reverse: reverse,
		cursor:  cursor,
		limit:   limit,
	}
}

func (o DefaultListOptions) Reverse() bool {
	return o.reverse
}

func (o DefaultListOptions) Cursor() []byte {
	return o.cursor
}

func (o DefaultListOptions) Limit() uint64 {
	return o.limit
}

func (o DefaultListOptions) String() string {
	return fmt.Sprintf("reverse=%t cursor=%q limit=%d", o.reverse, o.cursor, o.limit)
}
