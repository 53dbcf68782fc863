// Package queue holds the ordered list of documents awaiting concatenation.
// Queue order is merge order.
package queue

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/wudi/pagekit/sizefmt"
)

// ErrFileTooLarge is returned when a file exceeds the per-file admission
// ceiling. Oversized files never enter the queue.
var ErrFileTooLarge = errors.New("file exceeds the size limit")

// MinMergeCount is the minimum number of queued documents for a merge.
const MinMergeCount = 2

// Item is one admitted document in the queue.
type Item struct {
	ID   string
	Name string
	Size int64
	Data []byte
}

// Queue is an ordered sequence of admitted files. Not safe for concurrent
// use; the owning workspace serializes access.
type Queue struct {
	maxFileSize int64
	items       []Item
}

// New returns an empty queue. maxFileSize <= 0 disables the admission check.
func New(maxFileSize int64) *Queue {
	return &Queue{maxFileSize: maxFileSize}
}

// Add admits a file at the end of the queue, rejecting it before anything
// else happens if it exceeds the size ceiling.
func (q *Queue) Add(name string, data []byte) (Item, error) {
	size := int64(len(data))
	if q.maxFileSize > 0 && size > q.maxFileSize {
		return Item{}, fmt.Errorf("%q is %s: %w (limit %s)",
			name, sizefmt.Format(size), ErrFileTooLarge, sizefmt.Format(q.maxFileSize))
	}
	it := Item{ID: uuid.NewString(), Name: name, Size: size, Data: data}
	q.items = append(q.items, it)
	return it, nil
}

// Remove deletes the item with the given id, reporting whether it was found.
func (q *Queue) Remove(id string) bool {
	for i, it := range q.items {
		if it.ID == id {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return true
		}
	}
	return false
}

// MoveTo moves the item with the given id to target position, preserving the
// relative order of all other items. Targets are clamped to the valid range.
// Reports whether the id was found.
func (q *Queue) MoveTo(id string, target int) bool {
	from := -1
	for i, it := range q.items {
		if it.ID == id {
			from = i
			break
		}
	}
	if from == -1 {
		return false
	}
	if target < 0 {
		target = 0
	}
	if target >= len(q.items) {
		target = len(q.items) - 1
	}
	if target == from {
		return true
	}
	it := q.items[from]
	q.items = append(q.items[:from], q.items[from+1:]...)
	q.items = append(q.items[:target], append([]Item{it}, q.items[target:]...)...)
	return true
}

// Len returns the number of queued items.
func (q *Queue) Len() int { return len(q.items) }

// Items returns a copy of the queue in merge order.
func (q *Queue) Items() []Item {
	return append([]Item(nil), q.items...)
}

// Clear empties the queue.
func (q *Queue) Clear() { q.items = nil }
