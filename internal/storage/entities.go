package storage

import "time"

type Entry struct {
	Key       string
	Value     []byte
	UpdatedAt time.Time
}

type EntryListFilter struct {
	Prefix string
	Limit  int
	Offset int
}
