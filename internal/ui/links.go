package ui

import "gifportal/internal/gifprogram"

// CollectionState tags which variant a LinkCollection holds.
type CollectionState int

const (
	// CollectionEmpty: the backing account exists and holds no links.
	// It is also the zero value, so a fresh model starts out empty.
	CollectionEmpty CollectionState = iota
	// CollectionPopulated: the backing account holds at least one link.
	CollectionPopulated
	// CollectionUninitialized: the last read failed or found no account.
	CollectionUninitialized
)

func (s CollectionState) String() string {
	switch s {
	case CollectionEmpty:
		return "Empty"
	case CollectionPopulated:
		return "Populated"
	case CollectionUninitialized:
		return "Uninitialized"
	default:
		return "Unknown"
	}
}

// LinkRecord is one shared gif link.
type LinkRecord struct {
	URL string
	// Submitter is the base58 address that added the link, if known.
	Submitter string
}

// LinkCollection is the three-state view of the remote list:
// Uninitialized | Empty | Populated(records). It is replaced wholesale by
// each read and never appended to locally.
type LinkCollection struct {
	state   CollectionState
	records []LinkRecord
}

// UninitializedLinks returns the sentinel for "no remote account".
func UninitializedLinks() LinkCollection {
	return LinkCollection{state: CollectionUninitialized}
}

// NewLinkCollection returns Empty for no records and Populated otherwise.
// The records are copied in order.
func NewLinkCollection(records []LinkRecord) LinkCollection {
	if len(records) == 0 {
		return LinkCollection{state: CollectionEmpty}
	}
	return LinkCollection{
		state:   CollectionPopulated,
		records: append([]LinkRecord(nil), records...),
	}
}

// LinksFromAccount converts a decoded backing account, preserving storage order.
func LinksFromAccount(acct *gifprogram.BaseAccount) LinkCollection {
	if acct == nil {
		return UninitializedLinks()
	}
	records := make([]LinkRecord, 0, len(acct.GifList))
	for _, item := range acct.GifList {
		r := LinkRecord{URL: item.GifLink}
		if !item.UserAddress.IsZero() {
			r.Submitter = item.UserAddress.String()
		}
		records = append(records, r)
	}
	return NewLinkCollection(records)
}

// State returns the variant tag.
func (c LinkCollection) State() CollectionState { return c.state }

// Records returns the links; nil unless Populated.
func (c LinkCollection) Records() []LinkRecord { return c.records }

// Len returns the number of links.
func (c LinkCollection) Len() int { return len(c.records) }
