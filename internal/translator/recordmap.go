package translator

import (
	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
)

// RecordMap indexes device records by name for apply-time lookup, so
// ApplyChanges can find the device id behind a given endpoint/target pair
// without a fresh device call per lookup.
type RecordMap struct {
	byName map[string][]client.Record
}

// NewRecordMap groups records by their Name field.
func NewRecordMap(records []client.Record) *RecordMap {
	m := &RecordMap{byName: make(map[string][]client.Record)}
	for _, r := range records {
		m.byName[r.Name] = append(m.byName[r.Name], r)
	}
	return m
}

// Find locates the device record matching ep's name whose variant payload
// (A.Address, CNAME.CNAME, TXT.Text) equals target, or nil if none
// matches.
func (m *RecordMap) Find(ep endpoint.Endpoint, target string) *client.Record {
	for _, r := range m.byName[ep.DNSName] {
		r := r
		switch r.Type {
		case client.RecordA:
			if r.Address != nil && *r.Address == target {
				return &r
			}
		case client.RecordCNAME:
			if r.CNAME != nil && *r.CNAME == target {
				return &r
			}
		case client.RecordTXT:
			if r.Text != nil && *r.Text == target {
				return &r
			}
		}
	}
	return nil
}
