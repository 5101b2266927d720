package translator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
)

func TestRecordMapFindMatch(t *testing.T) {
	addr := "10.0.0.5"
	m := NewRecordMap([]client.Record{
		{Type: client.RecordA, Name: "svc.lan", Address: &addr},
	})

	found := m.Find(endpoint.Endpoint{DNSName: "svc.lan", RecordType: "A"}, "10.0.0.5")
	require.NotNil(t, found)
	assert.Equal(t, "10.0.0.5", *found.Address)
}

func TestRecordMapFindMismatchedTargetReturnsNil(t *testing.T) {
	addr := "10.0.0.5"
	m := NewRecordMap([]client.Record{
		{Type: client.RecordA, Name: "svc.lan", Address: &addr},
	})

	found := m.Find(endpoint.Endpoint{DNSName: "svc.lan", RecordType: "A"}, "10.0.0.6")
	assert.Nil(t, found)
}

func TestRecordMapFindUnknownName(t *testing.T) {
	m := NewRecordMap(nil)
	found := m.Find(endpoint.Endpoint{DNSName: "missing.lan", RecordType: "A"}, "10.0.0.5")
	assert.Nil(t, found)
}
