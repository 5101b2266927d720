package provider

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
)

type fakeDevice struct {
	records []client.Record
	calls   []string
}

func targetOf(rec client.Record) string {
	switch rec.Type {
	case client.RecordA:
		if rec.Address != nil {
			return *rec.Address
		}
	case client.RecordCNAME:
		if rec.CNAME != nil {
			return *rec.CNAME
		}
	case client.RecordTXT:
		if rec.Text != nil {
			return *rec.Text
		}
	}
	return ""
}

func (f *fakeDevice) ListRecords(ctx context.Context) ([]client.Record, error) {
	return append([]client.Record(nil), f.records...), nil
}

func (f *fakeDevice) AddRecord(ctx context.Context, rec client.Record) error {
	f.calls = append(f.calls, fmt.Sprintf("add:%s:%s", rec.Name, targetOf(rec)))
	return nil
}

func (f *fakeDevice) DeleteRecord(ctx context.Context, id string) error {
	f.calls = append(f.calls, "delete:"+id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestApplyChangesOrdering(t *testing.T) {
	dev := &fakeDevice{
		records: []client.Record{
			{Type: client.RecordA, ID: strPtr("*1"), Name: "svc.lan", Address: strPtr("10.0.0.5")},
			{Type: client.RecordA, ID: strPtr("*2"), Name: "svc.lan", Address: strPtr("10.0.0.6")},
		},
	}
	p := New((*client.Client)(nil), endpoint.DomainFilter{}, nil)
	p.device = dev // override the typed nil *client.Client with the fake for this unit test

	batch := endpoint.Changes{
		Create: []endpoint.Endpoint{{DNSName: "new.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.9"}}},
		Delete: []endpoint.Endpoint{{DNSName: "svc.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.5"}}},
		UpdateOld: []endpoint.Endpoint{
			{DNSName: "svc.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.6"}},
		},
		UpdateNew: []endpoint.Endpoint{
			{DNSName: "svc.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.7"}},
		},
	}

	require.NoError(t, p.ApplyChanges(context.Background(), batch))

	// creates(0..n), deletes(0..m), update-removals then update-additions.
	assert.Equal(t, []string{
		"add:new.lan:10.0.0.9",
		"delete:*1",
		"delete:*2",
		"add:svc.lan:10.0.0.7",
	}, dev.calls)
}

func TestApplyChangesS1SingleCreate(t *testing.T) {
	dev := &fakeDevice{}
	p := New((*client.Client)(nil), endpoint.DomainFilter{}, nil)
	p.device = dev

	batch := endpoint.Changes{
		Create: []endpoint.Endpoint{{
			DNSName: "svc.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.5"}, RecordTTL: 3600,
		}},
	}
	require.NoError(t, p.ApplyChanges(context.Background(), batch))
	assert.Equal(t, []string{"add:svc.lan:10.0.0.5"}, dev.calls)
}

func TestApplyChangesS4DeleteMissingRecordIsNoOp(t *testing.T) {
	dev := &fakeDevice{}
	p := New((*client.Client)(nil), endpoint.DomainFilter{}, nil)
	p.device = dev

	batch := endpoint.Changes{
		Delete: []endpoint.Endpoint{{DNSName: "ghost.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.99"}}},
	}
	require.NoError(t, p.ApplyChanges(context.Background(), batch))
	assert.Empty(t, dev.calls)
}

func TestApplyChangesUnsupportedTypeSkipsWithoutAbortingBatch(t *testing.T) {
	dev := &fakeDevice{}
	p := New((*client.Client)(nil), endpoint.DomainFilter{}, nil)
	p.device = dev

	batch := endpoint.Changes{
		Create: []endpoint.Endpoint{
			{DNSName: "unsupported.lan", RecordType: "PTR", Targets: endpoint.Targets{"10.0.0.1"}},
			{DNSName: "ok.lan", RecordType: "A", Targets: endpoint.Targets{"10.0.0.2"}},
		},
	}
	require.NoError(t, p.ApplyChanges(context.Background(), batch))
	assert.Equal(t, []string{"add:ok.lan:10.0.0.2"}, dev.calls)
}

func TestListRecordsDropsUnsupportedTypes(t *testing.T) {
	dev := &fakeDevice{
		records: []client.Record{
			{Type: client.RecordA, Name: "svc.lan", Address: strPtr("10.0.0.5")},
			{Type: client.RecordNS, Name: "ns.lan"},
		},
	}
	p := New((*client.Client)(nil), endpoint.DomainFilter{}, nil)
	p.device = dev

	endpoints, err := p.ListRecords(context.Background())
	require.NoError(t, err)
	require.Len(t, endpoints, 1)
	assert.Equal(t, "svc.lan", endpoints[0].DNSName)
}

func TestGetDomainFilterAndAdjustEndpointsPassthrough(t *testing.T) {
	filter := endpoint.DomainFilter{Include: []string{"lan"}}
	p := New(nil, filter, nil)
	assert.Equal(t, filter, p.GetDomainFilter())

	in := []endpoint.Endpoint{{DNSName: "svc.lan"}}
	assert.Equal(t, in, p.AdjustEndpoints(in))
}
