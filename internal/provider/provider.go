// Package provider implements the external-dns provider contract: domain
// filtering (passthrough), endpoint listing, and best-effort batch
// reconciliation against a RouterOS device.
package provider

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
	"github.com/jroosing/routeros-dns-webhook/internal/translator"
)

// deviceClient is the subset of *client.Client the provider depends on,
// narrowed to an interface so reconciliation logic can be tested without a
// real device connection.
type deviceClient interface {
	ListRecords(ctx context.Context) ([]client.Record, error)
	AddRecord(ctx context.Context, rec client.Record) error
	DeleteRecord(ctx context.Context, id string) error
}

// Provider bridges the external-dns webhook contract to a RouterOS device.
// It holds no cache: every operation re-reads or re-writes the device.
type Provider struct {
	device deviceClient
	filter endpoint.DomainFilter
	log    *slog.Logger
}

// New returns a Provider backed by device, scoped to filter.
func New(device *client.Client, filter endpoint.DomainFilter, log *slog.Logger) *Provider {
	if log == nil {
		log = slog.Default()
	}
	return &Provider{device: device, filter: filter, log: log}
}

// GetDomainFilter returns the configured filter verbatim; the controller
// uses it to pre-scope the endpoints it sends.
func (p *Provider) GetDomainFilter() endpoint.DomainFilter {
	return p.filter
}

// AdjustEndpoints is the identity transform, reserved for device-specific
// normalization the controller requests before a batch is computed.
func (p *Provider) AdjustEndpoints(endpoints []endpoint.Endpoint) []endpoint.Endpoint {
	return endpoints
}

// ListRecords lists device records, translates the supported variants, and
// drops the rest.
func (p *Provider) ListRecords(ctx context.Context) ([]endpoint.Endpoint, error) {
	records, err := p.device.ListRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("provider: list records: %w", err)
	}
	endpoints := make([]endpoint.Endpoint, 0, len(records))
	for _, rec := range records {
		ep, ok := translator.RecordToEndpoint(rec)
		if !ok {
			continue
		}
		endpoints = append(endpoints, ep)
	}
	return endpoints, nil
}

// ApplyChanges reconciles one batch in the fixed order creates, deletes,
// updates. Per-operation failures (an unsupported record type, a missing
// delete target, a device trap) are logged and do not abort the batch; the
// provider is best-effort, matching what the controller expects from a
// successful 204.
func (p *Provider) ApplyChanges(ctx context.Context, batch endpoint.Changes) error {
	records, err := p.device.ListRecords(ctx)
	if err != nil {
		return fmt.Errorf("provider: list records: %w", err)
	}
	recordMap := translator.NewRecordMap(records)

	for _, ep := range batch.Create {
		for _, target := range ep.Targets {
			p.create(ctx, ep, target)
		}
	}

	for _, ep := range batch.Delete {
		for _, target := range ep.Targets {
			p.delete(ctx, recordMap, ep, target)
		}
	}

	n := len(batch.UpdateOld)
	if len(batch.UpdateNew) < n {
		n = len(batch.UpdateNew)
	}
	for i := 0; i < n; i++ {
		oldEP, newEP := batch.UpdateOld[i], batch.UpdateNew[i]
		removed := targetDiff(oldEP.Targets, newEP.Targets)
		added := targetDiff(newEP.Targets, oldEP.Targets)
		for _, target := range removed {
			p.delete(ctx, recordMap, oldEP, target)
		}
		for _, target := range added {
			p.create(ctx, newEP, target)
		}
	}

	return nil
}

func (p *Provider) create(ctx context.Context, ep endpoint.Endpoint, target string) {
	rec, err := translator.EndpointToRecord(ep, target)
	if err != nil {
		p.log.Warn("skipping unsupported record type", "dnsName", ep.DNSName, "target", target, "recordType", ep.RecordType, "error", err)
		return
	}
	if err := p.device.AddRecord(ctx, rec); err != nil {
		p.log.Warn("add record failed", "dnsName", ep.DNSName, "target", target, "error", err)
	}
}

func (p *Provider) delete(ctx context.Context, recordMap *translator.RecordMap, ep endpoint.Endpoint, target string) {
	rec := recordMap.Find(ep, target)
	if rec == nil || rec.ID == nil {
		p.log.Warn("record not found for delete", "dnsName", ep.DNSName, "target", target)
		return
	}
	if err := p.device.DeleteRecord(ctx, *rec.ID); err != nil {
		p.log.Warn("delete record failed", "dnsName", ep.DNSName, "target", target, "error", err)
	}
}

// targetDiff returns the values in a that are not in b, as a set
// difference (order of a is preserved, duplicates are not deduplicated).
func targetDiff(a, b endpoint.Targets) endpoint.Targets {
	inB := make(map[string]struct{}, len(b))
	for _, v := range b {
		inB[v] = struct{}{}
	}
	var diff endpoint.Targets
	for _, v := range a {
		if _, ok := inB[v]; !ok {
			diff = append(diff, v)
		}
	}
	return diff
}
