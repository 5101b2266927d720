package translator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jroosing/routeros-dns-webhook/internal/endpoint"
	"github.com/jroosing/routeros-dns-webhook/internal/routeros/client"
)

// ErrUnsupportedType is returned by EndpointToRecord when an endpoint's
// record type has no device-side translation. RecordToEndpoint reports the
// same condition by returning ok=false, since listings drop unsupported
// device types silently rather than erroring.
var ErrUnsupportedType = errors.New("translator: unsupported record type")

// EndpointToRecord translates one target of ep into a device record ready
// to add. Only A, CNAME, and TXT translate; any other recordType returns
// ErrUnsupportedType.
func EndpointToRecord(ep endpoint.Endpoint, target string) (client.Record, error) {
	ttlSeconds := int64(DefaultTTLSeconds)
	if ep.RecordTTL > 0 {
		ttlSeconds = int64(ep.RecordTTL)
	}

	rec := client.Record{
		Disabled:       false,
		MatchSubdomain: strings.HasPrefix(target, "*."),
		Name:           ep.DNSName,
		TTL:            EncodeTTL(ttlSeconds),
	}

	switch endpoint.RecordType(ep.RecordType) {
	case endpoint.RecordTypeA:
		rec.Type = client.RecordA
		rec.Address = &target
	case endpoint.RecordTypeCNAME:
		rec.Type = client.RecordCNAME
		rec.CNAME = &target
	case endpoint.RecordTypeTXT:
		rec.Type = client.RecordTXT
		rec.Text = &target
	default:
		return client.Record{}, fmt.Errorf("%w: %s", ErrUnsupportedType, ep.RecordType)
	}
	return rec, nil
}

// RecordToEndpoint translates a device record into a controller endpoint.
// Only A, CNAME, and TXT translate; any other device type, or a
// translatable type missing its payload field, returns ok=false so the
// caller drops it from the listing.
func RecordToEndpoint(rec client.Record) (ep endpoint.Endpoint, ok bool) {
	var target string
	var recordType endpoint.RecordType

	switch rec.Type {
	case client.RecordA:
		if rec.Address == nil {
			return endpoint.Endpoint{}, false
		}
		target, recordType = *rec.Address, endpoint.RecordTypeA
	case client.RecordCNAME:
		if rec.CNAME == nil {
			return endpoint.Endpoint{}, false
		}
		target, recordType = *rec.CNAME, endpoint.RecordTypeCNAME
	case client.RecordTXT:
		if rec.Text == nil {
			return endpoint.Endpoint{}, false
		}
		target, recordType = *rec.Text, endpoint.RecordTypeTXT
	default:
		return endpoint.Endpoint{}, false
	}

	ttl, err := DecodeTTL(rec.TTL)
	if err != nil {
		ttl = DefaultTTLSeconds
	}

	return endpoint.Endpoint{
		DNSName:    rec.Name,
		Targets:    endpoint.Targets{target},
		RecordType: string(recordType),
		RecordTTL:  endpoint.TTL(ttl),
	}, true
}
