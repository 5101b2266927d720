package client

import "strconv"

// RecordType identifies the variant of a device static DNS record.
type RecordType string

const (
	RecordA        RecordType = "A"
	RecordAAAA     RecordType = "AAAA"
	RecordCNAME    RecordType = "CNAME"
	RecordFWD      RecordType = "FWD"
	RecordMX       RecordType = "MX"
	RecordNS       RecordType = "NS"
	RecordNXDOMAIN RecordType = "NXDOMAIN"
	RecordSRV      RecordType = "SRV"
	RecordTXT      RecordType = "TXT"
)

// Record is a device static DNS record: a tagged variant keyed on Type,
// carrying the fields common to every variant plus pointer fields for the
// variant-specific attributes. A nil pointer means the attribute is unset
// and is omitted when serializing for an add.
type Record struct {
	Type RecordType

	// ID is the device's opaque record id, e.g. "*3". Never sent on add;
	// required, verbatim ("*" prefix included), on remove.
	ID             *string
	Disabled       bool
	MatchSubdomain bool
	Name           string
	TTL            string // WwDdHhMmSs

	Address      *string // A, AAAA
	CNAME        *string // CNAME
	ForwardTo    *string // FWD
	MXPreference *string // MX
	MXExchange   *string // MX
	NS           *string // NS
	SRVPort      *string // SRV
	SRVPriority  *string // SRV
	SRVTarget    *string // SRV
	SRVWeight    *string // SRV
	Text         *string // TXT
}

// Attributes renders the record as the device's "=key=value" attribute
// words, excluding id and excluding any variant field that is unset.
func (r Record) Attributes() map[string]string {
	attrs := map[string]string{
		"name":            r.Name,
		"type":            string(r.Type),
		"ttl":             r.TTL,
		"disabled":        strconv.FormatBool(r.Disabled),
		"match-subdomain": strconv.FormatBool(r.MatchSubdomain),
	}
	put := func(key string, v *string) {
		if v != nil {
			attrs[key] = *v
		}
	}
	put("address", r.Address)
	put("cname", r.CNAME)
	put("forward-to", r.ForwardTo)
	put("mx-preference", r.MXPreference)
	put("mx-exchange", r.MXExchange)
	put("ns", r.NS)
	put("srv-port", r.SRVPort)
	put("srv-priority", r.SRVPriority)
	put("srv-target", r.SRVTarget)
	put("srv-weight", r.SRVWeight)
	put("text", r.Text)
	return attrs
}

// ParseRecord builds a Record from a "!re" sentence's attribute map. A
// missing "type" defaults to RecordA, matching the device's handling of
// legacy rows.
func ParseRecord(attrs map[string]string) Record {
	r := Record{
		Type: RecordType(attrs["type"]),
		Name: attrs["name"],
		TTL:  attrs["ttl"],
	}
	if r.Type == "" {
		r.Type = RecordA
	}
	if id, ok := attrs[".id"]; ok {
		r.ID = &id
	}
	r.Disabled, _ = strconv.ParseBool(attrs["disabled"])
	r.MatchSubdomain, _ = strconv.ParseBool(attrs["match-subdomain"])

	get := func(key string) *string {
		if v, ok := attrs[key]; ok {
			return &v
		}
		return nil
	}
	r.Address = get("address")
	r.CNAME = get("cname")
	r.ForwardTo = get("forward-to")
	r.MXPreference = get("mx-preference")
	r.MXExchange = get("mx-exchange")
	r.NS = get("ns")
	r.SRVPort = get("srv-port")
	r.SRVPriority = get("srv-priority")
	r.SRVTarget = get("srv-target")
	r.SRVWeight = get("srv-weight")
	r.Text = get("text")
	return r
}
