package client

import "context"

// Client is a thin typed façade over a Connection's raw Send, implementing
// the router's three static-DNS operations. It caches nothing; every call
// hits the device.
type Client struct {
	conn *Connection
}

// NewClient returns a Client backed by conn.
func NewClient(conn *Connection) *Client {
	return &Client{conn: conn}
}

// ListRecords lists every static DNS record currently configured on the
// device, regardless of type, in device order.
func (c *Client) ListRecords(ctx context.Context) ([]Record, error) {
	resp, err := c.conn.Send(ctx, "/ip/dns/static/print", map[string]string{"detail": ""})
	if err != nil {
		return nil, err
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	rows := resp.GetData()
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, ParseRecord(row))
	}
	return records, nil
}

// AddRecord creates rec on the device.
func (c *Client) AddRecord(ctx context.Context, rec Record) error {
	resp, err := c.conn.Send(ctx, "/ip/dns/static/add", rec.Attributes())
	if err != nil {
		return err
	}
	return resp.Err()
}

// DeleteRecord removes the device record identified by id (its leading
// "*" included, passed back verbatim).
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	resp, err := c.conn.Send(ctx, "/ip/dns/static/remove", map[string]string{"numbers": id})
	if err != nil {
		return err
	}
	return resp.Err()
}
