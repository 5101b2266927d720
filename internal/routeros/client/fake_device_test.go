package client

import (
	"net"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jroosing/routeros-dns-webhook/internal/routeros/proto"
)

// serveFakeDevice plays the router side of the wire protocol on conn:
// read a sentence, hand it to handle (unless it's a login, which is
// always accepted), write back whatever sentences handle returns with the
// request's tag stamped onto each.
func serveFakeDevice(conn net.Conn, handle func(proto.Sentence) []proto.Sentence) {
	defer conn.Close()
	for {
		header, err := proto.ReadWordHeaderByte(conn)
		if err != nil {
			return
		}
		first, err := proto.ReadWordRemainder(header, conn)
		if err != nil {
			return
		}
		rest, err := proto.ReadSentenceWords(conn)
		if err != nil {
			return
		}
		sentence, err := proto.ParseSentence(append([]string{first}, rest...))
		if err != nil {
			return
		}
		tag, _ := sentence.Tag()

		var replies []proto.Sentence
		if sentence.Type == "/login" {
			replies = []proto.Sentence{{Type: "!done"}}
		} else {
			replies = handle(sentence)
		}
		for _, r := range replies {
			words := proto.BuildSentence(r.Type, r.Attributes, map[string]string{"tag": tag})
			if err := proto.WriteSentenceWords(conn, words); err != nil {
				return
			}
		}
	}
}

// fakeDevice is a TCP listener that plays the router side of the protocol
// for every connection it accepts, recording each non-login request it
// receives and how many connections it has accepted.
type fakeDevice struct {
	host string
	port int

	accepts  int32
	requests chan proto.Sentence
}

func newFakeDevice(t *testing.T, handle func(proto.Sentence) []proto.Sentence) *fakeDevice {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	d := &fakeDevice{requests: make(chan proto.Sentence, 64)}
	addr := ln.Addr().(*net.TCPAddr)
	d.host = addr.IP.String()
	d.port = addr.Port

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			atomic.AddInt32(&d.accepts, 1)
			go serveFakeDevice(conn, func(s proto.Sentence) []proto.Sentence {
				if s.Type != "/login" {
					d.requests <- s
				}
				return handle(s)
			})
		}
	}()

	return d
}

func (d *fakeDevice) acceptCount() int32 {
	return atomic.LoadInt32(&d.accepts)
}
