package hub

import (
	"bytes"
	"encoding/json"
	"testing"

	"tubegrab/internal/models"
)

func TestPublishDeliversToEveryConnection(t *testing.T) {
	r := NewRegistry()
	conns := []*fakeConn{{id: "a"}, {id: "b"}, {id: "c"}}
	for _, c := range conns {
		r.Register(c)
	}

	d := NewDispatcher(r)
	d.Publish(models.Status{State: models.StateDownloading, Percentage: "50.0"})

	var first []byte
	for _, c := range conns {
		msgs := c.messages()
		if len(msgs) != 1 {
			t.Fatalf("conn %s received %d messages, want 1", c.id, len(msgs))
		}
		if first == nil {
			first = msgs[0]
		} else if !bytes.Equal(first, msgs[0]) {
			t.Errorf("conn %s received a different payload", c.id)
		}
	}

	var st models.Status
	if err := json.Unmarshal(first, &st); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if st.State != models.StateDownloading || st.Percentage != "50.0" {
		t.Errorf("payload = %+v, want downloading at 50.0", st)
	}
}

func TestPublishIsolatesFailedConnection(t *testing.T) {
	r := NewRegistry()
	a := &fakeConn{id: "a"}
	b := &fakeConn{id: "b", fail: true}
	c := &fakeConn{id: "c"}
	r.Register(a)
	r.Register(b)
	r.Register(c)

	d := NewDispatcher(r)
	d.Publish(models.Status{State: models.StateStarting})

	if len(a.messages()) != 1 || len(c.messages()) != 1 {
		t.Error("healthy connections must still receive the message")
	}
	if !b.isClosed() {
		t.Error("failed connection was not closed")
	}
	if r.Len() != 2 {
		t.Errorf("Len() = %d after prune, want 2", r.Len())
	}

	d.Publish(models.Status{State: models.StateFinished, Filename: "out.mp4"})
	if len(b.messages()) != 0 {
		t.Error("pruned connection received a message")
	}
	if len(a.messages()) != 2 || len(c.messages()) != 2 {
		t.Error("surviving connections missed the second publish")
	}
}
