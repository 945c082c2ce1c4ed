package redisink

import (
	stdjson "encoding/json"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Swind/go-intent-engine/core"
)

func TestEncode_EnvelopeFields(t *testing.T) {
	d := core.NewDonation("UserSignup", map[string]string{"user": "alice"})

	data, err := encode(d)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var decoded struct {
		ID         string            `json:"id"`
		IntentType string            `json:"intent_type"`
		CreatedAt  time.Time         `json:"created_at"`
		Payload    map[string]string `json:"payload"`
	}
	if err := stdjson.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if decoded.ID != d.ID.String() {
		t.Fatalf("id = %q, want %q", decoded.ID, d.ID.String())
	}
	if decoded.IntentType != "UserSignup" {
		t.Fatalf("intent_type = %q, want UserSignup", decoded.IntentType)
	}
	if decoded.CreatedAt.IsZero() {
		t.Fatal("created_at should be set")
	}
	if decoded.Payload["user"] != "alice" {
		t.Fatalf("payload = %v, want user=alice", decoded.Payload)
	}
}

func TestEncode_NilPayloadOmitted(t *testing.T) {
	d := core.NewDonation("Heartbeat", nil)

	data, err := encode(d)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	var raw map[string]any
	if err := stdjson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if _, present := raw["payload"]; present {
		t.Fatal("nil payload should be omitted from the envelope")
	}
}

func TestEncode_UnencodablePayloadFails(t *testing.T) {
	d := core.NewDonation("Broken", make(chan int))

	if _, err := encode(d); err == nil {
		t.Fatal("encoding a channel payload should fail")
	}
}

func TestNew_Defaults(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	sink := New(client, "")
	if sink.Key() != DefaultKey {
		t.Fatalf("key = %q, want %q", sink.Key(), DefaultKey)
	}

	named := New(client, "custom:list")
	if named.Key() != "custom:list" {
		t.Fatalf("key = %q, want custom:list", named.Key())
	}
}

func TestNew_NilClientPanics(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Fatal("New should panic on a nil client")
		}
	}()
	New(nil, DefaultKey)
}
