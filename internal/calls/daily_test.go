package calls

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/museflow/call-links/internal/testutil"
)

func TestDailyClientCreateRoom(t *testing.T) {
	t.Parallel()
	stub := testutil.NewStubProvider(t, http.StatusOK, `{"id":"r-1","name":"room_abc","url":"https://example.daily.co/room_abc","privacy":"private"}`)
	client := NewDailyClient(stub.URL+"/v1/", "sk_test", 5*time.Second)

	room, err := client.CreateRoom(context.Background(), RoomRequest{Privacy: "private", Properties: RoomProperties{Exp: 1767227400}})
	if err != nil {
		t.Fatalf("CreateRoom error: %v", err)
	}
	if room.URL != "https://example.daily.co/room_abc" || room.Name != "room_abc" {
		t.Fatalf("unexpected room: %+v", room)
	}

	got := stub.LastRequest(t)
	if got.Method != http.MethodPost || got.Path != "/v1/rooms" {
		t.Fatalf("unexpected request line: %s %s", got.Method, got.Path)
	}
	if got.Authorization != "Bearer sk_test" {
		t.Fatalf("unexpected authorization header %q", got.Authorization)
	}
	if got.ContentType != "application/json" {
		t.Fatalf("unexpected content type %q", got.ContentType)
	}
	var body map[string]any
	if err := json.Unmarshal(got.Body, &body); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if body["privacy"] != "private" {
		t.Fatalf("unexpected privacy: %v", body["privacy"])
	}
	props, _ := body["properties"].(map[string]any)
	if props["exp"] != float64(1767227400) {
		t.Fatalf("unexpected exp: %v", props["exp"])
	}
}

func TestDailyClientProviderError(t *testing.T) {
	t.Parallel()
	stub := testutil.NewStubProvider(t, http.StatusInternalServerError, "quota exceeded")
	client := NewDailyClient(stub.URL, "sk_test", 5*time.Second)

	_, err := client.CreateRoom(context.Background(), RoomRequest{Privacy: "private"})
	var providerErr *ProviderError
	if !errors.As(err, &providerErr) {
		t.Fatalf("expected ProviderError got %v", err)
	}
	if providerErr.Status != http.StatusInternalServerError || providerErr.Body != "quota exceeded" {
		t.Fatalf("unexpected provider error: %+v", providerErr)
	}
}

func TestDailyClientMalformedResponse(t *testing.T) {
	t.Parallel()
	stub := testutil.NewStubProvider(t, http.StatusOK, `not json`)
	client := NewDailyClient(stub.URL, "sk_test", 5*time.Second)

	_, err := client.CreateRoom(context.Background(), RoomRequest{Privacy: "private"})
	if err == nil {
		t.Fatal("expected decode error")
	}
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		t.Fatalf("malformed success body must not be a provider error: %v", err)
	}
}

func TestDailyClientNetworkError(t *testing.T) {
	t.Parallel()
	stub := testutil.NewStubProvider(t, http.StatusOK, `{}`)
	url := stub.URL
	stub.Close()

	client := NewDailyClient(url, "sk_test", time.Second)
	if _, err := client.CreateRoom(context.Background(), RoomRequest{Privacy: "private"}); err == nil {
		t.Fatal("expected network error")
	}
}
