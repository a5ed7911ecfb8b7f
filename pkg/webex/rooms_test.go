package webex

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRooms_ListOptionValidation(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the network")
	}), nil)

	cases := []struct {
		name string
		opts RoomsListOptions
	}{
		{"bad type", RoomsListOptions{Type: "broadcast"}},
		{"bad sort", RoomsListOptions{SortBy: "newest"}},
		{"negative max", RoomsListOptions{Max: -1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			it := client.Rooms.List(context.Background(), tc.opts)
			assert.False(t, it.Next())

			var cfgErr *ConfigError
			assert.ErrorAs(t, it.Err(), &cfgErr)
		})
	}
}

func TestRooms_ListQuery(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"items":[{"id":"r1","type":"group","title":"Eng"}]}`))
	}), nil)

	records, err := client.Rooms.List(context.Background(), RoomsListOptions{
		Type:   RoomTypeGroup,
		SortBy: "lastactivity",
		Max:    50,
	}).Collect()
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "max=50&sortBy=lastactivity&type=group", gotQuery)
	assert.Equal(t, "Eng", records[0].String("title"))
}

func TestRooms_CreateRequiresTitle(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the network")
	}), nil)

	_, err := client.Rooms.Create(context.Background(), RoomFields{})

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "title is required", cfgErr.Reason)
}

func TestRooms_MeetingDetailsPath(t *testing.T) {
	var gotPath string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"roomId":"r1","meetingLink":"https://example.com/m/r1"}`))
	}), nil)

	rec, err := client.Rooms.MeetingDetails(context.Background(), "r1")
	require.NoError(t, err)

	assert.Equal(t, "/v1/rooms/r1/meetingInfo", gotPath)
	assert.Equal(t, "https://example.com/m/r1", rec.String("meetingLink"))
}

func TestRooms_GetRequiresID(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("validation failures must not reach the network")
	}), nil)

	_, err := client.Rooms.Get(context.Background(), "")

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}
