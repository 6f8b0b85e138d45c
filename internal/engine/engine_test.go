package engine

import (
	"encoding/json"
	"testing"
)

func TestLoadResult_UnmarshalTrack(t *testing.T) {
	payload := `{
		"loadType": "track",
		"data": {
			"encoded": "abc123",
			"info": {
				"identifier": "dQw4w9WgXcQ",
				"title": "Never Gonna Give You Up",
				"author": "Rick Astley",
				"length": 212000,
				"isStream": false,
				"uri": "https://youtu.be/dQw4w9WgXcQ",
				"sourceName": "youtube"
			}
		}
	}`

	var res LoadResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Type != LoadTypeTrack {
		t.Errorf("type %q, want track", res.Type)
	}
	if len(res.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(res.Tracks))
	}
	tr := res.Tracks[0]
	if tr.Encoded != "abc123" || tr.Info.Title != "Never Gonna Give You Up" {
		t.Errorf("track mangled: %+v", tr)
	}
	if tr.Info.Length != 212000 {
		t.Errorf("length %d, want 212000", tr.Info.Length)
	}
}

func TestLoadResult_UnmarshalSearch(t *testing.T) {
	payload := `{
		"loadType": "search",
		"data": [
			{"encoded": "a", "info": {"title": "first"}},
			{"encoded": "b", "info": {"title": "second"}}
		]
	}`

	var res LoadResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Type != LoadTypeSearch || len(res.Tracks) != 2 {
		t.Fatalf("type=%q tracks=%d", res.Type, len(res.Tracks))
	}
	if res.Tracks[0].Info.Title != "first" {
		t.Errorf("candidate order lost: %+v", res.Tracks)
	}
}

func TestLoadResult_UnmarshalPlaylist(t *testing.T) {
	payload := `{
		"loadType": "playlist",
		"data": {
			"info": {"name": "road trip", "selectedTrack": -1},
			"tracks": [
				{"encoded": "a", "info": {"title": "one"}},
				{"encoded": "b", "info": {"title": "two"}},
				{"encoded": "c", "info": {"title": "three"}}
			]
		}
	}`

	var res LoadResult
	if err := json.Unmarshal([]byte(payload), &res); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if res.Type != LoadTypePlaylist || res.PlaylistName != "road trip" {
		t.Errorf("type=%q name=%q", res.Type, res.PlaylistName)
	}
	if len(res.Tracks) != 3 {
		t.Errorf("got %d tracks, want 3", len(res.Tracks))
	}
}

func TestLoadResult_UnmarshalEmptyAndError(t *testing.T) {
	var empty LoadResult
	if err := json.Unmarshal([]byte(`{"loadType": "empty", "data": {}}`), &empty); err != nil {
		t.Fatalf("unmarshal empty: %v", err)
	}
	if empty.Type != LoadTypeEmpty || len(empty.Tracks) != 0 {
		t.Errorf("empty result carries tracks: %+v", empty)
	}

	var failed LoadResult
	payload := `{
		"loadType": "error",
		"data": {"message": "video unavailable", "severity": "common", "cause": ""}
	}`
	if err := json.Unmarshal([]byte(payload), &failed); err != nil {
		t.Fatalf("unmarshal error: %v", err)
	}
	if failed.Type != LoadTypeError || failed.ErrorMessage != "video unavailable" {
		t.Errorf("error detail lost: %+v", failed)
	}
}

func TestLoadResult_UnknownLoadType(t *testing.T) {
	var res LoadResult
	if err := json.Unmarshal([]byte(`{"loadType": "hologram", "data": {}}`), &res); err == nil {
		t.Fatal("unknown load type decoded without error")
	}
}

func TestEndReason_Policies(t *testing.T) {
	cases := []struct {
		reason  EndReason
		replay  bool
		advance bool
	}{
		{EndFinished, true, true},
		{EndLoadFailed, false, true},
		{EndStopped, false, false},
		{EndReplaced, false, false},
		{EndCleanup, false, false},
	}
	for _, c := range cases {
		if got := c.reason.MayReplay(); got != c.replay {
			t.Errorf("%s: MayReplay=%v, want %v", c.reason, got, c.replay)
		}
		if got := c.reason.MayAdvance(); got != c.advance {
			t.Errorf("%s: MayAdvance=%v, want %v", c.reason, got, c.advance)
		}
	}
}

func TestSocketMessage_DecodeTrackEnd(t *testing.T) {
	payload := `{
		"op": "event",
		"type": "TrackEndEvent",
		"guildId": "g1",
		"track": {"encoded": "abc", "info": {"title": "song", "uri": "https://x/y"}},
		"reason": "finished"
	}`

	var msg socketMessage
	if err := json.Unmarshal([]byte(payload), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Op != "event" || msg.Type != "TrackEndEvent" || msg.GuildID != "g1" {
		t.Errorf("envelope mangled: %+v", msg)
	}
	if msg.Reason != EndFinished {
		t.Errorf("reason %q, want finished", msg.Reason)
	}
	var tr Track
	if err := json.Unmarshal(msg.Track, &tr); err != nil {
		t.Fatalf("track payload: %v", err)
	}
	if tr.Info.URI != "https://x/y" {
		t.Errorf("track uri lost: %+v", tr)
	}
}

func TestSocketMessage_DecodeReady(t *testing.T) {
	var msg socketMessage
	if err := json.Unmarshal([]byte(`{"op":"ready","resumed":false,"sessionId":"s-42"}`), &msg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if msg.Op != "ready" || msg.Resumed || msg.SessionID != "s-42" {
		t.Errorf("ready envelope mangled: %+v", msg)
	}
}
