package models

import "time"

// ActivityEvent names the telemetry events a client can report.
type ActivityEvent string

const (
	EventPlay          ActivityEvent = "play"
	EventSkip          ActivityEvent = "skip"
	EventAddToPlaylist ActivityEvent = "add_to_playlist"
)

// KnownEvents lists every accepted event name, in seed order.
var KnownEvents = []ActivityEvent{EventPlay, EventSkip, EventAddToPlaylist}

// Valid reports whether the event name is known.
func (e ActivityEvent) Valid() bool {
	switch e {
	case EventPlay, EventSkip, EventAddToPlaylist:
		return true
	}
	return false
}

// UserActivity is one appended telemetry record.
type UserActivity struct {
	ID      int64         `json:"id"`
	UserID  int64         `json:"userId"`
	TrackID int64         `json:"trackId"`
	Event   ActivityEvent `json:"event"`
	Time    time.Time     `json:"time"`
}

// CreateActivityRequest appends one event to the log.
type CreateActivityRequest struct {
	UserID  int64         `json:"user_id" query:"user_id" validate:"required"`
	TrackID int64         `json:"track_id" query:"track_id" validate:"required"`
	Event   ActivityEvent `json:"event" query:"event" validate:"required"`
}

// ActivityFilter conjoins every set branch. An empty filter matches all.
type ActivityFilter struct {
	IDs       []int64         `json:"ids,omitempty" query:"ids"`
	UserIDs   []int64         `json:"user_ids,omitempty" query:"user_ids"`
	TrackIDs  []int64         `json:"track_ids,omitempty" query:"track_ids"`
	Events    []ActivityEvent `json:"events,omitempty" query:"events"`
	StartTime *time.Time      `json:"start_time,omitempty" query:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty" query:"end_time"`
}

// ActivityPage bounds list and aggregation responses.
type ActivityPage struct {
	Offset *int `json:"offset,omitempty" query:"offset" validate:"omitempty,gte=0"`
	Limit  *int `json:"limit,omitempty" query:"limit" validate:"omitempty,gte=0"`
}

// TrackPlayCount is one row of the most-played aggregation.
type TrackPlayCount struct {
	TrackID   int64 `json:"trackId"`
	PlayCount int64 `json:"playCount"`
}

// MostPlayedTracks lists tracks by descending play count.
type MostPlayedTracks struct {
	Tracks []TrackPlayCount `json:"tracks"`
}

// ActiveUsersOnDate is one row of the daily-active-users aggregation.
type ActiveUsersOnDate struct {
	Date      time.Time `json:"date"`
	UserCount int64     `json:"userCount"`
}

// DailyActiveUsers counts distinct active users per day, ascending by date.
type DailyActiveUsers struct {
	Entries []ActiveUsersOnDate `json:"entries"`
}

// TrackCompletionRate is skips over plays for one track.
type TrackCompletionRate struct {
	TrackID        int64   `json:"trackId"`
	CompletionRate float64 `json:"completionRate"`
}

// TracksCompletionRate lists the per-track skip/play ratio.
type TracksCompletionRate struct {
	Entries []TrackCompletionRate `json:"entries"`
}
