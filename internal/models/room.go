// Package models defines the room and status types shared across the application
package models

import "time"

// MeetingTime is a recurring scheduled meeting slot for a room.
// Day is a three-letter weekday code; Time is "HH:MM" 24-hour time in the
// deployment's fixed local time zone.
type MeetingTime struct {
	Day  string `json:"day" mapstructure:"day"`
	Time string `json:"time" mapstructure:"time"`
}

// Room holds the static metadata for a monitored room. The name is the
// unique key; the URL is the canvas stub page the credential scraper reads.
type Room struct {
	Name     string        `json:"name" mapstructure:"name"`
	URL      string        `json:"url" mapstructure:"url"`
	Meetings []MeetingTime `json:"times" mapstructure:"meetings"`
}

// RoomState is a consistent snapshot of a room's metadata together with its
// current status and the time of the last status change. Snapshots are taken
// under the repository's lock, so status and last_changed are never observed
// as a torn pair.
type RoomState struct {
	Name        string        `json:"name"`
	URL         string        `json:"-"`
	Meetings    []MeetingTime `json:"times"`
	Status      Status        `json:"status"`
	LastChanged time.Time     `json:"last_changed"`
}
