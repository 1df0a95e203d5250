package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/edumon/acrooms/internal/models"
)

// roomsFile is the shape of the rooms configuration file:
//
//	rooms:
//	  - name: cs101
//	    url: https://canvas.example.edu/courses/101/external_tools/42
//	    meetings:
//	      - day: Mon
//	        time: "10:00"
type roomsFile struct {
	Rooms []models.Room `mapstructure:"rooms"`
}

// LoadRooms reads the room list from the given config file. The path may
// omit the extension; any format viper understands works, YAML being the
// documented one.
func LoadRooms(path string) ([]models.Room, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read rooms config: %w", err)
	}

	var file roomsFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to parse rooms config: %w", err)
	}

	if len(file.Rooms) == 0 {
		return nil, fmt.Errorf("rooms config %s lists no rooms", path)
	}

	seen := make(map[string]struct{}, len(file.Rooms))
	for _, room := range file.Rooms {
		if room.Name == "" {
			return nil, fmt.Errorf("rooms config %s contains a room without a name", path)
		}
		if room.URL == "" {
			return nil, fmt.Errorf("room %q has no url", room.Name)
		}
		if _, dup := seen[room.Name]; dup {
			return nil, fmt.Errorf("room %q is listed twice", room.Name)
		}
		seen[room.Name] = struct{}{}
	}

	return file.Rooms, nil
}
