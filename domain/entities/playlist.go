package entities

import "time"

// Playlist is a named list of search queries stored per guild
type Playlist struct {
	ID        int64     `db:"id"`
	GuildID   int64     `db:"guild_id"`
	Name      string    `db:"name"`
	Songs     []string  `db:"songs"`
	CreatedBy int64     `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
}

// MoodPlaylists are the built-in playlists for !moodplay
var MoodPlaylists = map[string][]string{
	"happy": {
		"Mr. Blue Sky ELO",
		"Happy Pharrell Williams",
		"Walking on Sunshine Katrina & The Waves",
		"Don't Stop Believin' Journey",
		"I Wanna Dance with Somebody Whitney Houston",
	},
	"sad": {
		"Someone Like You Adele",
		"Say Something A Great Big World",
		"All By Myself Celine Dion",
		"Yesterday The Beatles",
		"The Sound of Silence Simon & Garfunkel",
	},
	"study": {
		"lofi hip hop mix",
		"classical piano study music",
		"ambient study beats",
		"concentration music",
		"study with me playlist",
	},
	"workout": {
		"Eye of the Tiger Survivor",
		"Stronger Kanye West",
		"Till I Collapse Eminem",
		"Thunderstruck AC/DC",
		"All I Do Is Win DJ Khaled",
	},
	"party": {
		"Uptown Funk Bruno Mars",
		"Can't Stop the Feeling Justin Timberlake",
		"I Wanna Dance with Somebody Whitney Houston",
		"Dancing Queen ABBA",
		"Shake It Off Taylor Swift",
	},
}

// MoodNames lists the moods in display order
var MoodNames = []string{"happy", "sad", "study", "workout", "party"}
