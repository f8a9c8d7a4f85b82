package catalog

import "github.com/pibox/musicd/internal/domain/track"

// DefaultLocalTracks returns the built-in local track table, used when the
// configuration does not define its own.
func DefaultLocalTracks() []track.Track {
	return []track.Track{
		{Locator: "/usr/share/music/RunitUp.mp3", Title: "Run It Up", Artist: "Hanumankind"},
		{Locator: "/usr/share/music/BeatIt.mp3", Title: "Beat It", Artist: "Michael Jackson"},
		{Locator: "/usr/share/music/ShapeofYou.mp3", Title: "Shape of You", Artist: "Ed Sheeran"},
		{Locator: "/usr/share/music/Gasolina.mp3", Title: "Gasolina", Artist: "Daddy Yankee"},
		{Locator: "/usr/share/music/RapGod.mp3", Title: "Rap God", Artist: "Eminem"},
	}
}

// DefaultRemoteTracks returns the built-in stream track table.
func DefaultRemoteTracks() []track.Track {
	return []track.Track{
		{Locator: "https://prudhvibelide.github.io/cloud-music-list/songs/Starboy.mp3", Title: "Starboy", Artist: "The Weeknd"},
		{Locator: "https://prudhvibelide.github.io/cloud-music-list/songs/FEIN.mp3", Title: "FE!N", Artist: "Travis Scott"},
		{Locator: "https://prudhvibelide.github.io/cloud-music-list/songs/HeatWaves.mp3", Title: "Heat Waves", Artist: "Glass Animals"},
		{Locator: "https://prudhvibelide.github.io/cloud-music-list/songs/Sorry.mp3", Title: "Sorry", Artist: "Justin Bieber"},
		{Locator: "https://prudhvibelide.github.io/cloud-music-list/songs/STAY.mp3", Title: "STAY", Artist: "The Kid LAROI & Justin Bieber"},
	}
}
