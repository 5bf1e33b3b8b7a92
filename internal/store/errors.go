package store

import "errors"

// ErrSongNotFound is returned by GetSong/DeleteSong when the song id does
// not resolve to an existing record — including after Clear, or after a
// prior DeleteSong.
var ErrSongNotFound = errors.New("store: song not found")
