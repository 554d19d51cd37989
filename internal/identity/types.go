package identity

import "github.com/mauv0809/commander-league/internal/record"

// Kind describes where a given kind of record keeps its identity. The key
// lists are plain data so the spellings can be tested on their own.
type Kind struct {
	Name     string
	IDKeys   record.Keys
	NameKeys record.Keys
}

// Identity is the resolved identity of a player, deck or seat. Name keeps its
// display casing; comparisons go through Key and NameKey.
type Identity struct {
	ID    int64
	HasID bool
	Name  string
}

var (
	Player = Kind{
		Name:     "player",
		IDKeys:   record.Keys{"id", "playerID", "playerId", "player_id", "ID", "Id"},
		NameKeys: record.Keys{"name", "playerName", "player_name", "displayName", "Name"},
	}
	Deck = Kind{
		Name:     "deck",
		IDKeys:   record.Keys{"id", "deckID", "deckId", "deck_id", "ID", "Id"},
		NameKeys: record.Keys{"name", "deckName", "deck_name", "commander", "Name"},
	}
	// Seat reads the participant of one seat in a match's seats list.
	Seat = Kind{
		Name:     "seat",
		IDKeys:   record.Keys{"playerId", "playerID", "player_id", "player"},
		NameKeys: record.Keys{"playerName", "player_name", "player", "name", "displayName"},
	}
	// Primary reads the designated primary player of a match record.
	Primary = Kind{
		Name:     "primary",
		IDKeys:   record.Keys{"playerId", "playerID", "player_id"},
		NameKeys: record.Keys{"playerName", "player_name", "player"},
	}
	// Owner reads the owning player reference of a deck.
	Owner = Kind{
		Name:     "owner",
		IDKeys:   record.Keys{"playerId", "playerID", "player_id", "ownerId", "ownerID", "owner_id"},
		NameKeys: record.Keys{"playerName", "player_name", "ownerName", "owner_name", "owner"},
	}
)
