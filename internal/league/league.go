package league

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/commander-league/internal/favorites"
	"github.com/mauv0809/commander-league/internal/identity"
	"github.com/mauv0809/commander-league/internal/match"
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/stats"
	"github.com/mauv0809/commander-league/internal/store"
)

const msgStoreFailed = "Could not reach the league store. Please try again."

func New(store store.Store, reconciler Reconciler) *Service {
	return &Service{store: store, reconciler: reconciler}
}

// CreateMatch stores a match and adds its statistics to the players and decks
// it names.
func (s *Service) CreateMatch(ctx context.Context, rec record.Record) Result {
	if msg, ok := validateMatch(rec); !ok {
		return invalid(msg)
	}

	created, err := s.store.Create(ctx, store.Matches, rec)
	if err != nil {
		log.Error("Failed to create match", "error", err)
		return failure(ReasonStore, msgStoreFailed)
	}
	stored := merge(rec, created)

	report, err := s.reconciler.Apply(ctx, match.Normalize(stored))
	if err != nil {
		return reconcileFailure("The match was saved, but its statistics were not fully applied.", err, stored, report)
	}
	return Result{OK: true, Message: "Match recorded.", Record: stored, Report: &report}
}

// DeleteMatch removes a match and reverts its statistics. Counters never go
// below zero.
func (s *Service) DeleteMatch(ctx context.Context, key string) Result {
	if key == "" {
		return invalid("match: a key is required")
	}

	rec, err := s.store.Get(ctx, store.Matches, key)
	if errors.Is(err, store.ErrNotFound) {
		return failure(ReasonNotFound, fmt.Sprintf("Match %s does not exist.", key))
	}
	if err != nil {
		log.Error("Failed to fetch match", "key", key, "error", err)
		return failure(ReasonStore, msgStoreFailed)
	}
	if err := s.store.Delete(ctx, store.Matches, key); err != nil {
		log.Error("Failed to delete match", "key", key, "error", err)
		return failure(ReasonStore, msgStoreFailed)
	}

	m := match.Normalize(rec)
	if m.ID == "" {
		m.ID = key
	}
	report, err := s.reconciler.Rollback(ctx, m)
	if err != nil {
		return reconcileFailure("The match was deleted, but its statistics were not fully reverted.", err, rec, report)
	}
	return Result{OK: true, Message: "Match deleted.", Record: rec, Report: &report}
}

// PreviewMatch returns what recording a match would change, without writing.
func (s *Service) PreviewMatch(ctx context.Context, rec record.Record) Result {
	if msg, ok := validateMatch(rec); !ok {
		return invalid(msg)
	}
	report, err := s.reconciler.Preview(ctx, match.Normalize(rec), processor.DirectionApply)
	if err != nil {
		log.Error("Failed to preview match", "error", err)
		return failure(ReasonStore, msgStoreFailed)
	}
	return Result{OK: true, Message: "Preview computed.", Record: rec, Report: &report}
}

// CreatePlayer stores a new player with all counters at zero.
func (s *Service) CreatePlayer(ctx context.Context, rec record.Record) Result {
	if _, ok := rec.Text(identity.Player.NameKeys); !ok {
		return invalid("name: a player needs a name")
	}
	return s.create(ctx, store.Players, rec, "Player created.")
}

// CreateDeck stores a new deck with all counters at zero. A deck always
// belongs to a player.
func (s *Service) CreateDeck(ctx context.Context, rec record.Record) Result {
	if _, ok := rec.Text(identity.Deck.NameKeys); !ok {
		return invalid("name: a deck needs a name")
	}
	if _, ok := identity.Resolve(rec, identity.Owner); !ok {
		return invalid("owner: a deck needs an owning player")
	}
	return s.create(ctx, store.Decks, rec, "Deck created.")
}

func (s *Service) create(ctx context.Context, c store.Collection, rec record.Record, msg string) Result {
	payload := stats.Counters{}.Write(rec)
	created, err := s.store.Create(ctx, c, payload)
	if err != nil {
		log.Error("Failed to create record", "collection", c, "error", err)
		return failure(ReasonStore, msgStoreFailed)
	}
	return Result{OK: true, Message: msg, Record: merge(payload, created)}
}

// Favorites computes every player's most played deck from the match history.
func (s *Service) Favorites(ctx context.Context) (favorites.Favorites, error) {
	recs, err := s.store.List(ctx, store.Matches)
	if err != nil {
		return favorites.Favorites{}, fmt.Errorf("failed to list matches: %w", err)
	}
	return favorites.Build(match.NormalizeAll(recs)), nil
}

// SuggestDeck returns the deck a player uses most. The key is a numeric id or
// a display name.
func (s *Service) SuggestDeck(ctx context.Context, key string) (string, bool, error) {
	id := identityFromKey(key)
	rec, err := s.store.Get(ctx, store.Players, key)
	switch {
	case err == nil:
		// Seats may name the player by id or by display name; match either.
		if stored, ok := identity.Resolve(rec, identity.Player); ok {
			id = stored
		}
	case !errors.Is(err, store.ErrNotFound):
		return "", false, fmt.Errorf("failed to get player %s: %w", key, err)
	}

	favs, err := s.Favorites(ctx)
	if err != nil {
		return "", false, err
	}
	deck, ok := favs.For(id)
	return deck, ok, nil
}

// WinPercentage returns wins over all recorded games of a player, in percent.
func (s *Service) WinPercentage(ctx context.Context, key string) (float64, error) {
	rec, err := s.store.Get(ctx, store.Players, key)
	if err != nil {
		return 0, fmt.Errorf("failed to get player %s: %w", key, err)
	}
	return stats.ReadCounters(rec).WinPercentage(), nil
}

// Standings lists every player ordered by win percentage, then wins, then name.
func (s *Service) Standings(ctx context.Context) ([]Standing, error) {
	players, err := s.store.List(ctx, store.Players)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	favs, err := s.Favorites(ctx)
	if err != nil {
		// The table is still useful without deck suggestions.
		log.Warn("Standings without favorite decks", "error", err)
	}

	out := make([]Standing, 0, len(players))
	for _, rec := range players {
		key, ok := store.KeyOf(rec, identity.Player)
		if !ok {
			continue
		}
		id, _ := identity.Resolve(rec, identity.Player)
		c := stats.ReadCounters(rec)
		st := Standing{
			Key:           key,
			Name:          id.String(),
			Counters:      c,
			Games:         c.Games(),
			WinPercentage: c.WinPercentage(),
		}
		st.FavoriteDeck, _ = favs.For(id)
		out = append(out, st)
	}
	slices.SortStableFunc(out, func(a, b Standing) int {
		if c := cmp.Compare(b.WinPercentage, a.WinPercentage); c != 0 {
			return c
		}
		if c := cmp.Compare(b.Counters.Wins, a.Counters.Wins); c != 0 {
			return c
		}
		return cmp.Compare(identity.Normalize(a.Name), identity.Normalize(b.Name))
	})
	return out, nil
}

// Player finds one row of the standings by key or case-insensitive name.
func (s *Service) Player(ctx context.Context, query string) (Standing, bool, error) {
	rows, err := s.Standings(ctx)
	if err != nil {
		return Standing{}, false, err
	}
	want := identity.Normalize(query)
	for _, row := range rows {
		if row.Key == query || identity.Normalize(row.Name) == want {
			return row, true, nil
		}
	}
	return Standing{}, false, nil
}

func validateMatch(rec record.Record) (string, bool) {
	if len(rec) == 0 {
		return "match: a match record is required", false
	}
	m := match.Normalize(rec)
	for _, seat := range m.Seats {
		if seat.HasPlayer {
			return "", true
		}
	}
	return "seats: a match needs at least one identifiable player", false
}

func identityFromKey(key string) identity.Identity {
	if n, err := strconv.ParseInt(key, 10, 64); err == nil {
		return identity.FromID(n)
	}
	return identity.FromName(key)
}

// merge overlays what the store answered on top of what was sent, so a store
// that only echoes the new id still yields a complete record.
func merge(sent, answered record.Record) record.Record {
	out := sent.Clone()
	for k, v := range answered {
		out[k] = v
	}
	return out
}

func invalid(msg string) Result {
	return Result{Reason: ReasonValidation, Message: msg}
}

func failure(reason FailureReason, msg string) Result {
	return Result{Reason: reason, Message: msg}
}

func reconcileFailure(msg string, err error, rec record.Record, report processor.Report) Result {
	log.Error("Reconciliation failed", "passID", report.PassID, "matchID", report.MatchID, "error", err)
	reason := ReasonReconcile
	if errors.Is(err, processor.ErrSnapshot) {
		reason = ReasonStore
	}
	return Result{Reason: reason, Message: msg, Record: rec, Report: &report}
}
