package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/mauv0809/commander-league/internal/database"
	"github.com/mauv0809/commander-league/internal/journal"
	"github.com/mauv0809/commander-league/internal/league"
	"github.com/mauv0809/commander-league/internal/metrics"
	"github.com/mauv0809/commander-league/internal/processor"
	"github.com/mauv0809/commander-league/internal/pubsub"
	"github.com/mauv0809/commander-league/internal/record"
	"github.com/mauv0809/commander-league/internal/store"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{"DB_NAME": "league.db"}
	required := []string{"STORE_BASE_URL"}

	for _, key := range required {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		} else {
			log.Fatalf("Error: Required environment variable %s is not set.", key)
		}
	}
	if value, ok := os.LookupEnv("DB_NAME"); ok {
		config["DB_NAME"] = value
	}
	return config
}

type seedPlayer struct {
	name  string
	decks []string
}

var seedPlayers = []seedPlayer{
	{name: "Seeder Player A", decks: []string{"Atraxa", "Krenko"}},
	{name: "Seeder Player B", decks: []string{"Kess", "Meren"}},
	{name: "Seeder Player C", decks: []string{"Rona", "Edgar Markov"}},
	{name: "Seeder Player D", decks: []string{"Yuriko", "Omnath"}},
}

const numMatches = 50

func main() {
	log.Info("Starting league seeder...")
	cfg := loadConfig()
	ctx := context.Background()

	db, teardown, err := database.InitDB(cfg["DB_NAME"], "", "")
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer teardown()

	st := store.NewClient(cfg["STORE_BASE_URL"], 10*time.Second)
	proc := processor.New(st, metrics.NewService(), pubsub.NewNoop(), journal.New(db))
	svc := league.New(st, proc)

	type seeded struct {
		id    string
		name  string
		decks []string
	}
	players := make([]seeded, 0, len(seedPlayers))
	for _, p := range seedPlayers {
		res := svc.CreatePlayer(ctx, record.Record{"name": p.name})
		if !res.OK {
			log.Fatalf("Failed to create player %s: %s", p.name, res.Message)
		}
		id, ok := store.KeyOf(res.Record, store.KindOf(store.Players))
		if !ok {
			log.Fatalf("Store returned player %s without a key", p.name)
		}
		for _, deck := range p.decks {
			res := svc.CreateDeck(ctx, record.Record{"name": deck, "playerId": id})
			if !res.OK {
				log.Fatalf("Failed to create deck %s: %s", deck, res.Message)
			}
		}
		players = append(players, seeded{id: id, name: p.name, decks: p.decks})
	}
	log.Info("Created seed players and decks.", "players", len(players))

	batch := uuid.NewString()
	log.Info("Preparing to record dummy matches...", "total", numMatches, "batch", batch)
	startTime := time.Now()

	failed := 0
	for i := 0; i < numMatches; i++ {
		matchTime := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour)
		winner := rand.Intn(len(players))
		tie := rand.Intn(20) == 0

		seats := make([]any, 0, len(players))
		for j, p := range players {
			result := "loss"
			switch {
			case tie:
				result = "tie"
			case j == winner:
				result = "win"
			}
			seats = append(seats, map[string]any{
				"playerId":   p.id,
				"playerName": p.name,
				"deck":       p.decks[rand.Intn(len(p.decks))],
				"result":     result,
			})
		}
		format := "Commander"
		if rand.Intn(4) == 0 {
			format = "Casual"
		}

		res := svc.CreateMatch(ctx, record.Record{
			"format":    format,
			"playedAt":  matchTime.Format(time.RFC3339),
			"seedBatch": batch,
			"seats":     seats,
		})
		if !res.OK {
			failed++
			log.Warn("Failed to record match", "index", i, "reason", res.Reason, "message", res.Message)
			continue
		}
		if (i+1)%10 == 0 {
			log.Info("Recorded matches", "completed", i+1, "total", numMatches)
		}
	}

	duration := time.Since(startTime)
	log.Info(fmt.Sprintf("Seeded %d matches.", numMatches-failed), "failed", failed, "duration", duration)
}
