// intelwatch tails the intel fan-out queue and prints each accepted
// item as a JSON line, for piping into notification tooling or just
// watching the stream during development.
package main

import (
	"encoding/json"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/arbitrum1984/Arbitron-Systems/db"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	if err := db.ConnectRedis(); err != nil || db.Redis == nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	encoder := json.NewEncoder(os.Stdout)

	for {
		msg, err := db.PopFromQueue(db.IntelQueueKey, 30*time.Second)
		if err == redis.Nil {
			continue
		}
		if err != nil {
			slog.Error("error popping from intel queue", "error", err)
			time.Sleep(5 * time.Second)
			continue
		}

		encoder.Encode(map[string]string{
			"received_at": time.Now().Format(time.RFC3339),
			"message":     msg,
		})
	}
}
