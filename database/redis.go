package database

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"teamchat-client/config"

	"github.com/redis/go-redis/v9"
)

// RedisConnect opens one client per configured logical database.
// REDIS_DB is a comma-separated list, e.g. "0,1": 0 backs the persisted
// cache and session keys, 1 backs the socket.io adapter.
func RedisConnect() map[int]*redis.Client {
	clients := make(map[int]*redis.Client)

	for _, db := range strings.Split(config.Config("REDIS_DB"), ",") {
		dbNumber, _ := strconv.Atoi(db)

		clients[dbNumber] = redis.NewClient(&redis.Options{
			Addr: fmt.Sprintf(
				"%s:%s",
				config.Config("REDIS_HOST"),
				config.Config("REDIS_PORT"),
			),
			Password: config.Config("REDIS_PASSWORD"),
			DB:       dbNumber,
		})
	}

	log.Printf("Connections opened to Redis")
	return clients
}
