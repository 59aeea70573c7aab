package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"teamchat-client/cache"
	"teamchat-client/call"
	"teamchat-client/config"
	"teamchat-client/controller"
	"teamchat-client/database"
	"teamchat-client/gateway"
	"teamchat-client/messenger"
	"teamchat-client/realtime"
	"teamchat-client/router"
	"teamchat-client/socketio"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	log.SetPrefix("teamchat-client: ")

	rest := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		StrictRouting:         true,
		AppName:               "teamchat-client",
	})

	rest.Use(cors.New())

	redisClients := database.RedisConnect()
	db := database.PostgresConnect()
	enforcer := database.Casbin(db)

	gw := gateway.NewPostgres(db)

	minutes, _ := strconv.Atoi(config.Config("CACHE_TTL_MINUTES"))
	if minutes <= 0 {
		minutes = 60
	}
	var store cache.Service
	if config.Config("CACHE_DRIVER") == "memory" {
		store = cache.NewMemory(time.Duration(minutes) * time.Minute)
	} else {
		store = cache.NewRedis(redisClients[0], time.Duration(minutes)*time.Minute)
	}

	userID := config.Config("DEVICE_USER_ID")

	broker := realtime.RabbitMQConnect(userID)
	broker.Consume()

	socket := socketio.Init(rest, redisClients[1])
	pusher := socketio.NewPusher(socket)

	calls := call.NewRegistry(pusher.CallHooks())
	broker.SubscribeCalls(calls.HandleEvent)

	registry := messenger.NewRegistry(messenger.Deps{
		UserID:   userID,
		Gateway:  gw,
		Stream:   broker,
		Cache:    store,
		Notifier: pusher,
	})

	ct := &controller.Controller{
		Gateway:  gw,
		Cache:    store,
		Registry: registry,
		Calls:    calls,
	}

	router.Rest(rest, ct, enforcer)
	router.Socket(socket, registry)

	go rest.Listen(fmt.Sprintf(":%s", config.Config("SERVER_PORT")))

	exit := make(chan struct{})
	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				close(exit)
				return
			}
		}
	}()

	<-exit
	registry.CloseAll()
	socket.Close(nil)
	broker.Close()
	os.Exit(0)
}
