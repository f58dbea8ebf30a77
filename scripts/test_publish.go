//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type Point struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type ClassificationJobEvent struct {
	JobID  uuid.UUID `json:"job_id"`
	Points []Point   `json:"points"`
}

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address")
	stream := flag.String("stream", "terrain:classification:jobs", "Target stream")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	// Проверка подключения
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	// Тестовое задание: по одной точке на каждую категорию
	event := ClassificationJobEvent{
		JobID: uuid.New(),
		Points: []Point{
			{Lat: 13.0827, Lon: 80.2707}, // Chennai - побережье
			{Lat: 27.9881, Lon: 86.925},  // Эверест - горы
			{Lat: 48.0, Lon: 68.0},       // Казахская степь - засушливые земли
			{Lat: 52.5, Lon: 30.0},       // Полесье - леса
			{Lat: 30.0, Lon: 31.0},       // Дельта Нила - равнины
		},
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	id, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: *stream,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Published job %s as message %s\n", event.JobID, id)

	// Ждём результат в стриме завершённых заданий
	fmt.Println("Waiting for result on terrain:classification:done ...")
	deadline := time.Now().Add(30 * time.Second)
	lastID := "$"

	for time.Now().Before(deadline) {
		res, err := client.XRead(ctx, &redis.XReadArgs{
			Streams: []string{"terrain:classification:done", lastID},
			Count:   1,
			Block:   5 * time.Second,
		}).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			log.Fatalf("Failed to read result: %v", err)
		}

		for _, s := range res {
			for _, msg := range s.Messages {
				fmt.Printf("Result message %s:\n%s\n", msg.ID, msg.Values["data"])
				return
			}
		}
	}

	fmt.Println("No result received within 30s")
}
