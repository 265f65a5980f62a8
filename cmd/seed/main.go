package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"awards-backend/internal/domains/category/model"
	"awards-backend/pkg/container"
	"awards-backend/pkg/logger"
)

//go:embed launch_list.json
var launchList []byte

func main() {
	file := flag.String("file", "", "JSON launch list to seed instead of the built-in one")
	flag.Parse()

	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"), os.Getenv("LOG_LEVEL"))

	categories, err := loadLaunchList(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("[Seed] Failed to read launch list")
	}

	c, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("[Container] Failed to initialize")
	}
	defer c.Cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := c.CategoryService.Seed(ctx, categories); err != nil {
		log.Error().Err(err).Msg("[Seed] Failed")
		return
	}

	nominees := 0
	for _, cat := range categories {
		nominees += len(cat.Nominees)
	}
	log.Info().Int("categories", len(categories)).Int("nominees", nominees).Msg("[Seed] Done")
}

// loadLaunchList reads path, or the embedded list when path is empty
func loadLaunchList(path string) ([]model.SeedCategory, error) {
	raw := launchList
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		raw = b
	}

	var categories []model.SeedCategory
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, fmt.Errorf("decode launch list: %w", err)
	}
	for _, cat := range categories {
		if cat.ID == "" || cat.Title == "" {
			return nil, fmt.Errorf("category %q: id and title are required", cat.ID)
		}
	}
	return categories, nil
}
