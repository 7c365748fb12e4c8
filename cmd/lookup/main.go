package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/mfreitas/clima-api/internal/app"
	"github.com/mfreitas/clima-api/internal/config"
	"github.com/mfreitas/clima-api/internal/geocode"
	"github.com/mfreitas/clima-api/internal/locate"
	"github.com/mfreitas/clima-api/internal/model"
	"github.com/mfreitas/clima-api/internal/position"
	"github.com/mfreitas/clima-api/internal/suggest"
	"github.com/mfreitas/clima-api/internal/weather"
	"go.uber.org/zap"
)

// Interactive terminal client: type part of a city name to get
// suggestions, pick one by number to fetch the forecast, or use /gps
// to resolve the current position.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	geocoder := geocode.NewClient(cfg.Geocode)
	fetcher := weather.NewClient(cfg.Weather)
	source := position.NewIPSource(cfg.Position)

	suggestions := suggest.NewPipeline(geocoder, cfg.Suggest, logger, printSuggestions)
	defer suggestions.Stop()
	locator := locate.NewPipeline(source, geocoder, logger)
	orchestrator := app.NewOrchestrator(fetcher, nil, logger)

	ctx := context.Background()

	fmt.Println("Digite parte do nome de uma cidade, o número de uma sugestão,")
	fmt.Println("/gps para usar sua localização ou /sair para encerrar.")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "/sair":
			return
		case line == "/gps":
			result, err := locator.Resolve(ctx)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("Localização: %s\n", result.Location)
			fetch(ctx, orchestrator, result.Location, "geolocation")
		case isIndex(line):
			n, _ := strconv.Atoi(line)
			list := suggestions.Suggestions()
			if n < 1 || n > len(list) {
				fmt.Println("Sugestão inválida")
				continue
			}
			location, ok := suggestions.Select(list[n-1])
			if !ok {
				fmt.Println("Sugestão sem cidade ou estado")
				continue
			}
			fetch(ctx, orchestrator, location, "typed")
		default:
			suggestions.Input(ctx, line)
		}
	}

	if err := scanner.Err(); err != nil {
		logger.Fatal("Failed to read input", zap.Error(err))
	}
}

func isIndex(line string) bool {
	_, err := strconv.Atoi(line)
	return err == nil
}

func printSuggestions(list []model.Suggestion) {
	if len(list) == 0 {
		return
	}
	fmt.Println()
	for i, s := range list {
		fmt.Printf("  [%d] %s\n", i+1, s.DisplayName)
	}
	fmt.Print("> ")
}

func fetch(ctx context.Context, orchestrator *app.Orchestrator, location, source string) {
	snapshot, err := orchestrator.Submit(ctx, location, source)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("\n%s\n", snapshot.Address)
	fmt.Printf("  %d°C, %s\n", snapshot.Temperature, snapshot.Condition)
	fmt.Printf("  Vento %d km/h · Chuva %d%% · Umidade %d%%\n",
		snapshot.WindSpeed, snapshot.Precipitation, snapshot.Humidity)
	if len(snapshot.Hourly) > 0 {
		fmt.Println("  Próximas horas:")
		for _, h := range snapshot.Hourly {
			fmt.Printf("    %s  %d°C  %s\n", h.Time, h.Temperature, h.Condition)
		}
	}
}
