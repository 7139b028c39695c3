package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"joseki/internal/domain/game"
)

func main() {
	if len(os.Args) <= 1 {
		fmt.Fprintln(os.Stderr, "Usage: joseki <filename>")
		return
	}

	logger := NewLogger()
	defer func() { _ = logger.Sync() }()

	play, err := load(os.Args[1])
	if err != nil {
		logger.Fatalw("failed to load game record", "path", os.Args[1], zap.Error(err))
	}

	fmt.Println(play)
}

func load(path string) (*game.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return game.FromSGF(string(data))
}

func NewLogger() *zap.SugaredLogger {
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	return logger.Sugar()
}
