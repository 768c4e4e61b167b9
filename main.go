package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/tsaglam/microsim-go/config"
	"github.com/tsaglam/microsim-go/scenario"
	"github.com/tsaglam/microsim-go/simulator"
)

var (
	scenarioPath = flag.String("scenario", "", "scenario JSON file path")
	outputPath   = flag.String("output", "", "result JSON output path (default: stdout)")
	steps        = flag.Int("steps", 0, "number of ticks to simulate (overrides config's control.step if set)")
	configPath   = flag.String("config", "", "run config YAML file path")

	logLevels = map[string]logrus.Level{
		"trace": logrus.TraceLevel,
		"debug": logrus.DebugLevel,
		"info":  logrus.InfoLevel,
		"warn":  logrus.WarnLevel,
		"error": logrus.ErrorLevel,
		"off":   logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "log level: trace debug info warn error off")

	log = logrus.WithField("component", "main")
)

func main() {
	flag.Parse()
	logrus.SetFormatter(&lineFormatter{TimestampFormat: "2006-01-02 15:04:05.000"})
	level, ok := logLevels[*logLevel]
	if !ok {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	logrus.SetLevel(level)

	if *scenarioPath == "" {
		log.Panic("-scenario is required")
	}
	if *configPath == "" {
		log.Panic("-config is required")
	}

	rc, err := config.Load(*configPath)
	if err != nil {
		log.Panicf("config load: %v", err)
	}
	if *steps > 0 {
		rc.Control.Step = *steps
	}

	scenarioFile, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Panicf("scenario load: %v", err)
	}
	loaded, err := scenario.Load(scenarioFile)
	if err != nil {
		log.Panicf("scenario build: %v", err)
	}
	log.Infof("loaded scenario: %d junctions, %d streets, %d vehicles",
		len(loaded.Network.Junctions()), len(loaded.Network.Streets()), len(loaded.Network.Vehicles()))

	sim, err := simulator.New(loaded.Network, rc.Control)
	if err != nil {
		log.Panicf("simulator init: %v", err)
	}

	ctx := context.Background()
	if err := sim.Run(ctx, rc.Control.Step); err != nil {
		log.Panicf("simulation run: %v", err)
	}

	result := scenario.BuildResult(loaded, sim.World, rc.Control.Step)
	if err := writeResult(*outputPath, result); err != nil {
		log.Panicf("result write: %v", err)
	}
}

func loadScenario(path string) (*scenario.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f scenario.File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func writeResult(path string, result scenario.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0644)
}
