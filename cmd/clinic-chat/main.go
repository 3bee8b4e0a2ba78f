// Command clinic-chat is an interactive terminal chat with the
// Good Health Clinic assistant.
//
// The OpenAI credential is read from OPENAI_API_KEY (a .env file in the
// working directory is loaded if present). Conversation and profile
// storage default to in-memory; point them at SQLite files via the
// config file to keep a conversation across restarts.
//
// Usage:
//
//	clinic-chat [-config clinic.yaml] [-thread 1] [-patient 1]
//
// In-session commands: /profile prints the stored patient profile,
// /reset forgets the conversation, /quit exits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/goodhealth/clinicgraph/pkg/clinic"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/checkpoint"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/config"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/llm"
	"github.com/goodhealth/clinicgraph/pkg/clinicgraph/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to a YAML or JSON config file")
	threadID := flag.String("thread", "1", "conversation thread ID")
	patientID := flag.String("patient", "1", "patient ID for profile storage")
	model := flag.String("model", "", "override the chat model")
	flag.Parse()

	// Optional .env next to the binary, matching local development habits.
	_ = godotenv.Load()

	cfg := config.New(nil)
	if *configPath != "" {
		loaded, err := config.FromFile(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := newLogger(cfg.String("log_level", "info"))

	modelName := cfg.String("model", llm.DefaultModel)
	if *model != "" {
		modelName = *model
	}

	client, err := llm.NewOpenAIClient("",
		llm.WithModel(modelName),
		llm.WithTemperature(float32(cfg.Float("temperature", 0))),
	)
	if err != nil {
		return err
	}

	checkpoints, err := newCheckpointStore(cfg.String("checkpoint_path", ""))
	if err != nil {
		return err
	}
	profiles, err := newProfileStore(cfg.String("profile_path", ""))
	if err != nil {
		return err
	}

	assistant, err := clinic.New(client,
		clinic.WithClinicName(cfg.String("clinic_name", clinic.DefaultClinicName)),
		clinic.WithCheckpointStore(checkpoints),
		clinic.WithProfileStore(profiles),
		clinic.WithLogger(logger),
	)
	if err != nil {
		return err
	}
	defer assistant.Close()

	session := clinic.Session{ThreadID: *threadID, PatientID: *patientID}

	fmt.Printf("%s assistant. /profile shows your record, /reset starts over, /quit exits.\n",
		cfg.String("clinic_name", clinic.DefaultClinicName))

	return chatLoop(assistant, session)
}

// chatLoop reads patient messages from stdin until EOF or /quit.
func chatLoop(assistant *clinic.Assistant, session clinic.Session) error {
	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			fmt.Println()
			return scanner.Err()
		}

		text := strings.TrimSpace(scanner.Text())
		switch {
		case text == "":
			continue
		case text == "/quit":
			return nil
		case text == "/reset":
			if err := assistant.Reset(session.ThreadID); err != nil {
				return err
			}
			fmt.Println("conversation forgotten")
			continue
		case text == "/profile":
			profile, err := assistant.Profile(ctx, session.PatientID)
			if errors.Is(err, clinic.ErrNoProfile) {
				fmt.Println("no profile stored yet")
				continue
			}
			if err != nil {
				return err
			}
			fmt.Println(profile)
			continue
		}

		reply, err := assistant.Send(ctx, session, text)
		if err != nil {
			return err
		}
		fmt.Printf("assistant> %s\n", reply)
	}
}

// newLogger builds a text logger to stderr at the configured level.
func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}

// newCheckpointStore returns a SQLite store when a path is configured,
// otherwise an in-memory store.
func newCheckpointStore(path string) (checkpoint.Store, error) {
	if path == "" {
		return checkpoint.NewMemoryStore(), nil
	}
	return checkpoint.NewSQLiteStore(path)
}

// newProfileStore returns a SQLite store when a path is configured,
// otherwise an in-memory store.
func newProfileStore(path string) (store.Store, error) {
	if path == "" {
		return store.NewMemoryStore(), nil
	}
	return store.NewSQLiteStore(path)
}
