// Package main provides the Ask Joule CLI application entry point.
// Ask Joule is a natural-language command engine for heat pump and
// thermostat control, with local dispatch first and an LLM fallback.
package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"joule/internal/commands"
	"joule/internal/logger"
	"joule/internal/orchestration"
	"joule/internal/services"
	"joule/internal/version"
	"joule/pkg/jouletypes"
)

var (
	logLevel string
	logFile  string
	testMode bool
	dataDir  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "joule",
	Short: "Ask Joule - natural-language thermostat and heat pump assistant",
	Long: `Ask Joule interprets plain-English thermostat commands and HVAC questions.
Setting changes, diagnostics, and engineering math run locally; open-ended
questions fall through to an LLM with your system data as context.`,
	Run: runRepl,
}

// askCmd answers a single question and exits, for scripting.
var askCmd = &cobra.Command{
	Use:   "ask <question>",
	Short: "Answer one question and exit",
	Args:  cobra.MinimumNArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		app, err := buildApp()
		if err != nil {
			logger.Fatal("Failed to initialize services", "error", err)
		}
		app.handle(strings.Join(args, " "))
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println(version.GetFormattedVersion())
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().BoolVar(&testMode, "test-mode", false, "Run in deterministic test mode")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory for settings and uploaded data [default: ~/.joule]")

	if err := viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-level flag: %v\n", err)
		os.Exit(1)
	}
	if err := viper.BindPFlag("log-file", rootCmd.PersistentFlags().Lookup("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding log-file flag: %v\n", err)
		os.Exit(1)
	}

	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(versionCmd)

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(logLevel, logFile, testMode); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}

// app bundles the wired controller with the terminal renderer.
type app struct {
	controller *orchestration.Controller
	render     *services.RenderService
}

// buildApp wires every service, the dispatcher, and the controller.
// API keys can come from a .env file alongside stored preferences.
func buildApp() (*app, error) {
	_ = godotenv.Load()

	dir := dataDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve home directory: %w", err)
		}
		dir = filepath.Join(home, ".joule")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	settings := services.NewSettingsService(filepath.Join(dir, "settings.json"))
	prefs := services.NewPreferenceService(filepath.Join(dir, "preferences.json"))
	thermostat := services.NewThermostatService(filepath.Join(dir, "thermostat.yaml"))
	diagnostics := services.NewDiagnosticsService(filepath.Join(dir, "diagnostics.json"))
	analysis := services.NewAnalysisService(filepath.Join(dir, "analysis.json"), thermostat)
	history := services.NewHistoryService()
	audit := services.NewAuditService(func(key string, value interface{}) error {
		return settings.Set(key, value, "Undo", "Reverted via audit trail")
	})
	knowledge := services.NewKnowledgeService()
	sales := services.NewSalesService()
	factory := services.NewClientFactory()
	agent := services.NewAgentService(factory, knowledge, sales, diagnostics, thermostat)
	render := services.NewRenderService(prefs)

	registry := services.NewRegistry()
	for _, svc := range []jouletypes.Service{
		settings, prefs, thermostat, diagnostics, analysis,
		history, audit, knowledge, sales, agent, render,
	} {
		if err := registry.RegisterService(svc); err != nil {
			return nil, err
		}
	}
	if err := registry.InitializeAll(); err != nil {
		return nil, err
	}

	dispatcher := commands.NewDispatcher(commands.Config{
		Settings:    settings,
		Thermostat:  thermostat,
		Prefs:       prefs,
		Diagnostics: diagnostics,
		Analysis:    analysis,
		Offline:     orchestration.NewDeviceOfflineResolver(nil, settings),
		Undo:        audit.UndoLast,
	})

	controller := orchestration.NewController(orchestration.Config{
		Dispatcher: dispatcher,
		Settings:   settings,
		Prefs:      prefs,
		History:    history,
		Audit:      audit,
		Agent:      agent,
		Sales:      sales,
		Location:   analysis,
	})

	return &app{controller: controller, render: render}, nil
}

func runRepl(_ *cobra.Command, _ []string) {
	logger.Info("Starting Ask Joule", "version", version.GetVersion())

	app, err := buildApp()
	if err != nil {
		logger.Fatal("Failed to initialize services", "error", err)
	}

	fmt.Println(version.GetFormattedVersion())
	fmt.Println(`Ask about your system, or try "help". Type "exit" to quit.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("joule> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "exit" || line == "quit" {
			break
		}
		app.handle(line)
	}
}

// handle submits one utterance and prints the outcome.
func (a *app) handle(input string) {
	var res orchestration.Result
	if strings.EqualFold(input, "retry") {
		res = a.controller.Retry()
	} else {
		res = a.controller.Submit(input)
	}
	if res.Message == "" {
		return
	}

	if res.NeedsAPIKey {
		fmt.Println(a.render.Error("Groq API key missing."))
		fmt.Println(`Say "set groq api key to gsk_..." or put GROQ_API_KEY in your environment, then "retry".`)
		return
	}

	switch res.Status {
	case jouletypes.StatusError:
		fmt.Println(a.render.Error(res.Message))
	case jouletypes.StatusWarning:
		fmt.Println(a.render.Warning(res.Message))
	case jouletypes.StatusSuccess:
		if res.Source == "agent" {
			if rendered, err := a.render.RenderMarkdown(res.Message); err == nil {
				fmt.Print(rendered)
				return
			}
		}
		fmt.Println(a.render.Success(res.Message))
	default:
		fmt.Println(a.render.Info(res.Message))
	}
}
