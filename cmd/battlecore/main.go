// Command battlecore is the demo CLI entrypoint (spec §6.5): it wires
// every internal package together and runs one simulated decision
// end-to-end, grounded on the cmd/l1jgo/main.go wiring style
// (load config, init logger, print a startup banner, build
// dependencies bottom-up, run). The real Pokemon Showdown websocket
// connection is an external collaborator per spec §1/§6 and is not
// implemented here; this binary demonstrates the wiring with a
// synthetic battle and a fake rollout engine instead.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/l1jgo/battlecore/internal/config"
	"github.com/l1jgo/battlecore/internal/data"
	"github.com/l1jgo/battlecore/internal/dataset"
	"github.com/l1jgo/battlecore/internal/inference"
	"github.com/l1jgo/battlecore/internal/interpreter"
	"github.com/l1jgo/battlecore/internal/model"
	"github.com/l1jgo/battlecore/internal/protocolfmt"
	"github.com/l1jgo/battlecore/internal/reconcile"
	"github.com/l1jgo/battlecore/internal/rollout"
	"github.com/l1jgo/battlecore/internal/sampler"
	"github.com/l1jgo/battlecore/internal/search"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// flags holds the parsed CLI surface of spec §6.5. Network flags
// (websocket URI, credentials, challenge target) are recorded but
// never dialed, matching the Non-goal that transport/login are an
// external collaborator's job.
type flags struct {
	websocketURI      string
	psUsername        string
	psPassword        string
	psAvatar          string
	botMode           string
	pokemonFormat     string
	userToChallenge   string
	smogonStatsFormat string
	searchTimeMs      int
	searchParallelism int
	runCount          int
	teamName          string
	teamList          string
	saveReplay        string
	roomName          string
	logLevel          string
	logToFile         string
	configPath        string
}

var validBotModes = map[string]bool{
	"challenge_user":  true,
	"accept_challenge": true,
	"search_ladder":   true,
}

var validSaveReplay = map[string]bool{
	"always": true, "never": true, "on_loss": true, "on_win": true,
}

func parseFlags(args []string) (*flags, error) {
	fs := flag.NewFlagSet("battlecore", flag.ContinueOnError)
	f := &flags{}
	fs.StringVar(&f.websocketURI, "websocket-uri", "", "Pokemon Showdown websocket URI (required)")
	fs.StringVar(&f.psUsername, "ps-username", "", "Showdown account username (required)")
	fs.StringVar(&f.psPassword, "ps-password", "", "Showdown account password")
	fs.StringVar(&f.psAvatar, "ps-avatar", "", "Showdown avatar name")
	fs.StringVar(&f.botMode, "bot-mode", "", "challenge_user|accept_challenge|search_ladder (required)")
	fs.StringVar(&f.pokemonFormat, "pokemon-format", "", "battle format, e.g. gen9randombattle (required)")
	fs.StringVar(&f.userToChallenge, "user-to-challenge", "", "target username for challenge_user mode")
	fs.StringVar(&f.smogonStatsFormat, "smogon-stats-format", "", "format name for the statistics dataset, defaults to --pokemon-format")
	fs.IntVar(&f.searchTimeMs, "search-time-ms", 100, "per-decision search time budget in milliseconds")
	fs.IntVar(&f.searchParallelism, "search-parallelism", 1, "rollout worker concurrency")
	fs.IntVar(&f.runCount, "run-count", 1, "number of simulated decisions to run")
	fs.StringVar(&f.teamName, "team-name", "", "named team to bring")
	fs.StringVar(&f.teamList, "team-list", "", "path to a packed team file")
	fs.StringVar(&f.saveReplay, "save-replay", "never", "always|never|on_loss|on_win")
	fs.StringVar(&f.roomName, "room-name", "", "battle room tag")
	fs.StringVar(&f.logLevel, "log-level", "info", "zap log level")
	fs.StringVar(&f.logToFile, "log-to-file", "", "path to also write logs to, in addition to stderr")
	fs.StringVar(&f.configPath, "config", "", "optional battlecore.toml path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if f.websocketURI == "" || f.psUsername == "" || f.botMode == "" || f.pokemonFormat == "" {
		return nil, fmt.Errorf("--websocket-uri, --ps-username, --bot-mode, and --pokemon-format are all required")
	}
	if !validBotModes[f.botMode] {
		return nil, fmt.Errorf("--bot-mode %q is not one of challenge_user, accept_challenge, search_ladder", f.botMode)
	}
	if !validSaveReplay[f.saveReplay] {
		return nil, fmt.Errorf("--save-replay %q is not one of always, never, on_loss, on_win", f.saveReplay)
	}
	if f.smogonStatsFormat == "" {
		f.smogonStatsFormat = f.pokemonFormat
	}
	return f, nil
}

func printBanner() {
	fmt.Println()
	fmt.Println("  ┌───────────────────────────────────────────┐")
	fmt.Println("  │              battlecore  v0.1.0            │")
	fmt.Println("  │   Showdown battle-state & search driver    │")
	fmt.Println("  └───────────────────────────────────────────┘")
	fmt.Println()
}

func printSection(title string) {
	fmt.Printf("  ── %s %s\n", title, strings.Repeat("─", 40-len(title)))
}

func printOK(msg string) { fmt.Printf("  ✓ %s\n", msg) }

func run() error {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}

	cfg, err := config.Load(f.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.searchTimeMs > 0 {
		cfg.Search.TimeMs = f.searchTimeMs
	}
	if f.searchParallelism > 0 {
		cfg.Search.Parallelism = f.searchParallelism
	}
	cfg.Logging.Level = f.logLevel

	log, err := newLogger(cfg.Logging, f.logToFile)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()
	fmt.Printf("  mode: %s  format: %s  room: %s\n\n", f.botMode, f.pokemonFormat, f.roomName)

	printSection("static data")
	genTable, err := data.LoadGenerationTable("data/yaml/generation_quirks.yaml")
	if err != nil {
		return fmt.Errorf("load generation table: %w", err)
	}
	printOK(fmt.Sprintf("generation quirks loaded (%d entries)", genTable.Count()))

	effTable, err := data.LoadEffectivenessTable("data/yaml/type_effectiveness.yaml")
	if err != nil {
		return fmt.Errorf("load effectiveness table: %w", err)
	}
	printOK(fmt.Sprintf("type effectiveness loaded (%d pairs)", effTable.Count()))

	speciesTypes, err := data.LoadSpeciesTypeTable("data/yaml/species_types.yaml")
	if err != nil {
		return fmt.Errorf("load species type table: %w", err)
	}
	printOK(fmt.Sprintf("species types loaded (%d species)", speciesTypes.Count()))
	fmt.Println()

	printSection("datasets")
	bt := battleTypeForFormat(f.pokemonFormat)
	stats := dataset.NewStatisticsProvider(cfg.Dataset.CacheDir, cfg.Dataset.StatsHostTmpl, 10)
	registry := dataset.NewRegistry(bt, f.pokemonFormat, cfg.Dataset.RandomBattleDir, cfg.Dataset.TeamDatasetDir, stats)
	if err := registry.Initialize(f.pokemonFormat, nil); err != nil {
		log.Warn("dataset initialization failed, continuing with whatever loaded", zap.Error(err))
	}
	printOK(fmt.Sprintf("dataset registry initialized (statistics format %s)", f.smogonStatsFormat))
	fmt.Println()

	// The real rollout/type-chart/damage-calculator libraries are
	// external collaborators this module never implements (spec §1,
	// §6.4); the demo runs against the bundled fixture type chart and
	// a fake MCTS engine whose fixed result puts every visit on
	// Earthquake.
	typeChart := effTable
	engine := &rollout.FakeEngine{
		SearchResult: rollout.Result{
			TotalVisits: 100,
			SideOne:     []rollout.ActionVisit{{MoveChoice: "Earthquake", Visits: 100, TotalScore: 50}},
		},
	}
	serializer := rollout.FakeSerializer{}

	infEngine := inference.New(typeChart, engine, serializer, registry, cfg.Inference, log)
	ip := interpreter.New(log, infEngine, genTable)
	rec := reconcile.New(log)
	constraint := sampler.NewTeamConstraint(speciesTypes, typeChart)
	smp := sampler.New(registry, constraint, log, time.Now().UnixNano())
	driver := search.New(smp, serializer, engine, cfg.Search, log, time.Now().UnixNano())

	printSection("battle")
	battle := demoBattle(f.pokemonFormat, bt)
	printOK(fmt.Sprintf("battle %s constructed (turn %d)", battle.Tag, battle.Turn))

	if err := rec.Reconcile(battle, demoRequestJSON()); err != nil {
		return fmt.Errorf("reconcile initial request: %w", err)
	}

	battle.AppendLine("|turn|1")
	if err := ip.Process(battle); err != nil {
		return fmt.Errorf("interpreter process: %w", err)
	}

	printSection("decisions")
	ctx := context.Background()
	for i := 0; i < f.runCount; i++ {
		action, eval, err := driver.FindBestMove(ctx, battle)
		if err != nil {
			return fmt.Errorf("find best move: %w", err)
		}
		outbound, err := protocolfmt.FormatAction(battle, action, false, false)
		if err != nil {
			return fmt.Errorf("format action: %w", err)
		}
		log.Info("decision", zap.String("action", action), zap.String("outbound", outbound),
			zap.String("state", protocolfmt.Summarize(battle)))
		if eval != nil {
			log.Info("evaluation", zap.Float64("optimality", eval.Moves[action].Optimality),
				zap.Int("scenarios", eval.NumScenarios), zap.Uint64("total_visits", eval.TotalVisits))
		}
		printOK(fmt.Sprintf("turn %d: %s", battle.Turn, outbound))
	}

	switch f.saveReplay {
	case "always":
		log.Info("would send", zap.String("command", protocolfmt.SaveReplay()))
	case "on_win", "on_loss":
		log.Info("replay saving is conditional on the battle's outcome, which this demo never observes",
			zap.String("save_replay_mode", f.saveReplay))
	}

	return nil
}

// battleTypeForFormat classifies a format string the same way the
// original bot selects its battle-start path, grounded on
// _examples/original_source/fp/run_battle.py's "randombattle"/
// "battlefactory" substring checks.
func battleTypeForFormat(format string) model.BattleType {
	switch {
	case strings.Contains(format, "battlefactory"):
		return model.BattleTypeBattleFactory
	case strings.Contains(format, "randombattle"):
		return model.BattleTypeRandom
	default:
		return model.BattleTypeStandard
	}
}

// demoBattle builds a small, fully-formed battle so the rest of the
// wiring has something concrete to decide over.
func demoBattle(format string, bt model.BattleType) *model.Battle {
	b := model.NewBattle("demo-battle-1", "bot", "opponent", "gen9", format, bt)

	chomp := model.NewPokemon("Garchomp", 100)
	chomp.HP = 100
	chomp.Types = []string{"ground", "dragon"}
	chomp.AddMove("Earthquake", 16)
	chomp.AddMove("Dragon Claw", 24)
	chomp.AddMove("Swords Dance", 32)
	chomp.AddMove("Stone Edge", 8)
	b.User.AddToTeam(chomp)
	b.User.ActiveIndex = 0

	ferro := model.NewPokemon("Ferrothorn", 100)
	ferro.Types = []string{"grass", "steel"}
	b.User.AddToTeam(ferro)

	opp := model.NewPokemon("Landorus-Therian", 100)
	opp.Types = []string{"ground", "flying"}
	b.Opponent.AddToTeam(opp)
	b.Opponent.ActiveIndex = 0

	return b
}

// demoRequestJSON is a minimal authoritative request payload (spec
// §6.1 "request tag's second field") used to exercise the reconciler
// once at startup.
func demoRequestJSON() string {
	return `{"rqid":1,"side":{"pokemon":[{"ident":"p1: Garchomp","details":"Garchomp, L100","condition":"100/100","active":true,"stats":{"atk":267,"def":171,"spa":127,"spd":171,"spe":204},"moves":["earthquake","dragonclaw","swordsdance","stoneedge"],"baseAbility":"roughskin","ability":"roughskin","item":"lifeorb"}]}}`
}

func newLogger(cfg config.LoggingConfig, logToFile string) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var encCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	if cfg.Format == "json" {
		encCfg = zap.NewProductionEncoderConfig()
		encoder = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	}

	sinks := []zapcore.WriteSyncer{zapcore.AddSync(os.Stderr)}
	if logToFile != "" {
		file, err := os.OpenFile(logToFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file %s: %w", logToFile, err)
		}
		sinks = append(sinks, zapcore.AddSync(file))
	}

	core := zapcore.NewCore(encoder, zapcore.NewMultiWriteSyncer(sinks...), level)
	return zap.New(core), nil
}
