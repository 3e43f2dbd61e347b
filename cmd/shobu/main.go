package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/agent"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/match"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/record"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/watch"
)

type options struct {
	white, black string
	playTime     int
	display      bool
	logPath      string
	replayPath   string
	startTurn    int
	delay        float64
	games        int
	parallel     int
	watchAddr    string
	settingsPath string
}

func parseFlags() *options {
	o := new(options)
	flag.StringVar(&o.white, "w", "", "White player: human | random | alphabeta | mcts")
	flag.StringVar(&o.black, "b", "", "Black player: human | random | alphabeta | mcts")
	flag.IntVar(&o.playTime, "t", 0, "Time per game for each player, in seconds")
	flag.BoolVar(&o.display, "d", false, "Display the board after every action")
	flag.StringVar(&o.logPath, "l", "", "Path to the file recording the game")
	flag.StringVar(&o.replayPath, "r", "", "Path to a recorded game to replay")
	flag.IntVar(&o.startTurn, "st", 0, "First move shown when replaying")
	flag.Float64Var(&o.delay, "dt", 0, "Delay between displayed moves, in seconds")
	flag.IntVar(&o.games, "n", 1, "Number of games to play, reporting stats")
	flag.IntVar(&o.parallel, "parallel", 0, "Games played at once with -n")
	flag.StringVar(&o.watchAddr, "watch", "", "Address serving spectators on /ws, e.g. :8080")
	flag.StringVar(&o.settingsPath, "settings", "", "Settings file; defaults to settings.json next to the executable")
	flag.Parse()
	return o
}

func main() {
	err := recoverToError(body)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func recoverToError(f func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = fmt.Errorf("panic: %w", e)
			} else {
				err = fmt.Errorf("panic: %v", r)
			}
		}
	}()
	return f()
}

func body() error {
	opts := parseFlags()
	settings, err := loadSettings(opts.settingsPath)
	if err != nil {
		return err
	}
	if err = applyFlags(settings, opts); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	game := shobu.NewGame(settings.Rules.MaxBoringActions)
	glyphs := settings.Glyphs()

	var hub *watch.Hub
	if opts.watchAddr != "" {
		hub = watch.NewHub()
		go hub.Run(ctx.Done())
		mux := http.NewServeMux()
		mux.Handle("/ws", hub)
		srv := &http.Server{Addr: opts.watchAddr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Printf("[watch] %v", err)
			}
		}()
		defer srv.Close()
		log.Printf("[watch] serving spectators on %s/ws", opts.watchAddr)
	}

	onPly := func(s *shobu.State, a shobu.Action) {
		if hub != nil {
			hub.Broadcast(s, &a)
		}
		if opts.display {
			fmt.Printf("Move %d: %v\n%s\n", s.Ply(), a, s.Board().Format(glyphs))
		}
	}

	if opts.replayPath != "" {
		entries, err := record.ReadFile(opts.replayPath)
		if err != nil {
			return err
		}
		opts.display = true
		final, err := match.Replay(ctx, game, entries, opts.startTurn,
			seconds(opts.delay), onPly)
		if err != nil {
			return err
		}
		printResult(game, final)
		return nil
	}

	newAgents := func() ([shobu.NumPlayers]agent.Agent, error) {
		var agents [shobu.NumPlayers]agent.Agent
		for p, kind := range [...]agent.Kind{settings.Match.White, settings.Match.Black} {
			a, err := agent.New(kind, shobu.Player(p), game, settings.Ai)
			if err != nil {
				return agents, err
			}
			agents[p] = a
		}
		return agents, nil
	}
	matchOpts := match.Options{
		PlayTime: settings.Match.PlayTime,
		MoveCap:  settings.Match.MoveCap,
	}

	if opts.games > 1 {
		stats, err := match.Series(ctx, game, opts.games, settings.Match.Parallel,
			newAgents, matchOpts, func(st match.Stats) {
				log.Printf("[series] %v", st)
			})
		fmt.Println(stats)
		return err
	}

	agents, err := newAgents()
	if err != nil {
		return err
	}
	matchOpts.OnPly = onPly
	matchOpts.Logger = log.New(io.Discard, "", 0)
	if opts.display {
		matchOpts.Logger = log.Default()
		fmt.Println(game.Initial().Board().Format(glyphs))
	}
	if hub != nil {
		hub.Broadcast(game.Initial(), nil)
	}
	outcome, err := match.Play(ctx, game, agents, matchOpts)
	if outcome != nil && settings.Match.LogPath != "" {
		if werr := record.WriteFile(settings.Match.LogPath, outcome.Entries); werr != nil {
			fmt.Fprintln(os.Stderr, "Try to record the game to",
				settings.Match.LogPath, "but failed. Error:", werr)
		}
	}
	if err != nil {
		return err
	}
	fmt.Println("Game over:", outcome)
	fmt.Println("Winner:", winnerString(outcome.Winner))
	return nil
}

// loadSettings reads the settings file, storing the defaults when it does
// not exist yet.
func loadSettings(name string) (*match.Settings, error) {
	settings, err := match.LoadSettings(name)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if settings == nil {
		settings = match.NewSettings()
		err = match.StoreSettings(name, settings)
		if err != nil {
			// Just warning but not exit.
			fmt.Fprintln(os.Stderr, "Try to store settings but failed. Error:", err)
		}
	}
	return settings, nil
}

func applyFlags(settings *match.Settings, opts *options) error {
	for _, f := range []struct {
		value string
		kind  *agent.Kind
	}{
		{opts.white, &settings.Match.White},
		{opts.black, &settings.Match.Black},
	} {
		if f.value == "" {
			continue
		}
		k := agent.ParseKind(f.value)
		if !k.IsValid() {
			return fmt.Errorf("player %q is unknown", f.value)
		}
		*f.kind = k
	}
	if opts.playTime > 0 {
		settings.Match.PlayTime = time.Duration(opts.playTime) * time.Second
	}
	if opts.logPath != "" {
		settings.Match.LogPath = opts.logPath
	}
	if opts.parallel > 0 {
		settings.Match.Parallel = opts.parallel
	}
	if opts.games < 1 {
		return fmt.Errorf("number of games %d is not positive", opts.games)
	}
	if opts.startTurn < 0 {
		return fmt.Errorf("start turn %d is negative", opts.startTurn)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

func printResult(game *shobu.Game, s *shobu.State) {
	if !game.IsTerminal(s) {
		fmt.Println("Game not finished at move", s.Ply())
		return
	}
	fmt.Println("Winner:", winnerString(s.Winner()))
}

func winnerString(p shobu.Player) string {
	if p == shobu.NoPlayer {
		return "Draw"
	}
	return p.String()
}
