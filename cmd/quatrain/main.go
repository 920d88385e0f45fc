package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/quatrain/quatrain/config"
	"github.com/quatrain/quatrain/game"
	"github.com/quatrain/quatrain/player"
	"github.com/quatrain/quatrain/player/human"
	"github.com/quatrain/quatrain/player/minimax"
	"github.com/quatrain/quatrain/player/random"
	"github.com/quatrain/quatrain/runner"
)

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "play [red] [yellow] - start a game (player names; defaults from config)\n")
	io.WriteString(w, "players - list the available decision makers\n")
	io.WriteString(w, "show - print the current board\n")
	io.WriteString(w, "left / right / toggle / ok - control the human player on its turn\n")
	io.WriteString(w, "help - this message\n")
	io.WriteString(w, "exit - leave\n")
}

// actionQueue adapts typed commands into the human player's polled
// input source.
type actionQueue struct {
	mu      sync.Mutex
	pending []human.Action
}

func (q *actionQueue) Push(a human.Action) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, a)
}

func (q *actionQueue) Poll() (human.Action, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return 0, false
	}
	a := q.pending[0]
	q.pending = q.pending[1:]
	return a, true
}

type shellController struct {
	l        *readline.Instance
	cfg      *config.Config
	registry *player.Registry
	queue    *actionQueue

	mu       sync.Mutex
	board    *game.Board
	gameDone chan struct{}
}

func newShellController(l *readline.Instance, cfg *config.Config) *shellController {
	s := &shellController{l: l, cfg: cfg, queue: &actionQueue{}}
	s.registry = player.NewRegistry()
	s.registry.Register("minimax", func() player.Player { return minimax.New() })
	s.registry.Register("random", func() player.Player { return random.New() })
	s.registry.Register("human", func() player.Player { return human.New(s.queue) })
	return s
}

func (s *shellController) showMessage(msg string) {
	io.WriteString(s.l.Stdout(), msg)
	io.WriteString(s.l.Stdout(), "\n")
}

func (s *shellController) currentBoard() *game.Board {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.board
}

func (s *shellController) newPlayer(name, defParams string) (player.Player, error) {
	p, err := s.registry.New(name, defParams)
	if err != nil {
		return nil, err
	}
	if n, ok := p.(player.Notifier); ok {
		ch := make(chan string, 16)
		n.SetProgressChan(ch)
		go func() {
			for line := range ch {
				s.showMessage("  … " + line)
			}
		}()
	}
	return p, nil
}

func (s *shellController) play(args []string) {
	select {
	case <-s.gameDoneChan():
		// no game in progress
	default:
		s.showMessage("a game is already running")
		return
	}

	redName, yellowName := s.cfg.RedPlayer, s.cfg.YellowPlayer
	if len(args) > 0 {
		redName = args[0]
	}
	if len(args) > 1 {
		yellowName = args[1]
	}

	redParams, yellowParams := s.cfg.RedParams, s.cfg.YellowParams
	red, err := s.newPlayer(redName, redParams)
	if err != nil {
		s.showMessage(err.Error())
		return
	}
	yellow, err := s.newPlayer(yellowName, yellowParams)
	if err != nil {
		s.showMessage(err.Error())
		return
	}

	board, err := game.NewBoard(s.cfg.Rows, s.cfg.Cols, s.cfg.RunLength, s.cfg.Supply)
	if err != nil {
		s.showMessage(err.Error())
		return
	}
	budget := s.cfg.MoveBudget
	if redName == "human" || yellowName == "human" {
		// Don't clock the person at the keyboard.
		budget = 0
	}

	done := make(chan struct{})
	s.mu.Lock()
	s.board = board
	s.gameDone = done
	s.mu.Unlock()

	r := runner.NewGameRunner(board, red, yellow, budget)
	r.SetPlayerNames(redName, yellowName)
	r.SetRenderFunc(func(b *game.Board) {
		s.showMessage("\n" + b.String())
	})

	go func() {
		defer close(done)
		out, err := r.Run(context.Background())
		if err != nil {
			s.showMessage("game aborted: " + err.Error())
			return
		}
		s.showMessage(fmt.Sprintf("*** %s ***", out))
	}()
}

func (s *shellController) gameDoneChan() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gameDone == nil {
		done := make(chan struct{})
		close(done)
		return done
	}
	return s.gameDone
}

func (s *shellController) execute(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}
	switch fields[0] {
	case "bye", "exit", "quit":
		return false
	case "help":
		usage(s.l.Stdout())
	case "players":
		s.showMessage(strings.Join(s.registry.List(), "\n"))
	case "play":
		s.play(fields[1:])
	case "show":
		select {
		case <-s.gameDoneChan():
			if b := s.currentBoard(); b != nil {
				s.showMessage(b.String())
			} else {
				s.showMessage("no game yet; try play")
			}
		default:
			// The runner owns the board while a game runs; it is
			// rendered before every turn anyway.
			s.showMessage("game in progress; the board is printed each turn")
		}
	case "left", "l":
		s.queue.Push(human.Left)
	case "right", "r":
		s.queue.Push(human.Right)
	case "toggle", "t":
		s.queue.Push(human.Toggle)
	case "ok", "drop":
		s.queue.Push(human.Confirm)
	default:
		s.showMessage("unknown command; try help")
	}
	return true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	l, err := readline.NewEx(&readline.Config{
		Prompt:      "\033[33mquatrain>\033[0m ",
		HistoryFile: "/tmp/quatrain_readline.tmp",
		EOFPrompt:   "exit",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	defer l.Close()

	s := newShellController(l, cfg)
	for {
		line, err := l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if !s.execute(strings.TrimSpace(line)) {
			break
		}
	}
}
