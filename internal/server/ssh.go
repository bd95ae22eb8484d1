package server

import (
	"context"
	"fmt"
	"io"
	"log"
	"unicode/utf8"

	"github.com/gliderlabs/ssh"

	"planetgen/internal/planet"
	"planetgen/internal/render"
)

// Action is a key command from an SSH client.
type Action int

const (
	ActionNone Action = iota
	ActionRandomSeed
	ActionRadiusUp
	ActionRadiusDown
	ActionCaveUp
	ActionCaveDown
	ActionQuit
)

// ratioStep is how far one key press moves a ratio.
const ratioStep = 0.05

// SSHServer serves an ANSI preview of a planet per session.
type SSHServer struct {
	addr      string
	hostKey   string
	newPlanet func() *planet.Planet
}

// NewSSHServer creates a new SSH server bound to addr. An empty hostKey makes
// the server generate a throwaway key.
func NewSSHServer(addr, hostKey string, newPlanet func() *planet.Planet) *SSHServer {
	return &SSHServer{addr: addr, hostKey: hostKey, newPlanet: newPlanet}
}

// Start begins listening for SSH connections.
func (s *SSHServer) Start() error {
	server := &ssh.Server{
		Addr:    s.addr,
		Handler: s.handleSession,
	}
	if s.hostKey != "" {
		if err := server.SetOption(ssh.HostKeyFile(s.hostKey)); err != nil {
			return fmt.Errorf("set host key: %w", err)
		}
	}
	log.Printf("SSH server listening on %s", s.addr)
	return server.ListenAndServe()
}

func (s *SSHServer) handleSession(sess ssh.Session) {
	ptyReq, winCh, ok := sess.Pty()
	if !ok {
		fmt.Fprintln(sess, "Error: PTY required. Use: ssh -t ...")
		return
	}
	log.Printf("preview session opened: %s", sess.RemoteAddr())
	defer log.Printf("preview session closed: %s", sess.RemoteAddr())

	io.WriteString(sess, render.EnableAltScreen())
	io.WriteString(sess, render.HideCursor())
	defer func() {
		io.WriteString(sess, render.Reset)
		io.WriteString(sess, render.ShowCursor())
		io.WriteString(sess, render.DisableAltScreen())
	}()

	actions := make(chan Action, 8)
	go func() {
		defer close(actions)
		buf := make([]byte, 64)
		for {
			n, err := sess.Read(buf)
			if err != nil {
				return
			}
			for _, a := range parseInput(buf[:n]) {
				select {
				case actions <- a:
				case <-sess.Context().Done():
					return
				}
				if a == ActionQuit {
					return
				}
			}
		}
	}()

	ctx := sess.Context()
	p := s.newPlanet()
	cols, rows := ptyReq.Window.Width, ptyReq.Window.Height
	status := generateStatus(ctx, p)
	io.WriteString(sess, frame(p, cols, rows, status))

	for {
		select {
		case <-ctx.Done():
			return
		case win, ok := <-winCh:
			if !ok {
				winCh = nil
				continue
			}
			cols, rows = win.Width, win.Height
		case a, ok := <-actions:
			if !ok || a == ActionQuit {
				return
			}
			if !applyAction(p, a) {
				continue
			}
			status = generateStatus(ctx, p)
		}
		io.WriteString(sess, frame(p, cols, rows, status))
	}
}

func generateStatus(ctx context.Context, p *planet.Planet) string {
	if err := p.Generate(ctx); err != nil {
		log.Printf("generate seed %d: %v", p.Seed(), err)
		return "error: " + err.Error()
	}
	return ""
}

// frame draws the map in all but the last row, which holds the status line.
func frame(p *planet.Planet, cols, rows int, status string) string {
	out := render.ClearScreen()
	if res := p.Result(); res != nil && rows > 1 {
		out += render.ANSI(res.Map.Cells(), res.Size, render.Palette(p.Descriptors(), p.Background()), cols, rows-1)
	}
	line := status
	if line == "" {
		line = fmt.Sprintf("seed %d  radius %.2f  caves %.2f  [r]andom [+/-] radius [[/]] caves [q]uit",
			p.Seed(), p.RadiusRatio(), p.CaveDensityRatio())
	}
	if len(line) > cols && cols > 0 {
		line = line[:cols]
	}
	return out + render.MoveTo(rows, 1) + render.Reset + line
}

// applyAction updates p and reports whether it needs regenerating. Ratios are
// kept in [0, 1].
func applyAction(p *planet.Planet, a Action) bool {
	step := func(cur float64, dir float64) float64 {
		return min(max(cur+dir*ratioStep, 0), 1)
	}
	switch a {
	case ActionRandomSeed:
		p.SetRandomSeed()
	case ActionRadiusUp:
		p.SetRadiusRatio(step(p.RadiusRatio(), 1))
	case ActionRadiusDown:
		p.SetRadiusRatio(step(p.RadiusRatio(), -1))
	case ActionCaveUp:
		p.SetCaveDensityRatio(step(p.CaveDensityRatio(), 1))
	case ActionCaveDown:
		p.SetCaveDensityRatio(step(p.CaveDensityRatio(), -1))
	default:
		return false
	}
	return true
}

// parseInput converts raw bytes into actions. Escape sequences are skipped.
func parseInput(data []byte) []Action {
	var actions []Action
	i := 0
	for i < len(data) {
		if i+2 < len(data) && data[i] == 0x1b && data[i+1] == '[' {
			i += 3
			continue
		}
		r, size := utf8.DecodeRune(data[i:])
		switch r {
		case 'r', 'R':
			actions = append(actions, ActionRandomSeed)
		case '+', '=':
			actions = append(actions, ActionRadiusUp)
		case '-', '_':
			actions = append(actions, ActionRadiusDown)
		case ']':
			actions = append(actions, ActionCaveUp)
		case '[':
			actions = append(actions, ActionCaveDown)
		case 'q', 'Q':
			actions = append(actions, ActionQuit)
		case 3: // Ctrl-C
			actions = append(actions, ActionQuit)
		}
		i += size
	}
	return actions
}
