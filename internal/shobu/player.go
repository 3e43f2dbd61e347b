package shobu

import "strings"

type Player int8

const (
	White Player = iota
	Black

	NoPlayer Player = -1
)

func ParsePlayer(s string) Player {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "white", "w", "0":
		return White
	case "black", "b", "1":
		return Black
	default:
		return NoPlayer
	}
}

func (p Player) IsValid() bool {
	return p == White || p == Black
}

func (p Player) Opponent() Player {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Player) UnmarshalText(text []byte) error {
	*p = ParsePlayer(string(text))
	return nil
}
