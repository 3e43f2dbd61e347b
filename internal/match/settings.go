package match

import (
	"encoding/json"
	"errors"
	"os"
	"time"

	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/agent"
	"github.com/AchilleMorenville/LINFO1361-Shobu/internal/shobu"
)

type RulesSettings struct {
	MaxBoringActions int `json:"max_boring_actions,omitempty"`
}

type MatchSettings struct {
	White agent.Kind `json:"white,omitempty"`
	Black agent.Kind `json:"black,omitempty"`
	// Clock of each player; 0 disables the clock.
	PlayTime time.Duration `json:"play_time,omitempty"`
	MoveCap  int           `json:"move_cap,omitempty"`
	LogPath  string        `json:"log_path,omitempty"`
	// Matches run at once by a series.
	Parallel int `json:"parallel,omitempty"`
}

type BoardPrintSettings struct {
	EmptyChar string `json:"empty_char,omitempty"`
	WhiteChar string `json:"white_char,omitempty"`
	BlackChar string `json:"black_char,omitempty"`
}

type IoSettings struct {
	BoardPrint *BoardPrintSettings `json:"board_print,omitempty"`
}

type Settings struct {
	Rules *RulesSettings  `json:"rules,omitempty"`
	Match *MatchSettings  `json:"match,omitempty"`
	Ai    *agent.Settings `json:"ai,omitempty"`
	Io    *IoSettings     `json:"io,omitempty"`
}

func NewSettings() *Settings {
	return &Settings{
		Rules: &RulesSettings{
			MaxBoringActions: shobu.DefaultMaxBoringActions,
		},
		Match: &MatchSettings{
			White:    agent.Random,
			Black:    agent.Random,
			PlayTime: time.Minute * 10,
			MoveCap:  DefaultMoveCap,
			Parallel: 1,
		},
		Ai: agent.NewSettings(),
		Io: &IoSettings{
			BoardPrint: &BoardPrintSettings{
				EmptyChar: shobu.DefaultGlyphs.Empty,
				WhiteChar: shobu.DefaultGlyphs.White,
				BlackChar: shobu.DefaultGlyphs.Black,
			},
		},
	}
}

// LoadSettings reads a settings file over the defaults. An empty name
// selects SettingsPath.
func LoadSettings(name string) (*Settings, error) {
	if name == "" {
		name = SettingsPath
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	settings := NewSettings()
	err = json.Unmarshal(data, settings)
	if err != nil {
		return nil, err
	}
	return settings, nil
}

func StoreSettings(name string, settings *Settings) error {
	if settings == nil {
		panic(errors.New("settings is nil"))
	}
	if name == "" {
		name = SettingsPath
	}
	data, err := json.MarshalIndent(settings, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(name, data, 0666)
}

// Glyphs returns the board print characters.
func (s *Settings) Glyphs() shobu.Glyphs {
	if s == nil || s.Io == nil || s.Io.BoardPrint == nil {
		return shobu.DefaultGlyphs
	}
	bp := s.Io.BoardPrint
	return shobu.Glyphs{Empty: bp.EmptyChar, White: bp.WhiteChar, Black: bp.BlackChar}
}
