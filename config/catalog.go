package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/louisuxu-sys/BC-LINE/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Command names a bot entry point that users can trigger by any of its aliases
type Command string

const (
	CommandUID      Command = "uid"
	CommandMenu     Command = "menu"
	CommandBaccarat Command = "baccarat"
	CommandSlots    Command = "slots"
	CommandRedeem   Command = "redeem"
	CommandGenerate Command = "generate"
)

// Prefix names a command that carries an argument, e.g. "clear:Baccarat 7"
type Prefix string

const (
	PrefixClear    Prefix = "clear"
	PrefixProvider Prefix = "provider"
	PrefixGame     Prefix = "game"
	PrefixRoom     Prefix = "room"
)

// Provider is a live-baccarat platform a user can attach predictions to
type Provider struct {
	Key           string   `yaml:"key"`
	Name          string   `yaml:"name"`
	Strict        bool     `yaml:"strict"`
	RoomPrefix    string   `yaml:"room_prefix"`
	PrefixAliases []string `yaml:"prefix_aliases"`
	Rooms         []string `yaml:"rooms"`
	Example       string   `yaml:"example"`
}

// SlotCatalog lists the slot games the advisor supports
type SlotCatalog struct {
	Games       []string `yaml:"games"`
	RoomMin     int      `yaml:"room_min"`
	RoomMax     int      `yaml:"room_max"`
	RoomExample string   `yaml:"room_example"`
}

// Catalog is the static data the conversational layer is driven by
type Catalog struct {
	Commands  map[Command][]string `yaml:"commands"`
	Prefixes  map[Prefix][]string  `yaml:"prefixes"`
	Providers []Provider           `yaml:"providers"`
	Slots     SlotCatalog          `yaml:"slots"`
	Durations []string             `yaml:"durations"`
}

var (
	defaultCatalog     *Catalog
	defaultCatalogErr  error
	defaultCatalogOnce sync.Once
)

// DefaultCatalog returns the embedded catalog, parsed once
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(catalogYAML)
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadCatalog parses and validates a catalog document
func LoadCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	for _, cmd := range []Command{CommandUID, CommandMenu, CommandBaccarat, CommandSlots, CommandRedeem, CommandGenerate} {
		if len(c.Commands[cmd]) == 0 {
			return fmt.Errorf("catalog has no aliases for command %q", cmd)
		}
	}
	for _, p := range []Prefix{PrefixClear, PrefixProvider, PrefixGame, PrefixRoom} {
		if len(c.Prefixes[p]) == 0 {
			return fmt.Errorf("catalog has no aliases for prefix %q", p)
		}
	}
	if len(c.Providers) == 0 {
		return fmt.Errorf("catalog has no providers")
	}
	seen := make(map[string]struct{}, len(c.Providers))
	for _, p := range c.Providers {
		if p.Key == "" {
			return fmt.Errorf("catalog provider without key")
		}
		if _, dup := seen[p.Key]; dup {
			return fmt.Errorf("catalog provider %q listed twice", p.Key)
		}
		seen[p.Key] = struct{}{}
		if p.Strict && len(p.Rooms) == 0 {
			return fmt.Errorf("strict provider %q lists no rooms", p.Key)
		}
	}
	if len(c.Slots.Games) == 0 {
		return fmt.Errorf("catalog has no slot games")
	}
	for _, d := range c.Durations {
		if _, ok := models.ParseCodeDuration(d); !ok {
			return fmt.Errorf("catalog duration %q is not a valid code duration", d)
		}
	}
	return nil
}

// Is reports whether text is one of the command's aliases. ASCII aliases match case-insensitively.
func (c *Catalog) Is(cmd Command, text string) bool {
	text = strings.TrimSpace(text)
	for _, alias := range c.Commands[cmd] {
		if strings.EqualFold(alias, text) {
			return true
		}
	}
	return false
}

// HasCommandPrefix reports whether text starts with one of the command's aliases followed by
// whitespace or the end of input, and returns what follows
func (c *Catalog) HasCommandPrefix(cmd Command, text string) (string, bool) {
	text = strings.TrimSpace(text)
	for _, alias := range c.Commands[cmd] {
		if len(text) < len(alias) || !strings.EqualFold(text[:len(alias)], alias) {
			continue
		}
		rest := text[len(alias):]
		if rest == "" || rest[0] == ' ' || rest[0] == '\t' {
			return strings.TrimSpace(rest), true
		}
	}
	return "", false
}

// CutPrefix strips a prefix alias from text and returns the trimmed argument
func (c *Catalog) CutPrefix(p Prefix, text string) (string, bool) {
	text = strings.ReplaceAll(strings.TrimSpace(text), "：", ":")
	for _, alias := range c.Prefixes[p] {
		if len(text) >= len(alias) && strings.EqualFold(text[:len(alias)], alias) {
			return strings.TrimSpace(text[len(alias):]), true
		}
	}
	return "", false
}

// Text returns the canonical text for a command, the one buttons send
func (c *Catalog) Text(cmd Command) string {
	return c.Commands[cmd][0]
}

// PrefixText returns the canonical form of a prefixed command with its argument
func (c *Catalog) PrefixText(p Prefix, arg string) string {
	return c.Prefixes[p][0] + arg
}

// Provider looks up a provider by key, case-insensitively
func (c *Catalog) Provider(key string) (*Provider, bool) {
	key = strings.TrimSpace(key)
	for i := range c.Providers {
		if strings.EqualFold(c.Providers[i].Key, key) {
			return &c.Providers[i], true
		}
	}
	return nil, false
}

// CodeDurations returns the durations admins may issue, in catalog order
func (c *Catalog) CodeDurations() []models.CodeDuration {
	out := make([]models.CodeDuration, 0, len(c.Durations))
	for _, d := range c.Durations {
		parsed, _ := models.ParseCodeDuration(d)
		out = append(out, parsed)
	}
	return out
}

// NormalizeRoom maps user input to a room name. Strict providers only accept their listed
// rooms; "Baccarat7" and alias prefixes are rewritten to "Baccarat 7" before the lookup.
func (p *Provider) NormalizeRoom(input string) (string, bool) {
	room := strings.TrimSpace(input)
	if room == "" {
		return "", false
	}
	if !p.Strict {
		return room, true
	}

	if p.RoomPrefix != "" {
		for _, prefix := range append([]string{p.RoomPrefix}, p.PrefixAliases...) {
			if len(room) < len(prefix) || !strings.EqualFold(room[:len(prefix)], prefix) {
				continue
			}
			rest := strings.TrimSpace(room[len(prefix):])
			room = p.RoomPrefix + " " + rest
			break
		}
	}

	for _, valid := range p.Rooms {
		if strings.EqualFold(valid, room) {
			return valid, true
		}
	}
	return "", false
}
