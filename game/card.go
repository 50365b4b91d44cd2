package game

import "fmt"

// Class is the closed set of piece classes. Each class owns exactly one
// one-time ability, looked up through the ability table.
type Class int

const (
	NoClass Class = iota
	Knight
	Assassin
	Archer
	Mage
	Guard
	Thief
	Healer
	numClasses
)

var classNames = [numClasses]string{
	NoClass:  "",
	Knight:   "Knight",
	Assassin: "Assassin",
	Archer:   "Archer",
	Mage:     "Mage",
	Guard:    "Guard",
	Thief:    "Thief",
	Healer:   "Healer",
}

// Classes lists every playable class in declaration order.
func Classes() []Class {
	classes := make([]Class, 0, numClasses-1)
	for c := Knight; c < numClasses; c++ {
		classes = append(classes, c)
	}
	return classes
}

func (c Class) Valid() bool {
	return c > NoClass && c < numClasses
}

func (c Class) String() string {
	if c < NoClass || c >= numClasses {
		return fmt.Sprintf("Class(%d)", int(c))
	}
	return classNames[c]
}

func (c Class) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Class) UnmarshalText(text []byte) error {
	parsed, err := ParseClass(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseClass maps a class name to its Class. The empty string yields NoClass.
func ParseClass(name string) (Class, error) {
	for c, n := range classNames {
		if n == name {
			return Class(c), nil
		}
	}
	return NoClass, fmt.Errorf("%w: unknown class %q", ErrInvalidConfig, name)
}

// CardDefinition is an immutable catalog entry.
type CardDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Class Class  `json:"className" yaml:"class"`
	Name  string `json:"name" yaml:"name"`
	Image string `json:"image,omitempty" yaml:"image,omitempty"`
}

// Piece is a card in play. The zero Piece (Owner == NoPlayer) is an empty cell.
type Piece struct {
	CardDefinition
	Owner       Player `json:"player"`
	AbilityUsed bool   `json:"abilityUsed"`
}

func (p Piece) Empty() bool {
	return p.Owner == NoPlayer
}

// Catalog maps card ids to their definitions.
type Catalog map[string]CardDefinition

// NewCatalog indexes definitions by id, rejecting duplicates and unknown classes.
func NewCatalog(defs []CardDefinition) (Catalog, error) {
	catalog := make(Catalog, len(defs))
	for _, def := range defs {
		if def.ID == "" {
			return nil, fmt.Errorf("%w: card %q has no id", ErrInvalidConfig, def.Name)
		}
		if !def.Class.Valid() {
			return nil, fmt.Errorf("%w: card %q has no class", ErrInvalidConfig, def.ID)
		}
		if _, ok := catalog[def.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate card id %q", ErrInvalidConfig, def.ID)
		}
		catalog[def.ID] = def
	}
	return catalog, nil
}

// Lookup resolves a card id.
func (c Catalog) Lookup(id string) (CardDefinition, error) {
	def, ok := c[id]
	if !ok {
		return CardDefinition{}, fmt.Errorf("%w: unknown card id %q", ErrInvalidConfig, id)
	}
	return def, nil
}
