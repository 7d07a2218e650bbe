package model

import "fmt"

type Direction string

const (
	Inflow  Direction = "inflow"
	Outflow Direction = "outflow"
)

func ParseDirection(s string) (Direction, error) {
	switch Direction(s) {
	case Inflow, Outflow:
		return Direction(s), nil
	default:
		return "", fmt.Errorf("unknown direction '%s'", s)
	}
}

type Kind struct {
	Code      string
	Label     string
	Direction Direction
}

// KindLookup is a read-only snapshot of the kind reference table.
// A new snapshot is built whenever the table is reloaded; it is never
// modified after construction, so it can be shared between goroutines.
type KindLookup struct {
	order  []Kind
	byCode map[string]Kind
}

func NewKindLookup(kinds []Kind) KindLookup {
	l := KindLookup{
		order:  make([]Kind, 0, len(kinds)),
		byCode: make(map[string]Kind, len(kinds)),
	}
	for _, k := range kinds {
		if _, dup := l.byCode[k.Code]; dup {
			continue
		}
		l.order = append(l.order, k)
		l.byCode[k.Code] = k
	}
	return l
}

func (l KindLookup) Get(code string) (Kind, bool) {
	k, ok := l.byCode[code]
	return k, ok
}

// Kinds returns a copy of the snapshot in load order.
func (l KindLookup) Kinds() []Kind {
	out := make([]Kind, len(l.order))
	copy(out, l.order)
	return out
}

// CodesFor returns the codes of every kind with the given direction, in load order.
func (l KindLookup) CodesFor(d Direction) []string {
	var codes []string
	for _, k := range l.order {
		if k.Direction == d {
			codes = append(codes, k.Code)
		}
	}
	return codes
}

func (l KindLookup) Len() int {
	return len(l.order)
}
