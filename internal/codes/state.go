package codes

// State is the physical condition of a benchmark (rn_etat_code).
type State int

const (
	StateDestroyed State = iota + 1
	StateGood
	StateUnusable
	StateBad
	StateNotFound
	StatePresumedMoved
	StatePresumedDestroyed
	StateDestroyedAfterObservation
)

var stateTable = newTable("rn_etat_code", false, false, []entry[State]{
	{StateDestroyed, "Destroyed", w("D")},
	{StateGood, "Good condition", w("E")},
	{StateUnusable, "Unusable", w("I")},
	{StateBad, "Bad condition", w("M")},
	{StateNotFound, "Not found", w("N")},
	{StatePresumedMoved, "Presumed moved", w("P")},
	{StatePresumedDestroyed, "Presumed destroyed (reported by a local service)", w("S")},
	{StateDestroyedAfterObservation, "Destroyed after observation", w("Y")},
})

// ParseState decodes an rn_etat_code wire value.
func ParseState(wire string) (State, error) { return stateTable.Decode(wire) }

// Code returns the wire value.
func (s State) Code() string { return stateTable.Wire(s) }

// Label returns the display label.
func (s State) Label() string { return stateTable.Label(s) }

func (s State) String() string { return s.Label() }

// Good reports whether the benchmark is in good condition.
func (s State) Good() bool { return s == StateGood }

func (s State) MarshalJSON() ([]byte, error) { return stateTable.marshalJSON(s) }

func (s State) MarshalText() ([]byte, error) { return []byte(s.Code()), nil }

func (s *State) UnmarshalJSON(data []byte) error {
	v, err := stateTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// Action is the last operation carried out on a benchmark (rn_action_code).
type Action int

const (
	ActionDetermination Action = iota + 1
	ActionVisit
)

var actionTable = newTable("rn_action_code", false, false, []entry[Action]{
	{ActionDetermination, "Determination", w("D")},
	{ActionVisit, "Visit", w("V")},
})

// ParseAction decodes an rn_action_code wire value.
func ParseAction(wire string) (Action, error) { return actionTable.Decode(wire) }

func (a Action) Code() string  { return actionTable.Wire(a) }
func (a Action) Label() string { return actionTable.Label(a) }
func (a Action) String() string {
	return a.Label()
}

func (a Action) MarshalJSON() ([]byte, error) { return actionTable.marshalJSON(a) }

func (a Action) MarshalText() ([]byte, error) { return []byte(a.Code()), nil }

func (a *Action) UnmarshalJSON(data []byte) error {
	v, err := actionTable.unmarshalJSON(data)
	if err != nil {
		return err
	}
	*a = v
	return nil
}
