package toggling

import (
	"fmt"
	"strings"
)

type Action int

const (
	On Action = iota
	Off
	Toggle
)

var (
	actionNames = [...]string{"on", "off", "toggle"}
)

func Actions() []Action {
	return []Action{On, Off, Toggle}
}

func (it Action) String() string {
	if it < On || it > Toggle {
		return fmt.Sprintf("action(%d)", int(it))
	}
	return actionNames[it]
}

func (it Action) Label() string {
	switch it {
	case On:
		return "On"
	case Off:
		return "Off"
	case Toggle:
		return "Toggle"
	}
	return it.String()
}

func ParseAction(text string) (Action, error) {
	wanted := strings.ToLower(strings.TrimSpace(text))
	for _, action := range Actions() {
		if action.String() == wanted {
			return action, nil
		}
	}
	return On, fmt.Errorf("Unknown action %q, use one of: on, off, toggle.", text)
}

type Phase int

const (
	Idle Phase = iota
	Fetching
	Applying
)

func (it Phase) String() string {
	switch it {
	case Fetching:
		return "fetching"
	case Applying:
		return "applying"
	}
	return "idle"
}
