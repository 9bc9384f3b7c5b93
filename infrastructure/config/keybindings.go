package config

import (
	"fmt"
	"strings"

	pkgerrors "loom/pkg/errors"
)

// maxKeybindings caps the configured keybinding count
const maxKeybindings = 500

// KeybindingAction names the action a keybinding performs
type KeybindingAction string

const (
	// ActionTerminal opens the configured terminal
	ActionTerminal KeybindingAction = "terminal"
	// ActionLauncher opens the launcher / command palette
	ActionLauncher KeybindingAction = "launcher"
	// ActionClose closes the focused node
	ActionClose KeybindingAction = "close"
	// ActionFullscreen toggles fullscreen for the focused node
	ActionFullscreen KeybindingAction = "fullscreen"
	// ActionPan pans the canvas; Direction selects the axis
	ActionPan KeybindingAction = "pan"
	// ActionZoom zooms the canvas; Zoom selects in or out
	ActionZoom KeybindingAction = "zoom"
	// ActionResetView resets the viewport to the origin
	ActionResetView KeybindingAction = "reset_view"
	// ActionAIPrompt opens the AI command input
	ActionAIPrompt KeybindingAction = "ai_prompt"
	// ActionLaunchApp launches a desktop application by id
	ActionLaunchApp KeybindingAction = "launch_app"
	// ActionRunScript runs a script from the config scripts directory
	ActionRunScript KeybindingAction = "run_script"
	// ActionQuit quits the compositor
	ActionQuit KeybindingAction = "quit"
)

// Keybinding maps a key combination to an action. Only predefined
// actions and validated script names are permitted; keybindings never
// execute arbitrary commands.
type Keybinding struct {
	// Key is the combination, e.g. "Super+Return" or "Super+Shift+Q"
	Key string `toml:"key"`
	// Action is the action to perform
	Action KeybindingAction `toml:"action"`

	// Direction selects the pan direction: up, down, left, right
	Direction string `toml:"direction,omitempty"`
	// Zoom selects the zoom direction: in, out
	Zoom string `toml:"zoom,omitempty"`
	// AppID is the desktop application id for launch_app
	AppID string `toml:"app_id,omitempty"`
	// ScriptName is the script file name for run_script
	ScriptName string `toml:"script_name,omitempty"`
}

// DefaultKeybindings returns the built-in keybinding table
func DefaultKeybindings() []Keybinding {
	return []Keybinding{
		{Key: "Super+Return", Action: ActionTerminal},
		{Key: "Super+D", Action: ActionLauncher},
		{Key: "Super+Q", Action: ActionClose},
		{Key: "Super+F", Action: ActionFullscreen},
		{Key: "Super+Space", Action: ActionAIPrompt},
		{Key: "Super+0", Action: ActionResetView},
		{Key: "Super+Plus", Action: ActionZoom, Zoom: "in"},
		{Key: "Super+Minus", Action: ActionZoom, Zoom: "out"},
		{Key: "Super+Shift+Q", Action: ActionQuit},
	}
}

// Validate checks the keybinding's fields, including the script-name
// security rules
func (kb Keybinding) Validate() error {
	if kb.Key == "" {
		return pkgerrors.NewValidationError("keybinding key cannot be empty")
	}

	switch kb.Action {
	case ActionTerminal, ActionLauncher, ActionClose, ActionFullscreen,
		ActionResetView, ActionAIPrompt, ActionQuit:
		return nil
	case ActionPan:
		switch kb.Direction {
		case "up", "down", "left", "right":
			return nil
		}
		return pkgerrors.NewValidationError(
			fmt.Sprintf("invalid pan direction %q for key %q", kb.Direction, kb.Key))
	case ActionZoom:
		if kb.Zoom != "in" && kb.Zoom != "out" {
			return pkgerrors.NewValidationError(
				fmt.Sprintf("invalid zoom direction %q for key %q", kb.Zoom, kb.Key))
		}
		return nil
	case ActionLaunchApp:
		if kb.AppID == "" {
			return pkgerrors.NewValidationError(
				fmt.Sprintf("launch_app binding %q requires an app id", kb.Key))
		}
		return nil
	case ActionRunScript:
		return ValidateScriptName(kb.ScriptName)
	default:
		return pkgerrors.NewValidationError(
			fmt.Sprintf("unknown keybinding action %q for key %q", kb.Action, kb.Key))
	}
}

// ValidateScriptName refuses script names that could escape the
// scripts directory or smuggle shell metacharacters
func ValidateScriptName(name string) error {
	if name == "" {
		return pkgerrors.NewSecurityError("script name cannot be empty")
	}

	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return pkgerrors.NewSecurityError("script name contains invalid characters")
	}

	for _, r := range name {
		if !isScriptNameRune(r) {
			return pkgerrors.NewSecurityError("script name contains invalid characters")
		}
	}
	return nil
}

func isScriptNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '_', r == '-', r == '.':
		return true
	}
	return false
}
