package wm

import "github.com/1broseidon/komotile/internal/config"

// ManageDecision is the outcome of evaluating a new window against the
// configured application rules.
type ManageDecision struct {
	Ignore         bool // the window is never tracked at all
	Float          bool // tracked, but excluded from tiling
	BorderOverflow bool // border driver should apply its overflow fudge
	Rule           *config.ApplicationRule
}

// Decide evaluates win against rules in order and returns the first
// matching rule's decision. With no matching rule, the window is managed
// as a normal tiled container only if it has a titlebar and is not a tool
// window and is not cloaked; otherwise it is rejected outright.
func Decide(rules []config.ApplicationRule, win Window) ManageDecision {
	for i := range rules {
		r := rules[i]
		if r.AppliesTo(win.Exe, win.Class, win.Title, win.Path) {
			return ManageDecision{Ignore: r.Ignore, Float: r.Floating, BorderOverflow: r.BorderOverflow, Rule: &r}
		}
	}
	if !win.HasTitlebar || win.ToolWindow || win.Cloaked {
		return ManageDecision{Ignore: true}
	}
	return ManageDecision{}
}
