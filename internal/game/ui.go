package game

// syncUI refreshes the overlay of a real level. The pointer only changes
// when the content does, so frontends can diff cheaply.
func (e *Engine) syncUI(g *State) {
	switch g.Status {
	case StatusGameOver:
		ui := UIState{
			Title: "Oops!",
			Body:  "Remember for\nnext run",
			Area:  g.Area(),
		}
		if ib, ok := g.CurrentIntersection(); ok {
			ui.Failures = g.FailuresAt(ib.Index)
		}
		if g.Time-g.StatusChangedTime > gameRestartDelay {
			ui.Footer = e.opts.Messages.PressSpace
			ui.FooterBlink = true
			ui.FooterCentered = true
		}
		if g.UIState == nil || g.UIState.Title != ui.Title || g.UIState.Footer != ui.Footer {
			g.UIState = &ui
		}

	case StatusFinished:
		ui := UIState{
			TitleCentered: true,
			Title:         "YES!",
			Body:          "You did it!",
			Footer:        "Try  longer  run...",
		}
		if g.UIState == nil || g.UIState.Title != ui.Title {
			g.UIState = &ui
		}

	default:
		area := g.Area()
		if g.UIState == nil || g.UIState.Area != area {
			g.UIState = &UIState{Area: area}
		}
	}
}
