package suggest

import (
	"fmt"
	"strings"

	"github.com/XavierBriggs/tyche/pkg/models"
	"github.com/XavierBriggs/tyche/pkg/oddsmath"
)

// Prompt size caps. The game cap bounds token spend; the prop caps
// keep the flattened prop section from dominating the prompt.
const (
	maxPromptGames    = 12
	maxPromptPlayers  = 4
	maxPropsPerPlayer = 4
)

// buildPrompt renders the candidate slate and the user's preferences
// into a prompt that mandates a strict JSON output contract.
func buildPrompt(games []models.Game, props []models.PlayerProp, prefs *models.Preferences) string {
	var b strings.Builder

	b.WriteString("You are a sports betting research assistant. Based on the games below, ")
	b.WriteString("suggest 3 parlays: one conservative (2 legs), one balanced (3 legs), one value play (3-4 legs).\n\n")

	b.WriteString("Today's games:\n")
	count := 0
	for _, game := range games {
		if count >= maxPromptGames {
			break
		}
		count++
		fmt.Fprintf(&b, "\n%s @ %s (%s, id=%s)\n", game.AwayTeam, game.HomeTeam, strings.ToUpper(game.Sport), game.ID)
		for _, bm := range game.Bookmakers {
			for _, mkt := range bm.Markets {
				fmt.Fprintf(&b, "  %s:", mkt.Type)
				for _, o := range mkt.Outcomes {
					if o.Point != nil {
						fmt.Fprintf(&b, " %s %.1f %s", o.Name, *o.Point, oddsmath.FormatAmerican(o.Price))
					} else {
						fmt.Fprintf(&b, " %s %s", o.Name, oddsmath.FormatAmerican(o.Price))
					}
				}
				b.WriteString("\n")
			}
		}
	}

	if section := propSection(props); section != "" {
		b.WriteString("\nPlayer props:\n")
		b.WriteString(section)
	}

	writePreferences(&b, prefs)

	b.WriteString(`
Respond with ONLY a JSON array of exactly 3 suggestion objects, no other text:
[{"name": "...", "description": "...", "riskLevel": "low|medium|high", "legs": [{"team": "...", "type": "h2h|spreads|totals|player_...", "price": -110, "point": null, "gameId": "..."}], "reasoning": "..."}]
Use only games and prices listed above. Prices are American odds integers.`)

	return b.String()
}

// propSection flattens props grouped by player, capped per player and
// by player count.
func propSection(props []models.PlayerProp) string {
	if len(props) == 0 {
		return ""
	}

	var b strings.Builder
	order := []string{}
	byPlayer := map[string][]models.PlayerProp{}
	for _, p := range props {
		if _, seen := byPlayer[p.Player]; !seen {
			if len(order) >= maxPromptPlayers {
				continue
			}
			order = append(order, p.Player)
		}
		if len(byPlayer[p.Player]) < maxPropsPerPlayer {
			byPlayer[p.Player] = append(byPlayer[p.Player], p)
		}
	}

	for _, player := range order {
		fmt.Fprintf(&b, "  %s:", player)
		for _, p := range byPlayer[player] {
			if p.Point != nil {
				fmt.Fprintf(&b, " %s %s %.1f %s;", p.Market, p.Type, *p.Point, oddsmath.FormatAmerican(p.Price))
			} else {
				fmt.Fprintf(&b, " %s %s %s;", p.Market, p.Type, oddsmath.FormatAmerican(p.Price))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writePreferences(b *strings.Builder, prefs *models.Preferences) {
	if prefs == nil {
		return
	}

	if len(prefs.FavoriteTeams) > 0 {
		fmt.Fprintf(b, "\nUser's favorite teams: %s\n", strings.Join(prefs.FavoriteTeams, ", "))
	}
	if prefs.RiskTolerance != "" {
		fmt.Fprintf(b, "Risk tolerance: %s\n", prefs.RiskTolerance)
	}
	for _, focus := range prefs.TeamFocus {
		if focus.AlwaysInclude {
			fmt.Fprintf(b, "MUST include a %s leg in at least one suggestion (risk affinity: %s).\n", focus.Team, focus.RiskAffinity)
		} else if focus.RiskAffinity != "" {
			fmt.Fprintf(b, "Lean toward %s when building %s-risk suggestions.\n", focus.Team, focus.RiskAffinity)
		}
	}
	if len(prefs.AvoidTeams) > 0 {
		fmt.Fprintf(b, "Never include these teams: %s\n", strings.Join(prefs.AvoidTeams, ", "))
	}
}
