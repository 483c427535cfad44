package dashboard

import (
	"embed"

	"github.com/JaimeStill/promptbench/pkg/web"
)

//go:embed templates
var templateFS embed.FS

const layoutName = "layout"

var (
	homeView     = web.ViewDef{Route: "/", Template: "home.html", Title: "Home", Nav: "home"}
	testerView   = web.ViewDef{Route: "/tester", Template: "tester.html", Title: "API Tester", Nav: "tester"}
	promptsView  = web.ViewDef{Route: "/prompts", Template: "prompts.html", Title: "Prompts", Nav: "prompts"}
	historyView  = web.ViewDef{Route: "/history", Template: "history.html", Title: "History", Nav: "history"}
	entryView    = web.ViewDef{Route: "/history/{id}", Template: "entry.html", Title: "History Entry", Nav: "history"}
	settingsView = web.ViewDef{Route: "/settings", Template: "settings.html", Title: "Settings", Nav: "settings"}
	notFoundView = web.ViewDef{Template: "not_found.html", Title: "Not Found"}
)

var allViews = []web.ViewDef{
	homeView,
	testerView,
	promptsView,
	historyView,
	entryView,
	settingsView,
	notFoundView,
}
