package common

import "github.com/louisuxu-sys/BC-LINE/config"

// MainMenuButtons returns the quick replies attached to every conversation turn
func MainMenuButtons(c *config.Catalog) []QuickReply {
	return []QuickReply{
		{Label: "Baccarat", Text: c.Text(config.CommandBaccarat)},
		{Label: "Slots", Text: c.Text(config.CommandSlots)},
		{Label: "Redeem", Text: c.Text(config.CommandRedeem)},
		{Label: "Menu", Text: c.Text(config.CommandMenu)},
	}
}

// MainMenu is the reply shown when no flow claims a message
func MainMenu(c *config.Catalog) TextReply {
	return WithButtons(MenuTitle, MainMenuButtons(c)...)
}
