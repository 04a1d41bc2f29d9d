// Package picker provides interactive selection from page listings.
package picker

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/open-cli-collective/confluence-markdown/api"
)

// SelectPage presents an interactive list of pages and returns the chosen one.
func SelectPage(title string, pages []api.PageSummary) (api.PageSummary, error) {
	if len(pages) == 0 {
		return api.PageSummary{}, fmt.Errorf("no pages to select from")
	}

	options := make([]huh.Option[string], len(pages))
	for i, page := range pages {
		options[i] = huh.NewOption(page.Label(), page.ID)
	}

	var selectedID string
	err := huh.NewSelect[string]().
		Title(title).
		Options(options...).
		Value(&selectedID).
		Run()
	if err != nil {
		return api.PageSummary{}, err
	}

	for _, page := range pages {
		if page.ID == selectedID {
			return page, nil
		}
	}
	return api.PageSummary{}, fmt.Errorf("selected page not found")
}
