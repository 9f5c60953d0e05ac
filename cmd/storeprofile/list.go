package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/storeprofile"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := storeprofile.ProfileFilter{Limit: c.Limit}
	if c.Website != "" {
		filter.Website = &c.Website
	}

	profiles, err := deps.Profiles.FindProfiles(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeprofile.ErrorMessage(err))
		return err
	}

	if len(profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No profiles found. Use 'storeprofile extract --save' to store one.")
		return nil
	}

	for _, p := range profiles {
		var products int
		if p.Profile != nil {
			products = len(p.Profile.Products)
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s  (%d products)\n",
			p.ID, p.ExtractedAt.Format(time.DateTime), p.Website, products)
	}

	return nil
}
