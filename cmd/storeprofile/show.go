package main

import (
	"fmt"

	"github.com/fwojciec/storeprofile"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	stored, err := deps.Profiles.FindProfileByID(deps.Ctx, c.ID)
	if err != nil {
		if storeprofile.ErrorCode(err) == storeprofile.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: profile %q not found. Use 'storeprofile list' to see stored profiles.\n", c.ID)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", storeprofile.ErrorMessage(err))
		}
		return err
	}

	if c.Format == "json" {
		return writeJSON(deps, stored)
	}
	fmt.Fprint(deps.Stdout, storeprofile.FormatProfile(stored.Profile, deps.Converter))
	return nil
}
