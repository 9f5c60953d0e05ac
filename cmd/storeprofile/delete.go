package main

import (
	"fmt"

	"github.com/fwojciec/storeprofile"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if err := deps.Profiles.DeleteProfile(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", storeprofile.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Deleted profile %s\n", c.ID)
	return nil
}
