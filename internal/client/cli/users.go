package cli

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"
)

// Users prints one page of registered users.
func (a *App) Users(ctx context.Context, args []string) error {
	page, limit := pageArgs(args)
	list, err := a.api.ListUsers(ctx, page, limit)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLES")
	for _, u := range list.Users {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", u.ID, u.Email, u.Profile.FullName, strings.Join(u.Roles, ","))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPagination(a.out, list.Pagination)
	return nil
}
