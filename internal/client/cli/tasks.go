package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/tasktracker/internal/api"
)

var errTaskID = errors.New("expected a numeric task id")

// pageArgs reads optional "[page] [limit]" arguments. Anything unparsable is
// left as zero, which the server turns into its defaults.
func pageArgs(args []string) (page, limit int) {
	if len(args) > 0 {
		page, _ = strconv.Atoi(args[0])
	}
	if len(args) > 1 {
		limit, _ = strconv.Atoi(args[1])
	}
	return page, limit
}

func taskIDArg(args []string) (int64, error) {
	if len(args) == 0 {
		return 0, errTaskID
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, errTaskID
	}
	return id, nil
}

func assigneeName(t api.Task) string {
	if t.AssignedTo == nil {
		return "-"
	}
	if t.AssignedTo.Profile.FullName != "" {
		return t.AssignedTo.Profile.FullName
	}
	return t.AssignedTo.Email
}

func printPagination(w io.Writer, p api.Pagination) {
	fmt.Fprintf(w, "page %d of %d, %d total\n", p.CurrentPage, p.TotalPages, p.TotalItems)
}

// Tasks prints one page of tasks.
func (a *App) Tasks(ctx context.Context, args []string) error {
	page, limit := pageArgs(args)
	list, err := a.api.ListTasks(ctx, page, limit)
	if err != nil {
		return err
	}

	if len(list.Tasks) == 0 {
		fmt.Fprintln(a.out, "No tasks")
		printPagination(a.out, list.Pagination)
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDONE\tTITLE\tASSIGNEE")
	for _, t := range list.Tasks {
		done := " "
		if t.Done {
			done = "x"
		}
		fmt.Fprintf(tw, "%d\t[%s]\t%s\t%s\n", t.ID, done, t.Title, assigneeName(t))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printPagination(a.out, list.Pagination)
	return nil
}

// AddTask prompts for a title and an optional assignee id.
func (a *App) AddTask(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		return err
	}
	assignee, err := getSimpleText(a.reader, "Assign to user id (empty for nobody)", a.out)
	if err != nil {
		return err
	}

	var assignedTo *int64
	if assignee != "" {
		id, err := strconv.ParseInt(assignee, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", assignee)
		}
		assignedTo = &id
	}

	t, err := a.api.CreateTask(ctx, title, assignedTo)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d created\n", t.ID)
	return nil
}

// Done marks a task as completed.
func (a *App) Done(ctx context.Context, args []string) error {
	id, err := taskIDArg(args)
	if err != nil {
		return err
	}
	done := true
	t, err := a.api.UpdateTask(ctx, id, api.UpdateTaskRequest{Done: &done})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d done\n", t.ID)
	return nil
}

// Rename asks for a new title of a task.
func (a *App) Rename(ctx context.Context, args []string) error {
	id, err := taskIDArg(args)
	if err != nil {
		return err
	}
	title, err := getSimpleText(a.reader, "Enter new title", a.out)
	if err != nil {
		return err
	}
	t, err := a.api.UpdateTask(ctx, id, api.UpdateTaskRequest{Title: &title})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d renamed to %q\n", t.ID, t.Title)
	return nil
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := taskIDArg(args)
	if err != nil {
		return err
	}
	if err := a.api.DeleteTask(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Task #%d deleted\n", id)
	return nil
}

// Watch prints task events until the user presses Enter or the feed ends.
func (a *App) Watch(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Watching task changes, press Enter to stop")

	done := make(chan error, 1)
	go func() {
		done <- a.api.WatchTasks(ctx, func(ev api.TaskEvent) {
			fmt.Fprintln(a.out, formatEvent(ev))
		})
	}()

	stop := make(chan struct{})
	go func() {
		_, _ = readLine(a.reader)
		close(stop)
	}()

	select {
	case <-stop:
		cancel()
		return <-done
	case err := <-done:
		fmt.Fprintln(a.out, "Feed closed, press Enter to continue")
		<-stop
		return err
	}
}

func formatEvent(ev api.TaskEvent) string {
	ts := ev.At.Local().Format("15:04:05")
	if ev.Task == nil {
		return fmt.Sprintf("%s %s #%d", ts, ev.Type, ev.TaskID)
	}
	return fmt.Sprintf("%s %s #%d %q", ts, ev.Type, ev.TaskID, ev.Task.Title)
}
