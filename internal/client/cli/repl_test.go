package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	return f.record("register", nil)
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login", nil)
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Tasks(ctx context.Context, args []string) error {
	return f.record("tasks", args)
}
func (f *fakeExec) AddTask(ctx context.Context) error { return f.record("add", nil) }
func (f *fakeExec) Done(ctx context.Context, args []string) error {
	return f.record("done", args)
}
func (f *fakeExec) Rename(ctx context.Context, args []string) error {
	return f.record("rename", args)
}
func (f *fakeExec) Remove(ctx context.Context, args []string) error {
	return f.record("rm", args)
}
func (f *fakeExec) Users(ctx context.Context, args []string) error {
	return f.record("users", args)
}
func (f *fakeExec) Watch(ctx context.Context) error { return f.record("watch", nil) }

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	capturePrints(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"tasks",
		"login",
		"help",
		"tasks 2 5",
		"add",
		"done 3",
		"rename 3",
		"rm 4",
		"users",
		"whoami",
		"watch",
		"",
		"foobar",
		"logout",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(input))

	assert.Equal(t, []string{
		"login", "tasks", "add", "done", "rename", "rm", "users", "whoami", "watch", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"2", "5"}, exec.args[1])
	assert.Equal(t, []string{"3"}, exec.args[3])
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("get\nquit\n")))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *lines, "Unknown command: get")
	assert.Contains(t, *lines, "Bye!")
}

func TestRunREPL_ErrorsArePrintedAndLoopContinues(t *testing.T) {
	lines := capturePrints(t)

	exec := &fakeExec{loggedIn: true, err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("tasks\nusers\n")))

	assert.Equal(t, []string{"tasks", "users"}, exec.calls)
	assert.Contains(t, *lines, "Error: boom")
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	lines := capturePrints(t)
	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, helpLoggedOut)

	lines = capturePrints(t)
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewReader(strings.NewReader("help\n")))
	assert.Contains(t, *lines, helpLoggedIn)
}
