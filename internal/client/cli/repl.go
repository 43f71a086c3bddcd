package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	Tasks(ctx context.Context, args []string) error
	AddTask(ctx context.Context) error
	Done(ctx context.Context, args []string) error
	Rename(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Users(ctx context.Context, args []string) error
	Watch(ctx context.Context) error
}

const (
	helpLoggedOut = "Available commands: register, login, exit"
	helpLoggedIn  = "Available commands: tasks [page] [limit], add, done <id>, rename <id>, rm <id>, users [page] [limit], whoami, watch, logout, exit"
)

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from reader, parses the first token as the command and
// dispatches to methods on a. The loop exits on EOF or when the user types
// "exit" or "quit". Task and user commands are only accepted while logged in.
//
// Errors returned by command handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("tt %s> ", statusFn()))
		line, err := readLine(reader)
		if err != nil {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if cmd == "exit" || cmd == "quit" {
			printlnFn("Bye!")
			return
		}

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				printlnFn(helpLoggedOut)
			case "register":
				report(a.Register(ctx))
			case "login":
				report(a.Login(ctx))
			default:
				printlnFn("Unknown command:", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			printlnFn(helpLoggedIn)
		case "tasks", "l":
			report(a.Tasks(ctx, args))
		case "add":
			report(a.AddTask(ctx))
		case "done":
			report(a.Done(ctx, args))
		case "rename":
			report(a.Rename(ctx, args))
		case "rm":
			report(a.Remove(ctx, args))
		case "users":
			report(a.Users(ctx, args))
		case "whoami":
			report(a.WhoAmI(ctx))
		case "watch":
			report(a.Watch(ctx))
		case "logout":
			report(a.Logout(ctx))
		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func report(err error) {
	if err != nil {
		printlnFn("Error:", err)
	}
}
