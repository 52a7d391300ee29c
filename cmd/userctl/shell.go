package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hairizuan-noorazman/user-admin/operations"
	"github.com/hairizuan-noorazman/user-admin/userstate"
	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse and edit users interactively",
		Long:  "Starts an interactive session that keeps one user list loaded between commands. Type 'help' for the command list.",
		RunE: func(cmd *cobra.Command, args []string) error {
			sh := newShell(newService(newLogger()), cmd.InOrStdin(), cmd.OutOrStdout())
			return sh.run(cmd.Context())
		},
	}
}

const shellHelp = `Commands:
  list [PAGE]       show a page of users (default: current page)
  next, prev        move one page forward or back
  limit N           change the page size and reload
  refresh           reload the current page
  get ID            show one user
  delete ID         delete a user after confirmation
  search TERM       filter the loaded page by name or residence
  clear             drop the search filter
  help              show this help
  quit, exit        leave the shell`

// shell keeps one store alive across commands, the way a list page keeps its
// state between clicks.
type shell struct {
	svc     *operations.Service
	scanner *bufio.Scanner
	out     io.Writer
	search  string
}

func newShell(svc *operations.Service, in io.Reader, out io.Writer) *shell {
	return &shell{
		svc:     svc,
		scanner: bufio.NewScanner(in),
		out:     out,
	}
}

func (sh *shell) run(ctx context.Context) error {
	sh.svc.FetchUsers(ctx, 1, getConfigLimit())
	sh.render()

	for {
		fmt.Fprint(sh.out, "> ")
		if !sh.scanner.Scan() {
			fmt.Fprintln(sh.out)
			return sh.scanner.Err()
		}

		line := strings.TrimSpace(sh.scanner.Text())
		if line == "" {
			continue
		}
		if quit := sh.exec(ctx, line); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(ctx context.Context, line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	pagination := sh.svc.Store().Snapshot().Pagination

	switch strings.ToLower(name) {
	case "quit", "exit":
		return true

	case "help", "?":
		printMessage(sh.out, shellHelp)

	case "list", "ls":
		page := pagination.CurrentPage
		if arg != "" {
			n, err := strconv.Atoi(arg)
			if err != nil {
				printMessage(sh.out, "Page must be a number")
				return false
			}
			page = n
		}
		sh.svc.ChangePage(ctx, page)
		sh.render()

	case "next":
		if pagination.CurrentPage >= pagination.TotalPages {
			printMessage(sh.out, "Already on the last page")
			return false
		}
		sh.svc.ChangePage(ctx, pagination.CurrentPage+1)
		sh.render()

	case "prev":
		if pagination.CurrentPage <= 1 {
			printMessage(sh.out, "Already on the first page")
			return false
		}
		sh.svc.ChangePage(ctx, pagination.CurrentPage-1)
		sh.render()

	case "limit":
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 {
			printMessage(sh.out, "Limit must be a positive number")
			return false
		}
		sh.svc.FetchUsers(ctx, 1, n)
		sh.render()

	case "refresh":
		sh.svc.Refresh(ctx)
		sh.render()

	case "get", "show":
		if arg == "" {
			printMessage(sh.out, "Usage: get ID")
			return false
		}
		out := sh.svc.FetchUserByID(ctx, arg)
		if !out.Success {
			printMessage(sh.out, "Error: "+out.Message)
			return false
		}
		printUserDetail(sh.out, *sh.svc.Store().Snapshot().CurrentUser)

	case "delete", "rm":
		if arg == "" {
			printMessage(sh.out, "Usage: delete ID")
			return false
		}
		fmt.Fprintf(sh.out, "Delete user %s? [y/N]: ", arg)
		if !sh.scanner.Scan() || !isYes(sh.scanner.Text()) {
			printMessage(sh.out, "Aborted")
			return false
		}
		out := sh.svc.DeleteUserAndRepaginate(ctx, arg)
		printMessage(sh.out, out.Message)
		if out.Success {
			sh.render()
		}

	case "search", "find":
		sh.search = arg
		sh.render()

	case "clear":
		sh.search = ""
		sh.render()

	default:
		printMessage(sh.out, fmt.Sprintf("Unknown command %q, type 'help' for the list", name))
	}
	return false
}

func (sh *shell) render() {
	s := sh.svc.Store().Snapshot()
	if s.HasError() {
		printMessage(sh.out, "Error: "+s.Error+" (type 'refresh' to retry)")
		return
	}

	users := userstate.FilterUsers(s.Users, sh.search)
	printUsers(sh.out, users)
	printPagination(sh.out, s.Pagination, len(users))
	if sh.search != "" {
		printMessage(sh.out, fmt.Sprintf("Filtered by %q", sh.search))
	}
}
