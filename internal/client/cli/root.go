package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

func (a *App) getStatus() string {
	if current := a.store.Current(); current.Identity != nil {
		return fmt.Sprintf("(%s)", current.Identity.Username)
	}
	return ""
}

// Root runs the command loop. Every command's remote calls complete before
// the next prompt is shown, so a pending request can never be doubled up
// from the same terminal.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to ventline (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Fprintf(a.out, "vl %s> ", a.getStatus())
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		if !a.isLoggedIn() {
			switch cmd {
			case "help":
				fmt.Fprintln(a.out, "Available commands: login, signup, exit")
			case "login":
				a.Login(ctx)
			case "signup":
				a.Signup(ctx)
			case "exit", "quit":
				fmt.Fprintln(a.out, "Bye!")
				return
			default:
				fmt.Fprintln(a.out, "Unknown command (log in first):", cmd)
			}
			continue
		}

		switch cmd {
		case "help":
			fmt.Fprintln(a.out, "Vents:   vents [page], feed [page], myvents, search <text>, sort <recent|trending>,")
			fmt.Fprintln(a.out, "         create, react <id> <heart|hug|listen>, delete <id>, report <id>")
			fmt.Fprintln(a.out, "Matches: matches, pending, history, accept <id>, reject <id>, unmatch <id>, refresh")
			fmt.Fprintln(a.out, "Profile: whoami, profile [userId], update")
			fmt.Fprintln(a.out, "Other:   logout, exit")

		case "vents":
			a.listVents(ctx, args)
		case "feed":
			a.feedVents(ctx, args)
		case "myvents":
			a.myVents(ctx)
		case "search":
			a.searchVents(ctx, args)
		case "sort":
			a.setSort(args)
		case "create":
			a.createVent(ctx)
		case "react":
			a.reactToVent(ctx, args)
		case "delete":
			a.deleteVent(ctx, args)
		case "report":
			a.reportVent(ctx, args)

		case "matches":
			a.matchSuggestions(ctx)
		case "pending":
			a.pendingMatches(ctx)
		case "history":
			a.matchHistory(ctx)
		case "accept":
			a.acceptMatch(ctx, args)
		case "reject":
			a.rejectMatch(ctx, args)
		case "unmatch":
			a.unmatchUser(ctx, args)
		case "refresh":
			a.refreshMatches(ctx)

		case "whoami":
			a.whoami()
		case "profile":
			a.showProfile(ctx, args)
		case "update":
			a.updateProfile(ctx)

		case "logout":
			a.Logout(ctx)
		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
