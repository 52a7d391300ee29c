package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/hairizuan-noorazman/user-admin/user"
	"github.com/hairizuan-noorazman/user-admin/userstate"
)

func printJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to marshal JSON: %v\n", err)
		return
	}
	fmt.Fprintln(w, string(data))
}

func printTable(w io.Writer, headers []string, rows [][]string) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

func printMessage(w io.Writer, msg string) {
	fmt.Fprintln(w, msg)
}

func confirmAction(in io.Reader, w io.Writer, prompt string, skipConfirm bool) bool {
	if skipConfirm {
		return true
	}

	fmt.Fprintf(w, "%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return isYes(scanner.Text())
	}
	return false
}

func isYes(answer string) bool {
	answer = strings.TrimSpace(strings.ToLower(answer))
	return answer == "y" || answer == "yes"
}

// userPage is the JSON shape of a listed page.
type userPage struct {
	Users      []user.User          `json:"users"`
	Pagination userstate.Pagination `json:"pagination"`
}

func printUsers(w io.Writer, users []user.User) {
	if len(users) == 0 {
		printMessage(w, "No users found")
		return
	}

	headers := []string{"ID", "NAME", "GENDER", "HEIGHT", "WEIGHT", "RESIDENCE"}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			u.ID,
			truncate(u.FullName(), 30),
			string(u.Gender),
			fmt.Sprintf("%g cm", u.Height),
			fmt.Sprintf("%g kg", u.Weight),
			truncate(u.Residence, 30),
		})
	}
	printTable(w, headers, rows)
}

func printPagination(w io.Writer, p userstate.Pagination, shown int) {
	printMessage(w, fmt.Sprintf("\nPage %d of %d, showing %d of %d users", p.CurrentPage, p.TotalPages, shown, p.Total))
}

func printUserDetail(w io.Writer, u user.User) {
	printTable(w, []string{"FIELD", "VALUE"}, [][]string{
		{"ID", u.ID},
		{"Name", u.FullName()},
		{"Gender", string(u.Gender)},
		{"Height", fmt.Sprintf("%g cm", u.Height)},
		{"Weight", fmt.Sprintf("%g kg", u.Weight)},
		{"Residence", u.Residence},
		{"Photo", u.Photo},
		{"Created", formatTime(u.CreatedAt)},
		{"Updated", formatTime(u.UpdatedAt)},
	})
}

func printFieldErrors(w io.Writer, errs user.FieldErrors) {
	for _, field := range errs.Fields() {
		printMessage(w, fmt.Sprintf("  %s: %s", field, errs[field]))
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
