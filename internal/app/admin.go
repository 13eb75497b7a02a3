package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"

	"github.com/buildboard/buildboard/internal/api"
)

// RunAdmin prints the backend's early-access signups as a table.
func RunAdmin(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	list, err := client.ListSignups(ctx)
	if err != nil {
		return fmt.Errorf("list signups: %w", err)
	}
	_, err = fmt.Fprintln(w, renderSignups(list, time.Now()))
	return err
}

// RunHealth checks the backend health endpoint and prints its response.
func RunHealth(ctx context.Context, opts Options, w io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	client, err := api.NewClient(cfg.APIURL)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	checkCtx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	body, err := client.Health(checkCtx)
	if err != nil {
		return fmt.Errorf("health check %s: %w", cfg.APIURL, err)
	}
	_, err = fmt.Fprintln(w, renderHealth(cfg.APIURL, body))
	return err
}

func renderSignups(list api.SignupList, now time.Time) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "EMAIL", "NAME", "VERIFIED", "SIGNED UP").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	verified := 0
	for _, s := range list.Users {
		status := "no"
		if s.IsVerified {
			status = "yes"
			verified++
		}
		t.Row(
			strconv.FormatUint(uint64(s.ID), 10),
			s.Email,
			fullName(s.FirstName, s.LastName),
			status,
			signedUp(s.CreatedAt, now),
		)
	}

	summary := fmt.Sprintf("%s signups (%s verified on this page) · page %d · limit %d",
		humanize.Comma(list.Pagination.Total),
		humanize.Comma(int64(verified)),
		list.Pagination.Page,
		list.Pagination.Limit,
	)
	return t.Render() + "\n" + summary
}

func renderHealth(apiURL string, body map[string]any) string {
	keys := make([]string, 0, len(body))
	for k := range body {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := apiURL + " is healthy"
	for _, k := range keys {
		out += fmt.Sprintf("\n  %s: %v", k, body[k])
	}
	return out
}

func fullName(first, last string) string {
	switch {
	case first == "" && last == "":
		return "-"
	case last == "":
		return first
	case first == "":
		return last
	default:
		return first + " " + last
	}
}

func signedUp(at, now time.Time) string {
	if at.IsZero() {
		return "-"
	}
	return humanize.RelTime(at, now, "ago", "from now")
}
