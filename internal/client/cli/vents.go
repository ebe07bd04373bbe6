package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ventline/ventline/internal/client/api"
	"github.com/ventline/ventline/internal/client/models"
)

func (a *App) listVents(ctx context.Context, args []string) {
	if len(args) > 0 {
		if page, err := strconv.Atoi(args[0]); err == nil && page > 0 {
			a.feedPage = page
		}
	}

	vents, err := a.client.ListVents(ctx, api.ListOptions{
		Sort:  a.feedSort,
		Page:  a.feedPage,
		Limit: a.config.FeedPageSize,
	})
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load vents"))
		return
	}
	fmt.Fprintf(a.out, "Vents (%s, page %d):\n", a.feedSort, a.feedPage)
	a.renderVents(vents)
}

func (a *App) feedVents(ctx context.Context, args []string) {
	page := 1
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
			page = n
		}
	}

	vents, err := a.client.FeedVents(ctx, page, a.config.FeedPageSize)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load your feed"))
		return
	}
	fmt.Fprintf(a.out, "Your feed (page %d):\n", page)
	a.renderVents(vents)
}

func (a *App) myVents(ctx context.Context) {
	vents, err := a.client.MyVents(ctx)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to load your vents"))
		return
	}
	fmt.Fprintln(a.out, "Your vents:")
	a.renderVents(vents)
}

func (a *App) searchVents(ctx context.Context, args []string) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(a.out, "Usage: search <text>")
		return
	}

	vents, err := a.client.SearchVents(ctx, query)
	if err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Search failed"))
		return
	}
	fmt.Fprintf(a.out, "Results for %q:\n", query)
	a.renderVents(vents)
}

func (a *App) setSort(args []string) {
	if len(args) != 1 || (args[0] != "recent" && args[0] != "trending") {
		fmt.Fprintln(a.out, "Usage: sort <recent|trending>")
		return
	}
	a.feedSort = args[0]
	a.feedPage = 1
	fmt.Fprintln(a.out, "Sorting by", a.feedSort)
}

func (a *App) createVent(ctx context.Context) {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return
	}
	if title == "" {
		fmt.Fprintln(a.out, "A title is required")
		return
	}

	text, err := GetMultiline(a.reader, "What's on your mind?", a.out)
	if err != nil {
		return
	}
	if text == "" {
		fmt.Fprintln(a.out, "Some text is required")
		return
	}

	var emotion models.Emotion
	for {
		names := make([]string, len(models.Emotions))
		for i, e := range models.Emotions {
			names[i] = string(e)
		}
		answer, err := getSimpleText(a.reader, "Emotion ("+strings.Join(names, "/")+")", a.out)
		if err != nil {
			return
		}
		emotion = models.Emotion(answer)
		if emotion.Valid() {
			break
		}
		fmt.Fprintln(a.out, "Please pick one of the listed emotions")
	}

	hashtags, err := getSimpleText(a.reader, "Hashtags (comma separated, optional)", a.out)
	if err != nil {
		return
	}

	vent := models.NewVent{
		Title:    title,
		Text:     text,
		Emotion:  emotion,
		Hashtags: splitList(hashtags),
	}
	if err := a.client.CreateVent(ctx, vent); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to create vent"))
		return
	}
	fmt.Fprintln(a.out, "Vent posted")
}

func (a *App) reactToVent(ctx context.Context, args []string) {
	if len(args) != 2 {
		fmt.Fprintln(a.out, "Usage: react <ventId> <heart|hug|listen>")
		return
	}
	reaction := models.Reaction(args[1])
	if !reaction.Valid() {
		fmt.Fprintln(a.out, "Reaction must be one of heart, hug, listen")
		return
	}

	if err := a.client.ReactToVent(ctx, args[0], reaction); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to react"))
		return
	}
	fmt.Fprintf(a.out, "Sent a %s\n", reaction)
}

func (a *App) deleteVent(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: delete <ventId>")
		return
	}
	if err := a.client.DeleteVent(ctx, args[0]); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to delete vent"))
		return
	}
	fmt.Fprintln(a.out, "Vent deleted")
}

// reportVent collects a reason and files the report. Picking no reason is a
// local validation error; no request goes out. "Other" carries the free
// text as "Other: <text>".
func (a *App) reportVent(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Fprintln(a.out, "Usage: report <ventId>")
		return
	}

	for i, reason := range models.ReportReasons {
		fmt.Fprintf(a.out, "  %d. %s\n", i+1, reason)
	}
	answer, err := getSimpleText(a.reader, "Reason (1-4)", a.out)
	if err != nil {
		return
	}
	idx, err := strconv.Atoi(answer)
	if err != nil || idx < 1 || idx > len(models.ReportReasons) {
		fmt.Fprintln(a.out, "Please select a reason for reporting.")
		return
	}
	reason := models.ReportReasons[idx-1]

	detail := ""
	if reason == models.ReportOther {
		detail, err = getSimpleText(a.reader, "Describe the problem", a.out)
		if err != nil {
			return
		}
	}

	if err := a.client.ReportVent(ctx, args[0], models.FormatReportReason(reason, detail)); err != nil {
		fmt.Fprintln(a.out, api.UserMessage(err, "Failed to report vent"))
		return
	}
	fmt.Fprintln(a.out, "Report submitted")
}

// renderVents prints the last successful fetch. Own vents are marked using
// the resolved owner id.
func (a *App) renderVents(vents []models.Vent) {
	if len(vents) == 0 {
		fmt.Fprintln(a.out, "  (nothing here)")
		return
	}

	me := ""
	if identity := a.store.Current().Identity; identity != nil {
		me = identity.ID
	}

	for i := range vents {
		v := &vents[i]
		owner := ""
		if me != "" && v.UserID() == me {
			owner = " (you)"
		}
		fmt.Fprintf(a.out, "- [%s] %s%s (id %s)\n", v.Emotion, v.Title, owner, v.ID)
		if v.Text != "" {
			fmt.Fprintf(a.out, "    %s\n", truncate(v.Text, 120))
		}
		if len(v.Hashtags) > 0 {
			fmt.Fprintf(a.out, "    #%s\n", strings.Join(v.Hashtags, " #"))
		}
		if len(v.Reactions) > 0 {
			fmt.Fprintf(a.out, "    reactions: %s\n", formatReactions(v.Reactions))
		}
	}
}

func formatReactions(reactions map[string]int) string {
	parts := make([]string, 0, len(reactions))
	for _, r := range []models.Reaction{models.ReactionHeart, models.ReactionHug, models.ReactionListen} {
		if n := reactions[string(r)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", r, n))
		}
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
