/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	_ "embed"
	"fmt"
	"log"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
	"github.com/mikeb26/swiss-standings/watch"
)

type TdSubCommand string

const (
	TdAboutCmd     TdSubCommand = "about"
	TdHelpCmd      TdSubCommand = "help"
	TdStatusCmd    TdSubCommand = "status"
	TdPairingsCmd  TdSubCommand = "pairings"
	TdStandingsCmd TdSubCommand = "standings"
	TdRoundsCmd    TdSubCommand = "rounds"
)

var tdSubCmdHdlrs = map[TdSubCommand]CmdHandler{
	TdAboutCmd:     (*bot).tdAboutCmdHandler,
	TdHelpCmd:      (*bot).tdHelpCmdHandler,
	TdStatusCmd:    (*bot).tdStatusCmdHandler,
	TdPairingsCmd:  (*bot).tdPairingsCmdHandler,
	TdStandingsCmd: (*bot).tdStandingsCmdHandler,
	TdRoundsCmd:    (*bot).tdRoundsCmdHandler,
}

func tdCommandDefinition() *discordgo.ApplicationCommand {
	broadcastOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionBoolean,
		Name:        "broadcast",
		Description: "Share with the rest of the channel instead of only to you (default is false)",
		Required:    false,
	}
	divisionOpt := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "division",
		Description: "Age division (default is every division)",
		Required:    false,
		Choices: []*discordgo.ApplicationCommandOptionChoice{
			{Name: "Masters", Value: "masters"},
			{Name: "Senior", Value: "senior"},
			{Name: "Junior", Value: "junior"},
		},
	}

	return &discordgo.ApplicationCommand{
		Name:        string(TdCmd),
		Description: "Tournament standings commands; try /td help to start",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdHelpCmd),
				Description: "Show usage for td",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdAboutCmd),
				Description: "Show information about swisstd",
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdStatusCmd),
				Description: "Summarize the event and each division's progress",
				Options:     []*discordgo.ApplicationCommandOption{broadcastOpt},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdStandingsCmd),
				Description: "Get standings once the Swiss rounds are complete",
				Options: []*discordgo.ApplicationCommandOption{
					divisionOpt,
					{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "player",
						Description: "Player id to show along with their opponents",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdPairingsCmd),
				Description: "Get pairings for a round",
				Options: []*discordgo.ApplicationCommandOption{
					divisionOpt,
					{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "round",
						Description: "Round number (default is the latest round)",
						Required:    false,
					},
					broadcastOpt,
				},
			},
			{
				Type:        discordgo.ApplicationCommandOptionSubCommand,
				Name:        string(TdRoundsCmd),
				Description: "List rounds and top cut stages",
				Options: []*discordgo.ApplicationCommandOption{
					divisionOpt,
					broadcastOpt,
				},
			},
		},
	}
}

func (b *bot) tdCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	data := inter.ApplicationCommandData()
	hdlr := CmdHandler((*bot).tdHelpCmdHandler)
	if len(data.Options) > 0 {
		if subName := data.Options[0].Name; subName != "" {
			h, ok := tdSubCmdHdlrs[TdSubCommand(subName)]
			if ok {
				hdlr = h
			}
		}
	}
	return hdlr(b, ctx, inter)
}

//go:embed about.txt
var aboutText string

func (b *bot) tdAboutCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(aboutText)
	return resp
}

//go:embed help.md
var helpText string

func (b *bot) tdHelpCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	resp.Data.Content = truncateContent(helpText)
	return resp
}

// subOptions are the options given to a /td subcommand.
type subOptions struct {
	broadcast bool
	division  string
	player    string
	round     int64
}

func parseSubOptions(inter *discordgo.Interaction) subOptions {
	var opts subOptions
	data := inter.ApplicationCommandData()
	if len(data.Options) == 0 {
		return opts
	}
	for _, opt := range data.Options[0].Options {
		switch opt.Name {
		case "broadcast":
			opts.broadcast = opt.BoolValue()
		case "division":
			opts.division = opt.StringValue()
		case "player":
			opts.player = strings.TrimSpace(opt.StringValue())
		case "round":
			opts.round = opt.IntValue()
		}
	}
	return opts
}

func newResponse() *discordgo.InteractionResponse {
	return &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	}
}

// setCodeBlock wraps output in a code block for monospace formatting in
// Discord.
func setCodeBlock(resp *discordgo.InteractionResponse, content string,
	broadcast bool) {

	resp.Data.Content = fmt.Sprintf("```\n%s```", truncateContent(content))
	if broadcast {
		resp.Data.Flags = 0
	}
}

// latest returns the tracker's current result or fills resp with an
// explanation when nothing has been loaded yet.
func (b *bot) latest(resp *discordgo.InteractionResponse, cmd string) *watch.Result {
	res := b.tracker.Latest()
	if res == nil {
		resp.Data.Content = "The event has not been loaded yet; please try again shortly."
		log.Printf("discordbot.%v: %v", cmd, resp.Data.Content)
	}
	return res
}

// selectReports honors the division option; without it every division of
// the event is returned, oldest first.
func selectReports(res *watch.Result, division string) ([]watch.Report, error) {
	if division == "" {
		var reports []watch.Report
		for _, div := range res.Event.DivisionList() {
			reports = append(reports, res.Reports[div])
		}
		return reports, nil
	}

	div, err := swiss.ParseDivision(division)
	if err != nil {
		return nil, err
	}
	rep, ok := res.Reports[div]
	if !ok {
		return nil, fmt.Errorf("%v has no %v division", res.Event.Name, div)
	}
	return []watch.Report{rep}, nil
}

func reportHeader(reports []watch.Report, rep watch.Report) string {
	if len(reports) == 1 {
		return ""
	}
	return fmt.Sprintf("== %v ==\n", rep.Division)
}

func anyAvailable(reports []watch.Report) bool {
	for _, rep := range reports {
		if rep.Standings.Available() {
			return true
		}
	}
	return false
}

func (b *bot) tdStatusCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	res := b.latest(resp, "status")
	if res == nil {
		return resp
	}
	setCodeBlock(resp, tdf.BuildEventOutput(res.Event), opts.broadcast)
	return resp
}

// tdStandingsCmdHandler handles the /td standings command to display
// standings, or a single player's standing when a player is given
func (b *bot) tdStandingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	res := b.latest(resp, "standings")
	if res == nil {
		return resp
	}
	reports, err := selectReports(res, opts.division)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error selecting division: %v", err)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, rep := range reports {
		if opts.player == "" {
			sb.WriteString(reportHeader(reports, rep))
			sb.WriteString(swiss.BuildStandingsOutput(rep.Standings))
			continue
		}
		if !rep.Standings.Available() {
			continue
		}
		detail, ok := rep.Snapshot.PlayerDetail(b.settings.Standings, opts.player,
			swiss.Through(rep.Standings.Round))
		if ok {
			sb.WriteString(reportHeader(reports, rep))
			sb.WriteString(swiss.BuildPlayerOutput(detail))
		}
	}
	if sb.Len() == 0 && !anyAvailable(reports) {
		// nothing to look the player up in yet
		sb.WriteString(swiss.BuildStandingsOutput(swiss.Standings{
			Phase: swiss.PhasePartialSwiss}))
	}
	if sb.Len() == 0 {
		resp.Data.Content = fmt.Sprintf("No standings found for player %v.", opts.player)
		log.Printf("discordbot.standings: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, sb.String(), opts.broadcast)
	return resp
}

// tdPairingsCmdHandler handles the /td pairings command to display a round's
// pairings
func (b *bot) tdPairingsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	res := b.latest(resp, "pairings")
	if res == nil {
		return resp
	}
	reports, err := selectReports(res, opts.division)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error selecting division: %v", err)
		log.Printf("discordbot.pairings: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, rep := range reports {
		rp := rep.Latest
		if opts.round > 0 {
			var ok bool
			rp, ok = rep.Snapshot.RoundPairings(int(opts.round))
			if !ok {
				continue
			}
		} else if rp.Number == 0 {
			continue
		}
		sb.WriteString(reportHeader(reports, rep))
		sb.WriteString(swiss.BuildPairingsOutput(rp))
	}
	if sb.Len() == 0 {
		resp.Data.Content = "No pairings found."
		if opts.round > 0 {
			resp.Data.Content = fmt.Sprintf("No pairings found for round %d.",
				opts.round)
		}
		log.Printf("discordbot.pairings: %v", resp.Data.Content)
		return resp
	}

	setCodeBlock(resp, sb.String(), opts.broadcast)
	return resp
}

func (b *bot) tdRoundsCmdHandler(ctx context.Context,
	inter *discordgo.Interaction) *discordgo.InteractionResponse {

	resp := newResponse()
	opts := parseSubOptions(inter)
	res := b.latest(resp, "rounds")
	if res == nil {
		return resp
	}
	reports, err := selectReports(res, opts.division)
	if err != nil {
		resp.Data.Content = fmt.Sprintf("Error selecting division: %v", err)
		log.Printf("discordbot.rounds: %v", resp.Data.Content)
		return resp
	}

	var sb strings.Builder
	for _, rep := range reports {
		sb.WriteString(reportHeader(reports, rep))
		sb.WriteString(swiss.BuildRoundsOutput(rep.Snapshot))
	}
	setCodeBlock(resp, sb.String(), opts.broadcast)
	return resp
}

// https://discord.com/developers/docs/resources/channel#start-thread-in-forum-or-media-channel-forum-and-media-thread-message-params-object
// limits messages to 2k characters
func truncateContent(s string) string {
	const MsgLimit = 1988 // keep space for newlines and markdown
	runes := []rune(s)
	if len(runes) > MsgLimit {
		s = fmt.Sprintf("%v...", string(runes[:MsgLimit]))
	}
	return s
}
