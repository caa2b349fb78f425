/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"strings"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/swiss-standings/internal/config"
	"github.com/mikeb26/swiss-standings/swiss"
	"github.com/mikeb26/swiss-standings/tdf"
	"github.com/mikeb26/swiss-standings/watch"
)

const testTDF = `<tournament>
  <data><name>Spring Cup</name><city>Salem</city><startdate>03/08/2025</startdate></data>
  <players>
    <player userid="11"><firstname>Ann</firstname><lastname>Smith</lastname></player>
    <player userid="12"><firstname>Bob</firstname><lastname>Jones</lastname></player>
    <player userid="13"><firstname>Cat</firstname><lastname>Lee</lastname></player>
    <player userid="14"><firstname>Dan</firstname><lastname>Wu</lastname></player>
    <player userid="21"><firstname>Eve</firstname><lastname>Kim</lastname></player>
    <player userid="22"><firstname>Fay</firstname><lastname>Ng</lastname></player>
  </players>
  <pods>
    <pod category="2">
      <rounds>
        <round number="1" type="3"><matches>
          <match outcome="1"><player1 userid="11"/><player2 userid="12"/><tablenumber>1</tablenumber></match>
          <match outcome="1"><player1 userid="13"/><player2 userid="14"/><tablenumber>2</tablenumber></match>
        </matches></round>
        <round number="2" type="3"><matches>
          <match outcome="1"><player1 userid="11"/><player2 userid="13"/><tablenumber>1</tablenumber></match>
          <match outcome="2"><player1 userid="14"/><player2 userid="12"/><tablenumber>2</tablenumber></match>
        </matches></round>
      </rounds>
    </pod>
    <pod category="0">
      <rounds>
        <round number="1" type="3"><matches>
          <match outcome="0"><player1 userid="21"/><player2 userid="22"/><tablenumber>1</tablenumber></match>
        </matches></round>
      </rounds>
    </pod>
  </pods>
</tournament>
`

func newTestBot(t *testing.T, load bool) *bot {
	t.Helper()
	b := &bot{
		settings: config.Defaults(),
		tracker:  watch.NewTracker(swiss.DefaultConfig(), nil),
	}
	if !load {
		return b
	}
	ev, err := tdf.Parse(strings.NewReader(testTDF), swiss.DefaultConfig())
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	if _, err := b.tracker.Update(context.Background(), ev); err != nil {
		t.Fatalf("failed to compute fixture: %v", err)
	}
	return b
}

// tdInteraction builds /td <sub> with the given options.
func tdInteraction(sub string,
	opts ...*discordgo.ApplicationCommandInteractionDataOption) *discordgo.Interaction {

	return &discordgo.Interaction{
		Type: discordgo.InteractionApplicationCommand,
		Data: discordgo.ApplicationCommandInteractionData{
			Name: string(TdCmd),
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{
					Name:    sub,
					Type:    discordgo.ApplicationCommandOptionSubCommand,
					Options: opts,
				},
			},
		},
	}
}

func stringOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionString,
		Value: value,
	}
}

func intOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{
		Name:  name,
		Type:  discordgo.ApplicationCommandOptionInteger,
		Value: value,
	}
}

func TestTdStandingsCmdHandler(t *testing.T) {
	b := newTestBot(t, true)
	ctx := context.Background()

	resp := b.tdCmdHandler(ctx, tdInteraction("standings"))
	if resp.Type != discordgo.InteractionResponseChannelMessageWithSource {
		t.Errorf("Expected response type %v, got %v",
			discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	}
	content := resp.Data.Content
	if !strings.HasPrefix(content, "```\n== Masters ==\nStandings after Round 2:") {
		t.Errorf("unexpected content %q", content)
	}
	if !strings.Contains(content, "== Junior ==\nStandings are not available") {
		t.Errorf("expected gated junior standings in %q", content)
	}
	if resp.Data.Flags != discordgo.MessageFlagsEphemeral {
		t.Errorf("expected ephemeral response")
	}

	resp = b.tdCmdHandler(ctx, tdInteraction("standings",
		stringOpt("division", "masters"), stringOpt("player", "12"),
		&discordgo.ApplicationCommandInteractionDataOption{
			Name:  "broadcast",
			Type:  discordgo.ApplicationCommandOptionBoolean,
			Value: true,
		}))
	if !strings.Contains(resp.Data.Content, "Bob Jones (12)") ||
		strings.Contains(resp.Data.Content, "==") {
		t.Errorf("unexpected player content %q", resp.Data.Content)
	}
	if resp.Data.Flags != 0 {
		t.Errorf("expected broadcast response")
	}

	resp = b.tdCmdHandler(ctx, tdInteraction("standings", stringOpt("player", "99")))
	if !strings.Contains(resp.Data.Content, "No standings found for player 99") {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	resp = b.tdCmdHandler(ctx, tdInteraction("standings", stringOpt("division", "senior")))
	if !strings.HasPrefix(resp.Data.Content, "Error selecting division") {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}
}

func TestTdStandingsCmdHandlerPlayerBeforeSwissComplete(t *testing.T) {
	b := newTestBot(t, true)

	// the junior pod's only round is unreported
	resp := b.tdCmdHandler(context.Background(), tdInteraction("standings",
		stringOpt("division", "junior"), stringOpt("player", "21")))
	if !strings.Contains(resp.Data.Content, "Standings are not available until the final Swiss round") {
		t.Errorf("expected unavailable standings, got %q", resp.Data.Content)
	}
	if strings.Contains(resp.Data.Content, "No standings found") {
		t.Errorf("unexpected not found reply %q", resp.Data.Content)
	}
}

func TestTdPairingsCmdHandler(t *testing.T) {
	b := newTestBot(t, true)
	ctx := context.Background()

	resp := b.tdCmdHandler(ctx, tdInteraction("pairings", stringOpt("division", "junior")))
	if !strings.Contains(resp.Data.Content, "Round 1 Pairings (in progress):") ||
		!strings.Contains(resp.Data.Content, "Eve Kim(0-0-0)") {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	resp = b.tdCmdHandler(ctx, tdInteraction("pairings", intOpt("round", 2)))
	if !strings.Contains(resp.Data.Content, "Round 2 Pairings (complete):") ||
		strings.Contains(resp.Data.Content, "Junior") {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}

	resp = b.tdCmdHandler(ctx, tdInteraction("pairings", intOpt("round", 5)))
	if resp.Data.Content != "No pairings found for round 5." {
		t.Errorf("unexpected content %q", resp.Data.Content)
	}
}

func TestTdStatusAndRoundsCmdHandlers(t *testing.T) {
	b := newTestBot(t, true)
	ctx := context.Background()

	resp := b.tdCmdHandler(ctx, tdInteraction("status"))
	if !strings.Contains(resp.Data.Content, "Spring Cup (Salem)") {
		t.Errorf("unexpected status %q", resp.Data.Content)
	}
	resp = b.tdCmdHandler(ctx, tdInteraction("rounds", stringOpt("division", "masters")))
	if !strings.Contains(resp.Data.Content, "Status: swiss complete") {
		t.Errorf("unexpected rounds %q", resp.Data.Content)
	}
}

func TestTdCmdHandlerNotLoaded(t *testing.T) {
	b := newTestBot(t, false)
	for _, sub := range []string{"status", "standings", "pairings", "rounds"} {
		resp := b.tdCmdHandler(context.Background(), tdInteraction(sub))
		if !strings.Contains(resp.Data.Content, "has not been loaded yet") {
			t.Errorf("%v: unexpected content %q", sub, resp.Data.Content)
		}
	}
}

func TestTdHelpCmdHandler(t *testing.T) {
	b := newTestBot(t, false)
	resp := b.tdCmdHandler(context.Background(), tdInteraction("help"))
	if resp.Data.Content != truncateContent(helpText) || !strings.Contains(helpText, "/td standings") {
		t.Errorf("unexpected help content %q", resp.Data.Content)
	}
	// unknown subcommands fall back to help
	resp = b.tdCmdHandler(context.Background(), tdInteraction("bogus"))
	if resp.Data.Content != truncateContent(helpText) {
		t.Errorf("expected help for unknown subcommand")
	}
	resp = b.tdCmdHandler(context.Background(), tdInteraction("about"))
	if !strings.Contains(resp.Data.Content, "swisstd") {
		t.Errorf("unexpected about content %q", resp.Data.Content)
	}
}

func TestTruncateContent(t *testing.T) {
	short := "hello"
	if got := truncateContent(short); got != short {
		t.Errorf("truncateContent(%q) = %q", short, got)
	}
	long := strings.Repeat("é", 3000)
	got := truncateContent(long)
	if n := len([]rune(got)); n != 1991 || !strings.HasSuffix(got, "...") {
		t.Errorf("expected 1988 runes plus ellipsis, got %d", n)
	}
}

func TestTdCommandDefinition(t *testing.T) {
	def := tdCommandDefinition()
	names := make(map[string]bool)
	for _, opt := range def.Options {
		names[opt.Name] = true
	}
	for sub := range tdSubCmdHdlrs {
		if !names[string(sub)] {
			t.Errorf("subcommand %v has a handler but is not registered", sub)
		}
	}
	if len(def.Options) != len(tdSubCmdHdlrs) {
		t.Errorf("expected %d subcommands, got %d", len(tdSubCmdHdlrs), len(def.Options))
	}
}
